//go:build !gocv

package omr

import (
	"math"
	"testing"
)

func rectangleOutline(width, height int) []Point {
	var pts []Point
	for x := 0; x < width; x++ {
		pts = append(pts, Point{float64(x), 0})
	}
	for y := 0; y < height; y++ {
		pts = append(pts, Point{float64(width), float64(y)})
	}
	for x := width; x > 0; x-- {
		pts = append(pts, Point{float64(x), float64(height)})
	}
	for y := height; y > 0; y-- {
		pts = append(pts, Point{0, float64(y)})
	}
	return pts
}

func TestArcLength(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := arcLength(square, true); got != 40 {
		t.Errorf("Expected closed perimeter 40, got %f", got)
	}
	if got := arcLength(square, false); got != 30 {
		t.Errorf("Expected open length 30, got %f", got)
	}
}

func TestApproxPolygon_Rectangle(t *testing.T) {
	approx := approxPolygon(rectangleOutline(20, 10), 1)

	want := []Point{{0, 0}, {20, 0}, {20, 10}, {0, 10}}
	if len(approx) != len(want) {
		t.Fatalf("Expected %d vertices, got %d: %v", len(want), len(approx), approx)
	}
	for i := range want {
		if approx[i] != want[i] {
			t.Errorf("Expected vertex %d at %v, got %v", i, want[i], approx[i])
		}
	}
}

func TestApproxPolygon_KeepsSignificantVertices(t *testing.T) {
	// notch deeper than the tolerance survives simplification
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {5, 5}, {0, 10}}
	if got := approxPolygon(pts, 1); len(got) != 5 {
		t.Errorf("Expected 5 vertices, got %d: %v", len(got), got)
	}

	// a shallow notch is absorbed
	pts = []Point{{0, 0}, {10, 0}, {10, 10}, {5, 9.5}, {0, 10}}
	if got := approxPolygon(pts, 1); len(got) != 4 {
		t.Errorf("Expected 4 vertices, got %d: %v", len(got), got)
	}
}

func TestApproxPolygon_Degenerate(t *testing.T) {
	if got := approxPolygon([]Point{{1, 1}, {1, 1}, {1, 1}}, 1); len(got) != 1 {
		t.Errorf("Expected coincident points to collapse, got %v", got)
	}
	if got := approxPolygon([]Point{{1, 1}, {2, 2}}, 1); len(got) != 2 {
		t.Errorf("Expected short input to be returned as is, got %v", got)
	}
}

func TestConvexHull(t *testing.T) {
	pts := []Point{
		{0, 0}, {5, 0}, {10, 0}, {10, 10}, {0, 10},
		{5, 5}, {2, 7}, {0, 5},
	}

	hull := convexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("Expected 4 hull points, got %d: %v", len(hull), hull)
	}
	if area := polygonArea(hull); area != 100 {
		t.Errorf("Expected hull area 100, got %f", area)
	}
}

func TestMinAreaRect_Rotated(t *testing.T) {
	angle := math.Pi / 6
	u := Point{math.Cos(angle), math.Sin(angle)}
	v := Point{-u.Y, u.X}
	centre := Point{100, 100}

	corners := Quad{
		centre.add(u.scale(-40)).add(v.scale(-20)),
		centre.add(u.scale(40)).add(v.scale(-20)),
		centre.add(u.scale(40)).add(v.scale(20)),
		centre.add(u.scale(-40)).add(v.scale(20)),
	}
	// interior and edge points do not change the enclosing rectangle
	pts := []Point{corners[0], corners[1], corners[2], corners[3], centre, centre.add(u.scale(-40))}

	rect, ok := minAreaRect(convexHull(pts))
	if !ok {
		t.Fatal("Expected a rectangle")
	}
	if area := polygonArea(rect[:]); math.Abs(area-3200) > 1e-6 {
		t.Errorf("Expected area 3200, got %f", area)
	}
	for _, want := range corners {
		found := false
		for _, got := range rect {
			if got.sub(want).norm() < 1e-6 {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected corner %v in %v", want, rect)
		}
	}
}

func TestMinAreaRect_TooFewPoints(t *testing.T) {
	if _, ok := minAreaRect([]Point{{0, 0}, {1, 1}}); ok {
		t.Error("Expected failure for fewer than 3 points")
	}
}

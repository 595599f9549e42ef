//go:build !gocv

package omr

import (
	"math"
	"sort"
)

func (p Point) add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// arcLength sums segment lengths, including the closing one when closed
func arcLength(pts []Point, closed bool) float64 {
	var length float64
	for i := 1; i < len(pts); i++ {
		length += pts[i].sub(pts[i-1]).norm()
	}
	if closed && len(pts) > 1 {
		length += pts[0].sub(pts[len(pts)-1]).norm()
	}
	return length
}

// approxPolygon simplifies a closed contour with Douglas-Peucker. The ring is
// split at the vertex farthest from the first one and each half simplified.
func approxPolygon(pts []Point, epsilon float64) []Point {
	n := len(pts)
	if n <= 2 {
		return append([]Point(nil), pts...)
	}

	far, farDist := 0, 0.0
	for i := 1; i < n; i++ {
		if d := pts[i].sub(pts[0]).norm(); d > farDist {
			far, farDist = i, d
		}
	}
	if farDist == 0 {
		return []Point{pts[0]}
	}

	first := douglasPeucker(pts[:far+1], epsilon)
	ring := make([]Point, 0, n-far+1)
	ring = append(ring, pts[far:]...)
	ring = append(ring, pts[0])
	second := douglasPeucker(ring, epsilon)

	out := make([]Point, 0, len(first)+len(second)-2)
	out = append(out, first[:len(first)-1]...)
	out = append(out, second[:len(second)-1]...)
	return out
}

func douglasPeucker(pts []Point, epsilon float64) []Point {
	n := len(pts)
	if n < 3 {
		return append([]Point(nil), pts...)
	}

	a, b := pts[0], pts[n-1]
	idx, maxDist := 0, -1.0
	for i := 1; i < n-1; i++ {
		if d := lineDistance(pts[i], a, b); d > maxDist {
			idx, maxDist = i, d
		}
	}

	if maxDist <= epsilon {
		return []Point{a, b}
	}

	left := douglasPeucker(pts[:idx+1], epsilon)
	right := douglasPeucker(pts[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// lineDistance is the distance from p to the line through a and b
func lineDistance(p, a, b Point) float64 {
	ab := b.sub(a)
	length := ab.norm()
	if length == 0 {
		return p.sub(a).norm()
	}
	return math.Abs(cross(a, b, p)) / length
}

// convexHull returns the hull in counter-clockwise order using Andrew's
// monotone chain. Collinear points are dropped.
func convexHull(pts []Point) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}

	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X == sorted[j].X {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	hull := make([]Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// minAreaRect returns the corners of the smallest rotated rectangle enclosing
// the convex polygon hull. One side of the optimum is always collinear with a
// hull edge.
func minAreaRect(hull []Point) (Quad, bool) {
	if len(hull) < 3 {
		return Quad{}, false
	}

	var (
		best     Quad
		bestArea = math.Inf(1)
	)
	for i := range hull {
		edge := hull[(i+1)%len(hull)].sub(hull[i])
		length := edge.norm()
		if length == 0 {
			continue
		}
		u := edge.scale(1 / length)
		v := Point{-u.Y, u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu, pv := p.dot(u), p.dot(v)
			minU, maxU = math.Min(minU, pu), math.Max(maxU, pu)
			minV, maxV = math.Min(minV, pv), math.Max(maxV, pv)
		}

		if area := (maxU - minU) * (maxV - minV); area < bestArea {
			bestArea = area
			best = Quad{
				u.scale(minU).add(v.scale(minV)),
				u.scale(maxU).add(v.scale(minV)),
				u.scale(maxU).add(v.scale(maxV)),
				u.scale(minU).add(v.scale(maxV)),
			}
		}
	}
	return best, !math.IsInf(bestArea, 1)
}

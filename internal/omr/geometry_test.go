package omr

import "testing"

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want float64
	}{
		{name: "square", pts: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, want: 100},
		{name: "reversed square", pts: []Point{{0, 10}, {10, 10}, {10, 0}, {0, 0}}, want: 100},
		{name: "triangle", pts: []Point{{0, 0}, {4, 0}, {0, 3}}, want: 6},
		{name: "segment", pts: []Point{{0, 0}, {4, 0}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := polygonArea(tt.pts); got != tt.want {
				t.Errorf("Expected area %f, got %f", tt.want, got)
			}
		})
	}
}

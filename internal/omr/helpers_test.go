package omr

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"testing"
)

// createCanvas creates a uniformly filled test image
func createCanvas(width, height int, fill color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return img
}

// fillRect paints an axis-aligned rectangle
func fillRect(img *image.NRGBA, r image.Rectangle, fill color.Color) {
	draw.Draw(img, r, image.NewUniform(fill), image.Point{}, draw.Src)
}

// fillQuad paints every pixel whose centre lies inside the convex quad
func fillQuad(img *image.NRGBA, q Quad, fill color.Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := Point{float64(x), float64(y)}
			inside := true
			sign := 0.0
			for i := 0; i < 4; i++ {
				c := cross(q[i], q[(i+1)%4], p)
				if c == 0 {
					continue
				}
				if sign == 0 {
					sign = math.Copysign(1, c)
				} else if math.Copysign(1, c) != sign {
					inside = false
					break
				}
			}
			if inside {
				img.Set(x, y, fill)
			}
		}
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func assertNear(t *testing.T, name string, got, want Point, tolerance float64) {
	t.Helper()
	if got.sub(want).norm() > tolerance {
		t.Errorf("Expected %s near (%.1f, %.1f), got (%.1f, %.1f)", name, want.X, want.Y, got.X, got.Y)
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

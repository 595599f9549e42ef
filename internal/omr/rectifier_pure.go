//go:build !gocv

package omr

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// edgeTolerance absorbs rounding when a projected coordinate lands a hair
// outside the source frame.
const edgeTolerance = 1e-3

// warpQuad maps the ordered corners onto a width x height rectangle
func warpQuad(img *image.NRGBA, ordered Quad, width, height int) (*image.NRGBA, error) {
	h, err := solveHomography(destinationRect(width, height), ordered)
	if err != nil {
		return nil, err
	}
	return warpPerspective(img, h, width, height), nil
}

// solveHomography returns the row-major 3x3 matrix (h33 = 1) mapping each
// point of from onto the matching point of to.
func solveHomography(from, to Quad) ([9]float64, error) {
	a := mat.NewDense(8, 8, nil)
	rhs := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := from[i].X, from[i].Y
		u, v := to[i].X, to[i].Y
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -x * u, -y * u})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -x * v, -y * v})
		rhs.SetVec(2*i, u)
		rhs.SetVec(2*i+1, v)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return [9]float64{}, fmt.Errorf("solve homography: %w", err)
		}
	}

	var h [9]float64
	for i := 0; i < 8; i++ {
		h[i] = sol.AtVec(i)
		if math.IsNaN(h[i]) || math.IsInf(h[i], 0) {
			return [9]float64{}, errors.New("solve homography: singular system")
		}
	}
	h[8] = 1
	return h, nil
}

func project(h [9]float64, x, y float64) (float64, float64, bool) {
	w := h[6]*x + h[7]*y + h[8]
	if w == 0 {
		return 0, 0, false
	}
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w, true
}

// warpPerspective fills a width x height image by projecting each pixel back
// into src through h and sampling bilinearly. Pixels that land outside src
// are opaque black.
func warpPerspective(src *image.NRGBA, h [9]float64, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := dst.PixOffset(x, y)
			sx, sy, ok := project(h, float64(x), float64(y))
			if !ok {
				dst.Pix[i+3] = 255
				continue
			}
			c := sampleBilinear(src, sx, sy)
			copy(dst.Pix[i:i+4], c[:])
		}
	}
	return dst
}

func sampleBilinear(src *image.NRGBA, x, y float64) [4]uint8 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	maxX, maxY := float64(w-1), float64(h-1)
	if x < -edgeTolerance || y < -edgeTolerance || x > maxX+edgeTolerance || y > maxY+edgeTolerance {
		return [4]uint8{0, 0, 0, 255}
	}
	x = math.Min(math.Max(x, 0), maxX)
	y = math.Min(math.Max(y, 0), maxY)

	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, w-1), min(y0+1, h-1)
	fx, fy := x-float64(x0), y-float64(y0)

	p00 := src.Pix[y0*src.Stride+x0*4:]
	p10 := src.Pix[y0*src.Stride+x1*4:]
	p01 := src.Pix[y1*src.Stride+x0*4:]
	p11 := src.Pix[y1*src.Stride+x1*4:]

	var out [4]uint8
	for c := 0; c < 4; c++ {
		top := float64(p00[c])*(1-fx) + float64(p10[c])*fx
		bottom := float64(p01[c])*(1-fx) + float64(p11[c])*fx
		out[c] = uint8(math.Round(top*(1-fy) + bottom*fy))
	}
	return out
}

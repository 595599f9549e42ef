//go:build gocv

package omr

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// minDeterminant rejects transforms that collapse the sheet to a line
const minDeterminant = 1e-12

// warpQuad maps the ordered corners onto a width x height rectangle.
// Pixels that land outside the photo are opaque black.
func warpQuad(img *image.NRGBA, ordered Quad, width, height int) (*image.NRGBA, error) {
	src := make([]gocv.Point2f, 4)
	dst := make([]gocv.Point2f, 4)
	for i, p := range ordered {
		src[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	for i, p := range destinationRect(width, height) {
		dst[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	srcVec := gocv.NewPoint2fVectorFromPoints(src)
	defer srcVec.Close()
	dstVec := gocv.NewPoint2fVectorFromPoints(dst)
	defer dstVec.Close()

	transform := gocv.GetPerspectiveTransform2f(srcVec, dstVec)
	defer transform.Close()
	if err := checkTransform(transform); err != nil {
		return nil, err
	}

	bgr, err := matFromNRGBA(img, gocv.ColorRGBAToBGR)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	warped := gocv.NewMat()
	defer warped.Close()
	gocv.WarpPerspectiveWithParams(bgr, &warped, transform, image.Pt(width, height),
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{0, 0, 0, 255})

	out, err := warped.ToImage()
	if err != nil {
		return nil, err
	}
	return imaging.Clone(out), nil
}

func checkTransform(m gocv.Mat) error {
	if m.Empty() || m.Rows() != 3 || m.Cols() != 3 {
		return errors.New("perspective transform: no solution")
	}
	h := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v := m.GetDoubleAt(r, c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New("perspective transform: singular system")
			}
			h.Set(r, c, v)
		}
	}
	if math.Abs(mat.Det(h)) < minDeterminant {
		return errors.New("perspective transform: singular system")
	}
	return nil
}

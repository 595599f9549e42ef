//go:build gocv

package omr

import (
	"image"

	"gocv.io/x/gocv"
)

// matFromNRGBA copies img into a Mat converted with code, e.g. to BGR or
// grayscale.
func matFromNRGBA(img *image.NRGBA, code gocv.ColorConversionCode) (gocv.Mat, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := img.Pix
	if img.Stride != 4*w {
		pix = make([]byte, 0, 4*w*h)
		for y := 0; y < h; y++ {
			pix = append(pix, img.Pix[y*img.Stride:y*img.Stride+4*w]...)
		}
	}

	rgba, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, pix)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer rgba.Close()

	out := gocv.NewMat()
	gocv.CvtColor(rgba, &out, code)
	return out, nil
}

func pointsFrom(pts []image.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{float64(p.X), float64(p.Y)}
	}
	return out
}

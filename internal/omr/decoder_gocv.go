//go:build gocv

package omr

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// decodePixels reads the three colour channels with OpenCV, which also
// applies EXIF orientation.
func decodePixels(data []byte) (image.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.New("failed to decode image")
	}
	return mat.ToImage()
}

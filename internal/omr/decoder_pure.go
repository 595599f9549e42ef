//go:build !gocv

package omr

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

func decodePixels(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

package omr

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// DecodeImage turns raw encoded bytes into an opaque NRGBA pixel grid
// anchored at (0,0). EXIF orientation is applied so phone photos come out
// upright. Alpha is discarded and the stored colour kept, so transparent
// regions never read as dark ink.
func DecodeImage(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidImage)
	}

	img, err := decodePixels(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: zero-sized image", ErrInvalidImage)
	}

	nrgba := imaging.Clone(img)
	dropAlpha(nrgba)
	return nrgba, nil
}

// dropAlpha marks every pixel opaque. NRGBA stores unpremultiplied colour,
// so the RGB values survive unchanged.
func dropAlpha(img *image.NRGBA) {
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
}

// toGray converts any image into an 8-bit grayscale grid anchored at (0,0)
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

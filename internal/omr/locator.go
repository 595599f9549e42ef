package omr

import (
	"image"
)

type sheetLocator struct {
	opts Options
}

// NewSheetLocator creates a locator that treats the largest contour of the
// binarized photo as the sheet boundary.
func NewSheetLocator(opts Options) SheetLocator {
	return &sheetLocator{opts: opts}
}

// Locate finds four corner points of the sheet. It fails only when the
// binarized image has no foreground at all; every other shape resolves to
// four corners.
func (l *sheetLocator) Locate(img image.Image) (*Location, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrInvalidImage
	}

	approx, err := l.sheetPolygon(img)
	if err != nil {
		return nil, err
	}
	return resolveCorners(approx, bounds.Dx(), bounds.Dy()), nil
}

// resolveCorners reduces an approximated polygon to exactly four points.
// Quadrilaterals are taken as-is. Larger polygons are boxed by the minimum
// area rectangle of their hull when it keeps at least four points; anything
// else falls back to the image frame.
func resolveCorners(approx []Point, width, height int) *Location {
	loc := &Location{Vertices: len(approx)}

	switch {
	case len(approx) == 4:
		copy(loc.Corners[:], approx)
		loc.Source = CornersFromPolygon
	case len(approx) > 4:
		if rect, ok := hullRectangle(approx); ok {
			loc.Corners = rect
			loc.Source = CornersFromRectangle
			return loc
		}
		fallthrough
	default:
		loc.Corners = ImageCorners(width, height)
		loc.Source = CornersFromImage
	}
	return loc
}

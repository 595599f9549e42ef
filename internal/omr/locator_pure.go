//go:build !gocv

package omr

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// sheetPolygon binarizes the photo with Otsu, makes the minority class the
// foreground and simplifies the largest outer contour.
func (l *sheetLocator) sheetPolygon(img image.Image) ([]Point, error) {
	gray := toGray(img)
	if l.opts.BlurRadius > 0 {
		gray = toGray(blur.Gaussian(gray, l.opts.BlurRadius))
	}

	bin := binarize(gray, otsuThreshold(gray))
	normalizePolarity(bin)

	contours := findOuterContours(bin)
	if len(contours) == 0 {
		return nil, ErrNoSheetFound
	}

	sheet := largestContour(contours)
	return approxPolygon(sheet, l.opts.ApproxEpsilonRatio*arcLength(sheet, true)), nil
}

// hullRectangle boxes the convex hull of pts, provided it keeps four points
func hullRectangle(pts []Point) (Quad, bool) {
	hull := convexHull(pts)
	if len(hull) < 4 {
		return Quad{}, false
	}
	return minAreaRect(hull)
}

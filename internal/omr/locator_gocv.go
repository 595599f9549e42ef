//go:build gocv

package omr

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// sheetPolygon binarizes the photo with Otsu, makes the minority class the
// foreground and simplifies the largest outer contour.
func (l *sheetLocator) sheetPolygon(img image.Image) ([]Point, error) {
	gray, err := matFromNRGBA(imaging.Clone(img), gocv.ColorRGBAToGray)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	if l.opts.BlurRadius > 0 {
		k := 2*int(l.opts.BlurRadius) + 1
		gocv.GaussianBlur(gray, &gray, image.Pt(k, k), 0, 0, gocv.BorderDefault)
	}

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(gray, &bin, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	if white := gocv.CountNonZero(bin); white > bin.Rows()*bin.Cols()-white {
		gocv.BitwiseNot(bin, &bin)
	}

	contours := gocv.FindContours(bin, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return nil, ErrNoSheetFound
	}

	best, bestArea := 0, -1.0
	for i := 0; i < contours.Size(); i++ {
		if area := gocv.ContourArea(contours.At(i)); area > bestArea {
			best, bestArea = i, area
		}
	}

	sheet := contours.At(best)
	approx := gocv.ApproxPolyDP(sheet, l.opts.ApproxEpsilonRatio*gocv.ArcLength(sheet, true), true)
	defer approx.Close()
	return pointsFrom(approx.ToPoints()), nil
}

// hullRectangle boxes the convex hull of pts, provided it keeps four points
func hullRectangle(pts []Point) (Quad, bool) {
	ipts := make([]image.Point, len(pts))
	for i, p := range pts {
		ipts[i] = image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
	}
	vec := gocv.NewPointVectorFromPoints(ipts)
	defer vec.Close()

	hullMat := gocv.NewMat()
	defer hullMat.Close()
	gocv.ConvexHull(vec, &hullMat, false, true)
	hull := gocv.NewPointVectorFromMat(hullMat)
	defer hull.Close()
	if hull.Size() < 4 {
		return Quad{}, false
	}

	rect := gocv.MinAreaRect2f(hull)
	if len(rect.Points) != 4 {
		return Quad{}, false
	}
	var q Quad
	for i, p := range rect.Points {
		q[i] = Point{float64(p.X), float64(p.Y)}
	}
	return q, true
}

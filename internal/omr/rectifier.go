package omr

import (
	"image"

	"github.com/disintegration/imaging"
)

type perspectiveRectifier struct{}

// NewPerspectiveRectifier creates a rectifier that maps the four sheet
// corners onto an axis-aligned rectangle.
func NewPerspectiveRectifier() PerspectiveRectifier {
	return &perspectiveRectifier{}
}

// Rectify orders the corners, sizes the output from the longer of each pair
// of opposite edges and inverse-warps the photo. Degenerate corners fall back
// to the full image frame.
func (r *perspectiveRectifier) Rectify(img *image.NRGBA, corners Quad) *Rectified {
	b := img.Bounds()
	ordered := OrderCorners(corners)
	width, height := TargetSize(ordered)

	var (
		color *image.NRGBA
		err   error
	)
	if width >= 1 && height >= 1 {
		color, err = warpQuad(img, ordered, width, height)
	}
	if width < 1 || height < 1 || err != nil {
		ordered = OrderCorners(ImageCorners(b.Dx(), b.Dy()))
		width, height = TargetSize(ordered)
		width, height = max(width, 1), max(height, 1)
		color, err = warpQuad(img, ordered, width, height)
	}
	if err != nil {
		// a one pixel wide or tall photo has no usable frame
		color = imaging.Clone(img)
	}

	return &Rectified{
		Color:   color,
		Gray:    toGray(color),
		Corners: ordered,
	}
}

// OrderCorners arranges four points as top-left, top-right, bottom-right,
// bottom-left. Top-left minimizes x+y, bottom-right maximizes it, top-right
// minimizes y-x and bottom-left maximizes it. Ties go to the smaller (y, x)
// so the result does not depend on input order.
func OrderCorners(q Quad) Quad {
	pick := func(key func(Point) float64) Point {
		best := q[0]
		for _, p := range q[1:] {
			kp, kb := key(p), key(best)
			if kp < kb || (kp == kb && (p.Y < best.Y || (p.Y == best.Y && p.X < best.X))) {
				best = p
			}
		}
		return best
	}

	return Quad{
		pick(func(p Point) float64 { return p.X + p.Y }),
		pick(func(p Point) float64 { return p.Y - p.X }),
		pick(func(p Point) float64 { return -(p.X + p.Y) }),
		pick(func(p Point) float64 { return p.X - p.Y }),
	}
}

// TargetSize derives the rectified dimensions from ordered corners. Each edge
// length is truncated before taking the maximum.
func TargetSize(q Quad) (width, height int) {
	tl, tr, br, bl := q[0], q[1], q[2], q[3]
	width = max(int(br.sub(bl).norm()), int(tr.sub(tl).norm()))
	height = max(int(tr.sub(br).norm()), int(tl.sub(bl).norm()))
	return width, height
}

func destinationRect(width, height int) Quad {
	w, h := float64(width-1), float64(height-1)
	return Quad{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

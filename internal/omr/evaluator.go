package omr

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

var (
	defaultFilledColor   = colorful.Color{R: 0, G: 1, B: 0}
	defaultUnfilledColor = colorful.Color{R: 1, G: 0, B: 0}
)

type bubbleEvaluator struct {
	opts     Options
	filled   color.NRGBA
	unfilled color.NRGBA
}

// NewBubbleEvaluator creates an evaluator that classifies bubbles by mean
// intensity. Unparseable overlay colours fall back to green and red.
func NewBubbleEvaluator(opts Options) BubbleEvaluator {
	return &bubbleEvaluator{
		opts:     opts,
		filled:   parseOverlayColor(opts.FilledColor, defaultFilledColor),
		unfilled: parseOverlayColor(opts.UnfilledColor, defaultUnfilledColor),
	}
}

func parseOverlayColor(hex string, fallback colorful.Color) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = fallback
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Evaluate samples every bubble of tpl on the rectified grayscale sheet. A
// bubble is filled when its mean intensity is strictly below the threshold;
// confidence is 255 minus the mean. The overlay outlines each bubble.
func (e *bubbleEvaluator) Evaluate(gray *image.Gray, tpl *Template) *Evaluation {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()

	sx, sy := 1.0, 1.0
	if tw, th, ok := tpl.Size(); ok {
		sx, sy = float64(width)/tw, float64(height)/th
	}
	threshold := tpl.ThresholdOr(e.opts.DefaultThreshold)

	eval := &Evaluation{
		Answers:     make(map[string]Answer, len(tpl.Bubbles)),
		Confidences: make(map[string]float64, len(tpl.Bubbles)),
		Bubbles:     make([]BubbleResult, 0, len(tpl.Bubbles)),
		Threshold:   threshold,
		Overlay:     imaging.Clone(gray),
	}

	ids := make([]string, 0, len(tpl.Bubbles))
	for id := range tpl.Bubbles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		bubble := tpl.Bubbles[id]
		box := ScaleBBox(bubble.BBox, sx, sy)
		mean := RegionMean(gray, box)
		filled := mean < threshold

		answer := bubble.MarkedAnswer()
		outline := e.unfilled
		if filled {
			answer = bubble.ChoiceAnswer()
			outline = e.filled
		}

		res := BubbleResult{
			ID:         id,
			Box:        box,
			Mean:       mean,
			Filled:     filled,
			Answer:     answer,
			Confidence: 255 - mean,
		}
		eval.Bubbles = append(eval.Bubbles, res)
		eval.Answers[id] = answer
		eval.Confidences[id] = res.Confidence

		strokeRect(eval.Overlay, box, outline, e.opts.OverlayThickness)
	}

	return eval
}

// ScaleBBox converts a template bbox into rectified pixels. Each component
// is truncated toward zero after scaling.
func ScaleBBox(bbox []float64, sx, sy float64) BBox {
	var v [4]float64
	copy(v[:], bbox)
	return BBox{
		X: int(v[0] * sx),
		Y: int(v[1] * sy),
		W: int(v[2] * sx),
		H: int(v[3] * sy),
	}
}

// RegionMean averages the pixels of box. The origin is clamped into the
// image and the extent clipped to it; an empty region reads as white.
func RegionMean(gray *image.Gray, box BBox) float64 {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	if box.W <= 0 || box.H <= 0 || width == 0 || height == 0 {
		return EmptyRegionMean
	}

	x0 := min(max(box.X, 0), width-1)
	y0 := min(max(box.Y, 0), height-1)
	x1 := min(x0+box.W, width)
	y1 := min(y0+box.H, height)
	if x1 <= x0 || y1 <= y0 {
		return EmptyRegionMean
	}

	values := make([]float64, 0, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		row := gray.Pix[y*gray.Stride+x0 : y*gray.Stride+x1]
		for _, v := range row {
			values = append(values, float64(v))
		}
	}
	return stat.Mean(values, nil)
}

// strokeRect draws a rectangle outline centred on the box edges
func strokeRect(img *image.NRGBA, box BBox, c color.NRGBA, thickness int) {
	if thickness <= 0 {
		return
	}
	inner := thickness / 2
	outer := thickness - inner
	x0, y0, x1, y1 := box.X, box.Y, box.X+box.W, box.Y+box.H
	src := image.NewUniform(c)

	for _, r := range []image.Rectangle{
		image.Rect(x0-inner, y0-inner, x1+outer, y0+outer), // top
		image.Rect(x0-inner, y1-inner, x1+outer, y1+outer), // bottom
		image.Rect(x0-inner, y0-inner, x0+outer, y1+outer), // left
		image.Rect(x1-inner, y0-inner, x1+outer, y1+outer), // right
	} {
		draw.Draw(img, r.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

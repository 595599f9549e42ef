package omr

import (
	"image"
	"image/color"
	"testing"
)

func uniformGray(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func singleBubble(bbox []float64) *Template {
	return &Template{
		Version: "test",
		Bubbles: map[string]Bubble{"Q1": {BBox: bbox, Choice: strPtr("B")}},
	}
}

func TestEvaluate_ThresholdBoundary(t *testing.T) {
	evaluator := NewBubbleEvaluator(DefaultOptions())

	tests := []struct {
		name      string
		intensity uint8
		threshold *float64
		filled    bool
	}{
		{name: "below default threshold", intensity: 149, filled: true},
		{name: "at default threshold", intensity: 150, filled: false},
		{name: "above default threshold", intensity: 151, filled: false},
		{name: "below declared threshold", intensity: 99, threshold: floatPtr(100), filled: true},
		{name: "at declared threshold", intensity: 100, threshold: floatPtr(100), filled: false},
		{name: "zero threshold never fills", intensity: 0, threshold: floatPtr(0), filled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := singleBubble([]float64{10, 10, 20, 20})
			tpl.Threshold = tt.threshold

			eval := evaluator.Evaluate(uniformGray(100, 100, tt.intensity), tpl)
			res := eval.Bubbles[0]

			if res.Filled != tt.filled {
				t.Errorf("Expected filled=%v for mean %f, got %v", tt.filled, res.Mean, res.Filled)
			}
			if res.Confidence != 255-float64(tt.intensity) {
				t.Errorf("Expected confidence %f, got %f", 255-float64(tt.intensity), res.Confidence)
			}
			wantAnswer := ""
			if tt.filled {
				wantAnswer = "B"
			}
			if got := eval.Answers["Q1"].String(); got != wantAnswer {
				t.Errorf("Expected answer %q, got %q", wantAnswer, got)
			}
		})
	}
}

func TestEvaluate_AnswerLabels(t *testing.T) {
	tpl := &Template{
		Bubbles: map[string]Bubble{
			"Q1": {BBox: []float64{0, 0, 10, 10}},
			"Q2": {BBox: []float64{50, 0, 10, 10}},
			"Q3": {BBox: []float64{50, 50, 10, 10}, Marked: strPtr("X")},
			"Q4": {BBox: []float64{0, 50, 10, 10}, Choice: strPtr("D"), Marked: strPtr("X")},
		},
	}
	gray := uniformGray(100, 100, 255)
	for _, r := range []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(0, 50, 10, 60)} {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				gray.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}

	eval := NewBubbleEvaluator(DefaultOptions()).Evaluate(gray, tpl)

	// Q1 and Q4 are inked
	want := map[string]Answer{
		"Q1": Mark("A"),
		"Q2": NoMark,
		"Q3": Mark("X"),
		"Q4": Mark("D"),
	}
	for qid, answer := range want {
		if got := eval.Answers[qid]; got != answer {
			t.Errorf("Expected %s answer %+v, got %+v", qid, answer, got)
		}
	}
	if eval.Confidences["Q1"] != 255 || eval.Confidences["Q2"] != 0 {
		t.Errorf("Expected confidences 255 and 0, got %v", eval.Confidences)
	}

	// bubbles are reported in question id order
	for i, id := range []string{"Q1", "Q2", "Q3", "Q4"} {
		if eval.Bubbles[i].ID != id {
			t.Errorf("Expected bubble %d to be %s, got %s", i, id, eval.Bubbles[i].ID)
		}
	}
}

func TestEvaluate_TemplateScaling(t *testing.T) {
	gray := uniformGray(200, 100, 255)
	for y := 40; y < 60; y++ {
		for x := 80; x < 120; x++ {
			gray.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	tpl := singleBubble([]float64{40, 40, 20, 20})
	tpl.TemplateSize = []float64{100, 100}

	eval := NewBubbleEvaluator(DefaultOptions()).Evaluate(gray, tpl)

	want := BBox{X: 80, Y: 40, W: 40, H: 20}
	if eval.Bubbles[0].Box != want {
		t.Errorf("Expected scaled box %+v, got %+v", want, eval.Bubbles[0].Box)
	}
	if !eval.Bubbles[0].Filled {
		t.Error("Expected scaled bubble to land on the mark")
	}
}

func TestScaleBBox(t *testing.T) {
	tests := []struct {
		name   string
		bbox   []float64
		sx, sy float64
		want   BBox
	}{
		{name: "identity", bbox: []float64{12, 34, 56, 78}, sx: 1, sy: 1, want: BBox{12, 34, 56, 78}},
		{name: "fractional identity truncates", bbox: []float64{12.9, 34.5, 5.99, 7.01}, sx: 1, sy: 1, want: BBox{12, 34, 5, 7}},
		{name: "independent axes", bbox: []float64{10, 10, 10, 10}, sx: 2, sy: 0.5, want: BBox{20, 5, 20, 5}},
		{name: "truncates toward zero", bbox: []float64{10, 10, 10, 10}, sx: 0.55, sy: 0.55, want: BBox{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleBBox(tt.bbox, tt.sx, tt.sy); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRegionMean(t *testing.T) {
	gray := uniformGray(10, 10, 200)
	for x := 0; x < 10; x++ {
		gray.SetGray(x, 9, color.Gray{Y: 0})
	}

	tests := []struct {
		name string
		box  BBox
		want float64
	}{
		{name: "inside", box: BBox{0, 0, 5, 5}, want: 200},
		{name: "mixed rows", box: BBox{0, 8, 10, 2}, want: 100},
		{name: "zero width", box: BBox{0, 0, 0, 5}, want: 255},
		{name: "negative height", box: BBox{0, 0, 5, -1}, want: 255},
		{name: "origin clamped into image", box: BBox{50, 50, 4, 4}, want: 0},
		{name: "extent clipped", box: BBox{5, 5, 100, 100}, want: 160},
		{name: "negative origin clamped", box: BBox{-5, -5, 2, 2}, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RegionMean(gray, tt.box); got != tt.want {
				t.Errorf("Expected mean %f, got %f", tt.want, got)
			}
		})
	}
}

func TestEvaluate_Overlay(t *testing.T) {
	gray := uniformGray(100, 100, 255)
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			gray.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	tpl := &Template{
		Bubbles: map[string]Bubble{
			"Q1": {BBox: []float64{10, 10, 20, 20}},
			"Q2": {BBox: []float64{60, 60, 20, 20}},
		},
	}

	eval := NewBubbleEvaluator(DefaultOptions()).Evaluate(gray, tpl)

	if eval.Overlay.Bounds() != gray.Bounds() {
		t.Fatalf("Expected overlay bounds %v, got %v", gray.Bounds(), eval.Overlay.Bounds())
	}
	green := color.NRGBA{0, 255, 0, 255}
	red := color.NRGBA{255, 0, 0, 255}
	if got := eval.Overlay.NRGBAAt(20, 10); got != green {
		t.Errorf("Expected green outline on filled bubble, got %v", got)
	}
	if got := eval.Overlay.NRGBAAt(60, 70); got != red {
		t.Errorf("Expected red outline on unfilled bubble, got %v", got)
	}
	if got := eval.Overlay.NRGBAAt(50, 50); got != white {
		t.Errorf("Expected untouched background, got %v", got)
	}
	if got := eval.Overlay.NRGBAAt(20, 20); got != black {
		t.Errorf("Expected bubble interior untouched, got %v", got)
	}
}

func TestEvaluate_CustomOverlayColors(t *testing.T) {
	opts := DefaultOptions().WithOverlayColors("#0000ff", "not-a-colour")
	tpl := &Template{
		Bubbles: map[string]Bubble{
			"Q1": {BBox: []float64{10, 10, 20, 20}},
			"Q2": {BBox: []float64{60, 60, 20, 20}},
		},
	}
	gray := uniformGray(100, 100, 255)
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			gray.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	eval := NewBubbleEvaluator(opts).Evaluate(gray, tpl)

	if got := eval.Overlay.NRGBAAt(20, 10); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("Expected configured blue outline, got %v", got)
	}
	if got := eval.Overlay.NRGBAAt(60, 70); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("Expected invalid colour to fall back to red, got %v", got)
	}
}

func TestEvaluate_EmptyTemplate(t *testing.T) {
	eval := NewBubbleEvaluator(DefaultOptions()).Evaluate(uniformGray(10, 10, 0), &Template{})

	if len(eval.Answers) != 0 || len(eval.Bubbles) != 0 {
		t.Errorf("Expected no answers, got %v", eval.Answers)
	}
	if eval.Threshold != DefaultThreshold {
		t.Errorf("Expected default threshold, got %f", eval.Threshold)
	}
}

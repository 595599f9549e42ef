package omr

import (
	"encoding/json"
	"errors"
	"image"
)

const (
	// DefaultThreshold is the intensity cutoff used when a template declares none
	DefaultThreshold = 150.0
	// DefaultVersion is reported for templates without a version
	DefaultVersion = "v1"
	// DefaultChoice is reported for a filled bubble without a declared choice
	DefaultChoice = "A"
	// EmptyRegionMean is the intensity reported for regions with no pixels
	EmptyRegionMean = 255.0
)

var (
	// ErrInvalidImage is returned when bytes cannot be decoded into a non-empty image
	ErrInvalidImage = errors.New("invalid image")
	// ErrNoSheetFound is returned when the binarized photo has no contour at all
	ErrNoSheetFound = errors.New("no sheet contour found")
)

// Template is a versioned answer-sheet layout.
type Template struct {
	Version      string            `json:"version"`
	TemplateSize []float64         `json:"template_size,omitempty" validate:"omitempty,len=2,dive,gt=0"`
	Threshold    *float64          `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	Bubbles      map[string]Bubble `json:"bubbles" validate:"required,dive"`
	Subjects     map[string][]int  `json:"subjects" validate:"dive,len=2,dive,gte=0"`
}

// Bubble is one template-declared mark region.
type Bubble struct {
	BBox   []float64 `json:"bbox" validate:"len=4,dive,gte=0"`
	Choice *string   `json:"choice,omitempty"`
	Marked *string   `json:"marked,omitempty"`
}

// VersionOrDefault returns the template version, "v1" when unset
func (t *Template) VersionOrDefault() string {
	if t.Version == "" {
		return DefaultVersion
	}
	return t.Version
}

// ThresholdOr returns the declared threshold or the given fallback
func (t *Template) ThresholdOr(fallback float64) float64 {
	if t.Threshold == nil {
		return fallback
	}
	return *t.Threshold
}

// Size returns the declared canvas size, if any.
func (t *Template) Size() (width, height float64, ok bool) {
	if len(t.TemplateSize) != 2 {
		return 0, 0, false
	}
	return t.TemplateSize[0], t.TemplateSize[1], true
}

// ChoiceAnswer is the answer reported when the bubble is filled
func (b Bubble) ChoiceAnswer() Answer {
	if b.Choice == nil {
		return Mark(DefaultChoice)
	}
	return Mark(*b.Choice)
}

// MarkedAnswer is the answer reported when the bubble is left empty
func (b Bubble) MarkedAnswer() Answer {
	if b.Marked == nil {
		return NoMark
	}
	return Mark(*b.Marked)
}

// AnswerKey maps question ids to the correct choice label. It may be sparse.
type AnswerKey struct {
	Answers map[string]string `json:"answers"`
}

// Lookup returns the correct label for a question id
func (k *AnswerKey) Lookup(qid string) (string, bool) {
	if k == nil || k.Answers == nil {
		return "", false
	}
	label, ok := k.Answers[qid]
	return label, ok
}

// Len is the number of keyed questions
func (k *AnswerKey) Len() int {
	if k == nil {
		return 0
	}
	return len(k.Answers)
}

// Answer is a detected choice. An absent answer means the sheet carries no mark
// for the question; it serializes as an empty string.
type Answer struct {
	Label   string
	Present bool
}

// NoMark is the absent answer
var NoMark = Answer{}

// Mark builds a present answer; an empty label is treated as absent.
func Mark(label string) Answer {
	return Answer{Label: label, Present: label != ""}
}

// String returns the label, or "" for an absent answer
func (a Answer) String() string {
	if !a.Present {
		return ""
	}
	return a.Label
}

// Matches reports whether the answer is present and equal to label
func (a Answer) Matches(label string) bool {
	return a.Present && a.Label == label
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*a = Mark(label)
	return nil
}

// Point is a sub-pixel image coordinate.
type Point struct {
	X, Y float64
}

// Quad holds four corner points. After ordering they are top-left, top-right,
// bottom-right, bottom-left.
type Quad [4]Point

// ImageCorners returns the four corners of a width x height image
func ImageCorners(width, height int) Quad {
	w, h := float64(width-1), float64(height-1)
	return Quad{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

// CornerSource records how the locator resolved the sheet corners.
type CornerSource string

const (
	CornersFromPolygon   CornerSource = "polygon"
	CornersFromRectangle CornerSource = "min_area_rect"
	CornersFromImage     CornerSource = "image"
)

// Location is the result of sheet boundary detection.
type Location struct {
	Corners  Quad
	Vertices int
	Source   CornerSource
}

// Rectified holds the perspective-corrected sheet.
type Rectified struct {
	Color   *image.NRGBA
	Gray    *image.Gray
	Corners Quad
}

// BBox is an integer region in rectified pixel space.
type BBox struct {
	X, Y, W, H int
}

// Rect converts the box into an image rectangle
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// BubbleResult is the classification of one bubble.
type BubbleResult struct {
	ID         string
	Box        BBox
	Mean       float64
	Filled     bool
	Answer     Answer
	Confidence float64
}

// Evaluation is the outcome of sampling every template bubble.
type Evaluation struct {
	Answers     map[string]Answer
	Confidences map[string]float64
	Bubbles     []BubbleResult
	Threshold   float64
	Overlay     *image.NRGBA
}

// Scores aggregates detected answers against a key.
type Scores struct {
	PerSubject        map[string]int
	PerSubjectCorrect map[string]int
	TotalCorrect      int
	Total             int
}

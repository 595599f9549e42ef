package omr

import "image"

// SheetLocator finds the answer sheet inside a photo
type SheetLocator interface {
	Locate(img image.Image) (*Location, error)
}

// PerspectiveRectifier warps the located sheet into an axis-aligned rectangle
type PerspectiveRectifier interface {
	Rectify(img *image.NRGBA, corners Quad) *Rectified
}

// BubbleEvaluator classifies every template bubble as filled or unfilled
type BubbleEvaluator interface {
	Evaluate(gray *image.Gray, tpl *Template) *Evaluation
}

// ScoreCalculator scores detected answers against an answer key
type ScoreCalculator interface {
	Calculate(answers map[string]Answer, key *AnswerKey, tpl *Template) Scores
}

package models

// SheetResult is the graded record for one uploaded sheet
type SheetResult struct {
	SheetID          string             `json:"sheet_id"`
	Version          string             `json:"version"`
	Answers          map[string]string  `json:"answers"`
	Confidences      map[string]float64 `json:"confidences"`
	PerSubjectScores map[string]int     `json:"per_subject_scores"`
	TotalScore       int                `json:"total_score"`
	Paths            ArtifactPaths      `json:"paths"`
}

// ArtifactPaths locates the persisted rectified and overlay images
type ArtifactPaths struct {
	Rectified string `json:"rectified"`
	Overlay   string `json:"overlay"`
}

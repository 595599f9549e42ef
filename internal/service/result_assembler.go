package service

import (
	"path/filepath"
	"strings"

	apperrors "github.com/anime-shed/omr-inspector-go/internal/errors"
	"github.com/anime-shed/omr-inspector-go/internal/omr"
	"github.com/anime-shed/omr-inspector-go/pkg/models"
)

// ArtifactNames returns the rectified and overlay file names for a sheet
func ArtifactNames(sheetID, ext string) (rectified, overlay string) {
	return sheetID + "_rectified" + ext, sheetID + "_overlay" + ext
}

func artifactExtension(format string) string {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")) {
	case "jpg", "jpeg":
		return ".jpg"
	default:
		return ".png"
	}
}

// validateSheetID rejects ids that cannot safely name an artifact file
func validateSheetID(sheetID string) error {
	if strings.TrimSpace(sheetID) == "" {
		return apperrors.NewValidationError("sheet id is required", nil)
	}
	if sheetID != filepath.Base(sheetID) || strings.ContainsAny(sheetID, `/\`) || sheetID == "." || sheetID == ".." {
		return apperrors.NewValidationError("sheet id must not contain path elements", nil)
	}
	return nil
}

// assembleResult merges the stage outputs into the caller-facing record.
// Absent answers serialize as empty strings.
func assembleResult(sheetID string, tpl *omr.Template, eval *omr.Evaluation, scores omr.Scores, paths models.ArtifactPaths) *models.SheetResult {
	answers := make(map[string]string, len(eval.Answers))
	for qid, answer := range eval.Answers {
		answers[qid] = answer.String()
	}

	confidences := make(map[string]float64, len(eval.Confidences))
	for qid, c := range eval.Confidences {
		confidences[qid] = c
	}

	perSubject := make(map[string]int, len(scores.PerSubject))
	for subject, score := range scores.PerSubject {
		perSubject[subject] = score
	}

	return &models.SheetResult{
		SheetID:          sheetID,
		Version:          tpl.VersionOrDefault(),
		Answers:          answers,
		Confidences:      confidences,
		PerSubjectScores: perSubject,
		TotalScore:       scores.Total,
		Paths:            paths,
	}
}

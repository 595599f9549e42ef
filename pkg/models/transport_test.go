package models

import (
	"encoding/json"
	"testing"
)

func TestGradeResponse_Failed(t *testing.T) {
	data, err := json.Marshal(Failed("invalid image"))
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(data) != `{"error":"invalid image"}` {
		t.Errorf("Expected only the error field, got %s", data)
	}
}

func TestGradeResponse_Graded(t *testing.T) {
	resp := Graded(&SheetResult{
		SheetID:          "abc",
		Version:          "v1",
		Answers:          map[string]string{"Q1": "B", "Q2": ""},
		Confidences:      map[string]float64{"Q1": 255, "Q2": 0},
		PerSubjectScores: map[string]int{"Math": 20},
		TotalScore:       100,
		Paths:            ArtifactPaths{Rectified: "outputs/abc_rectified.png", Overlay: "outputs/abc_overlay.png"},
	})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	for _, field := range []string{"sheet_id", "version", "answers", "confidences", "per_subject_scores", "total_score", "paths"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("Expected field %s in %s", field, data)
		}
	}
	if _, ok := decoded["error"]; ok {
		t.Errorf("Expected no error field on success, got %s", data)
	}
	if decoded["answers"].(map[string]interface{})["Q2"] != "" {
		t.Errorf("Expected unmarked answer to serialize as empty string, got %s", data)
	}
}

func TestNewGradeResponse(t *testing.T) {
	if resp := NewGradeResponse(nil, "no sheet contour found"); resp.SheetResult != nil || resp.Error != "no sheet contour found" {
		t.Errorf("Expected failure shape, got %+v", resp)
	}
	result := &SheetResult{SheetID: "x"}
	if resp := NewGradeResponse(result, "ignored"); resp.SheetResult != result || resp.Error != "" {
		t.Errorf("Expected success shape, got %+v", resp)
	}
}

package omr

import (
	"encoding/json"
	"testing"
)

func TestCalculate(t *testing.T) {
	tpl := &Template{
		Subjects: map[string][]int{
			"Math":    {1, 4},
			"Physics": {5, 6},
		},
	}
	key := &AnswerKey{Answers: map[string]string{
		"Q1": "A", "Q2": "B", "Q3": "C", "Q5": "D", "Q6": "A",
	}}
	answers := map[string]Answer{
		"Q1": Mark("A"),
		"Q2": Mark("C"),
		"Q3": Mark("C"),
		"Q4": Mark("D"), // not in the key
		"Q5": Mark("D"),
		"Q6": NoMark,
	}

	scores := NewScoreCalculator().Calculate(answers, key, tpl)

	if scores.PerSubjectCorrect["Math"] != 2 || scores.PerSubjectCorrect["Physics"] != 1 {
		t.Errorf("Expected 2 and 1 correct, got %v", scores.PerSubjectCorrect)
	}
	if scores.PerSubject["Math"] != 10 {
		t.Errorf("Expected Math score 10, got %d", scores.PerSubject["Math"])
	}
	if scores.PerSubject["Physics"] != 10 {
		t.Errorf("Expected Physics score 10, got %d", scores.PerSubject["Physics"])
	}
	if scores.TotalCorrect != 3 {
		t.Errorf("Expected 3 correct overall, got %d", scores.TotalCorrect)
	}
	if scores.Total != 60 {
		t.Errorf("Expected total 60, got %d", scores.Total)
	}
}

func TestCalculate_EmptyKey(t *testing.T) {
	tpl := &Template{Subjects: map[string][]int{"Math": {1, 2}}}
	answers := map[string]Answer{"Q1": Mark("A"), "Q2": Mark("B")}

	for _, key := range []*AnswerKey{nil, {}, {Answers: map[string]string{}}} {
		scores := NewScoreCalculator().Calculate(answers, key, tpl)
		if scores.Total != 0 {
			t.Errorf("Expected total 0 for an empty key, got %d", scores.Total)
		}
		if scores.PerSubject["Math"] != 0 {
			t.Errorf("Expected subject score 0 for an empty key, got %d", scores.PerSubject["Math"])
		}
	}
}

func TestCalculate_EmptyAnswerNeverMatches(t *testing.T) {
	tpl := &Template{Subjects: map[string][]int{"Math": {1, 1}}}
	key := &AnswerKey{Answers: map[string]string{"Q1": ""}}

	scores := NewScoreCalculator().Calculate(map[string]Answer{"Q1": NoMark}, key, tpl)
	if scores.TotalCorrect != 0 {
		t.Errorf("Expected an absent answer to never match, got %d correct", scores.TotalCorrect)
	}
}

func TestCalculate_OverlappingSubjectsCapTotal(t *testing.T) {
	tpl := &Template{Subjects: map[string][]int{"A": {1, 2}, "B": {1, 2}}}
	key := &AnswerKey{Answers: map[string]string{"Q1": "A", "Q2": "A"}}
	answers := map[string]Answer{"Q1": Mark("A"), "Q2": Mark("A")}

	scores := NewScoreCalculator().Calculate(answers, key, tpl)
	if scores.Total != TotalScale {
		t.Errorf("Expected total capped at %d, got %d", TotalScale, scores.Total)
	}
}

func TestSubjectScore(t *testing.T) {
	tests := []struct {
		correct, length, want int
	}{
		{0, 5, 0},
		{5, 5, 20},
		{1, 3, 7},
		{2, 3, 13},
		{1, 8, 2}, // 2.5 rounds half to even
		{3, 8, 8}, // 7.5 rounds half to even
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := SubjectScore(tt.correct, tt.length); got != tt.want {
			t.Errorf("Expected SubjectScore(%d, %d) = %d, got %d", tt.correct, tt.length, tt.want, got)
		}
	}
}

func TestSubjectScore_Monotonic(t *testing.T) {
	for length := 1; length <= 40; length++ {
		prev := -1
		for correct := 0; correct <= length; correct++ {
			got := SubjectScore(correct, length)
			if got < prev {
				t.Errorf("Expected non-decreasing score for length %d, got %d after %d", length, got, prev)
			}
			if got < 0 || got > SubjectScale {
				t.Errorf("Expected score within 0..%d, got %d", SubjectScale, got)
			}
			prev = got
		}
	}
}

func TestTotalScore(t *testing.T) {
	tests := []struct {
		correct, keyed, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 12}, // 12.5 rounds half to even
		{8, 8, 100},
	}

	for _, tt := range tests {
		if got := TotalScore(tt.correct, tt.keyed); got != tt.want {
			t.Errorf("Expected TotalScore(%d, %d) = %d, got %d", tt.correct, tt.keyed, tt.want, got)
		}
	}
}

func TestQuestionID(t *testing.T) {
	if got := QuestionID(12); got != "Q12" {
		t.Errorf("Expected Q12, got %s", got)
	}
}

func TestAnswerJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Answer{"Q1": Mark("B"), "Q2": NoMark})
	if err != nil {
		t.Fatalf("Failed to marshal answers: %v", err)
	}
	if string(data) != `{"Q1":"B","Q2":""}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var decoded map[string]Answer
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal answers: %v", err)
	}
	if decoded["Q2"].Present || !decoded["Q1"].Matches("B") {
		t.Errorf("Expected absent Q2 and present Q1, got %+v", decoded)
	}
}

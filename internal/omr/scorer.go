package omr

import (
	"math"
	"strconv"
)

const (
	// SubjectScale is the maximum per-subject score
	SubjectScale = 20
	// TotalScale is the maximum total score
	TotalScale = 100
)

type scoreCalculator struct{}

// NewScoreCalculator creates the default score calculator
func NewScoreCalculator() ScoreCalculator {
	return &scoreCalculator{}
}

// QuestionID formats the question id for question number n
func QuestionID(n int) string {
	return "Q" + strconv.Itoa(n)
}

// Calculate counts correct answers per subject range and overall. Questions
// missing from the key never count as correct, and an absent answer never
// matches a key entry.
func (s *scoreCalculator) Calculate(answers map[string]Answer, key *AnswerKey, tpl *Template) Scores {
	scores := Scores{
		PerSubject:        make(map[string]int, len(tpl.Subjects)),
		PerSubjectCorrect: make(map[string]int, len(tpl.Subjects)),
	}

	for subject, bounds := range tpl.Subjects {
		if len(bounds) != 2 {
			continue
		}
		start, end := bounds[0], bounds[1]

		correct, length := 0, 0
		for q := start; q <= end; q++ {
			length++
			qid := QuestionID(q)
			if expected, ok := key.Lookup(qid); ok && answers[qid].Matches(expected) {
				correct++
			}
		}

		scores.PerSubject[subject] = SubjectScore(correct, length)
		scores.PerSubjectCorrect[subject] = correct
		scores.TotalCorrect += correct
	}

	scores.Total = TotalScore(scores.TotalCorrect, key.Len())
	return scores
}

// SubjectScore scales correct answers onto 0..20, rounding half to even
func SubjectScore(correct, length int) int {
	if length <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(correct) / float64(length) * SubjectScale))
}

// TotalScore scales correct answers onto 0..100 against the size of the key,
// rounding half to even. Overlapping subject ranges can count a question
// twice, so the result is capped at 100.
func TotalScore(correct, keyed int) int {
	if keyed <= 0 {
		return 0
	}
	return min(int(math.RoundToEven(float64(correct)/float64(keyed)*TotalScale)), TotalScale)
}

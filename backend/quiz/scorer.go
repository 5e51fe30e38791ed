package quiz

import (
	"math"

	"aicitybuilders/backend/models"
)

// Result is the outcome of scoring one attempt.
type Result struct {
	Score   int  `json:"score"` // 0-100
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Passed  bool `json:"passed"`
}

// Evaluate scores a set of submitted answers against the quiz's question
// bank. An answer is correct only on exact equality with the stored correct
// answer; a question with no submitted answer counts as incorrect. Pure
// function, same input always gives the same result.
func Evaluate(q *models.Quiz, answers map[int]int) Result {
	correct := 0
	for _, question := range q.Questions {
		answer, answered := answers[question.ID]
		if !answered {
			continue
		}
		switch question.Kind {
		case models.QuestionMultiple, models.QuestionTrueFalse:
			if answer == question.Correct {
				correct++
			}
		}
	}

	total := len(q.Questions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		Score:   score,
		Correct: correct,
		Total:   total,
		Passed:  score >= q.RequiredScore,
	}
}

package models

// QuestionKind tags the shape of a quiz question.
type QuestionKind string

const (
	QuestionMultiple  QuestionKind = "multiple"
	QuestionTrueFalse QuestionKind = "true-false"
)

// Answer values are the index of the chosen option for multiple-choice
// questions, and AnswerTrue/AnswerFalse for true-false questions.
const (
	AnswerFalse = 0
	AnswerTrue  = 1
)

type Question struct {
	ID          int          `json:"id"`
	Kind        QuestionKind `json:"kind"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"` // multiple-choice only
	Correct     int          `json:"correct_answer"`
	Explanation string       `json:"explanation,omitempty"`
}

type Quiz struct {
	Questions        []Question `json:"questions"`
	RequiredScore    int        `json:"required_score"`       // percent, 0-100
	TimeLimitMinutes int        `json:"time_limit,omitempty"` // 0 means untimed
}

// TimeLimitSeconds returns the attempt duration, or 0 for untimed quizzes.
func (q *Quiz) TimeLimitSeconds() int {
	return q.TimeLimitMinutes * 60
}

type Lesson struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	VideoURL string `json:"video_url,omitempty"`
	Quiz     *Quiz  `json:"quiz,omitempty"`
}

func (l *Lesson) HasQuiz() bool {
	return l.Quiz != nil
}

type Course struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Price   int      `json:"price"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson returns the lesson with the given id, or nil.
func (c *Course) Lesson(id int) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].ID == id {
			return &c.Lessons[i]
		}
	}
	return nil
}

package controllers

import (
	"log"
	"strconv"
	"sync"

	"aicitybuilders/backend/models"
	"aicitybuilders/backend/progress"
	"aicitybuilders/backend/quiz"

	"github.com/gofiber/fiber/v2"
)

type QuizController struct {
	Tracker *progress.Client
	Logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]*quiz.Session // one attempt per (user, lesson)
}

func NewQuizController(tracker *progress.Client, logger *log.Logger) *QuizController {
	return &QuizController{
		Tracker:  tracker,
		Logger:   logger,
		sessions: make(map[string]*quiz.Session),
	}
}

func sessionKey(email, courseID string, lessonID int) string {
	return email + "|" + models.LessonRowKey(courseID, lessonID)
}

func (qc *QuizController) lookupLesson(c *fiber.Ctx) (*models.Course, *models.Lesson, error) {
	course := models.CourseByID(c.Params("courseId"))
	if course == nil {
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}
	lesson := course.Lesson(lessonID)
	if lesson == nil {
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}
	if !lesson.HasQuiz() {
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson has no quiz",
		})
	}
	return course, lesson, nil
}

// GetLessonQuiz returns the quiz definition without correct answers.
func (qc *QuizController) GetLessonQuiz(c *fiber.Ctx) error {
	_, lesson, errResp := qc.lookupLesson(c)
	if lesson == nil {
		return errResp
	}

	questions := make([]fiber.Map, 0, len(lesson.Quiz.Questions))
	for _, q := range lesson.Quiz.Questions {
		questions = append(questions, fiber.Map{
			"id":       q.ID,
			"kind":     q.Kind,
			"question": q.Question,
			"options":  q.Options,
		})
	}

	return c.JSON(fiber.Map{
		"questions":      questions,
		"required_score": lesson.Quiz.RequiredScore,
		"time_limit":     lesson.Quiz.TimeLimitMinutes,
	})
}

// StartQuiz opens a fresh attempt, discarding any unsubmitted one. A quiz
// whose lesson is already passed cannot be reopened.
func (qc *QuizController) StartQuiz(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	course, lesson, errResp := qc.lookupLesson(c)
	if lesson == nil {
		return errResp
	}

	results := qc.Tracker.GetQuizResults(c.UserContext(), course.ID, email)
	if result, ok := results[lesson.ID]; ok && result.Passed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Quiz already passed",
		})
	}

	session := quiz.NewSession(course, lesson, email, qc.Tracker, nil, qc.Logger)
	session.Start()

	qc.mu.Lock()
	if old := qc.sessions[sessionKey(email, course.ID, lesson.ID)]; old != nil {
		old.Close()
	}
	qc.sessions[sessionKey(email, course.ID, lesson.ID)] = session
	qc.mu.Unlock()

	return c.JSON(fiber.Map{
		"message":         "Quiz started",
		"total_questions": len(lesson.Quiz.Questions),
		"time_limit":      lesson.Quiz.TimeLimitSeconds(),
	})
}

func (qc *QuizController) session(email, courseID string, lessonID int) *quiz.Session {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	return qc.sessions[sessionKey(email, courseID, lessonID)]
}

// AnswerQuestion records an answer in the running attempt.
func (qc *QuizController) AnswerQuestion(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	course, lesson, errResp := qc.lookupLesson(c)
	if lesson == nil {
		return errResp
	}

	var input struct {
		QuestionID int `json:"question_id"`
		Answer     int `json:"answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	session := qc.session(email, course.ID, lesson.ID)
	if session == nil || session.State() != quiz.SessionInProgress {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No quiz in progress",
		})
	}

	session.SelectAnswer(input.QuestionID, input.Answer)
	return c.JSON(fiber.Map{
		"message":   "Answer recorded",
		"remaining": session.Remaining(),
	})
}

// SubmitQuiz finishes the attempt. Manual submission requires every
// question to have an answer; a timed-out attempt has already been
// submitted automatically and its result is returned as-is.
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	course, lesson, errResp := qc.lookupLesson(c)
	if lesson == nil {
		return errResp
	}

	session := qc.session(email, course.ID, lesson.ID)
	if session == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No quiz in progress",
		})
	}

	if session.State() == quiz.SessionSubmitted {
		return c.JSON(fiber.Map{
			"message": "Quiz already submitted",
			"result":  session.Result(),
		})
	}

	result, ok := session.Submit(c.UserContext())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "All questions must be answered",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Quiz submitted",
		"result":  result,
	})
}

package quiz

import (
	"context"
	"log"
	"sync"
	"time"

	"aicitybuilders/backend/models"
	"aicitybuilders/backend/progress"

	"github.com/google/uuid"
)

// SessionState enumerates quiz attempt states.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionInProgress
	SessionSubmitted
)

func (s SessionState) String() string {
	switch s {
	case SessionInProgress:
		return "in_progress"
	case SessionSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

// Presenter receives the result summary on submission. It is a
// fire-and-forget signal to the UI layer, not part of the session's state.
type Presenter interface {
	ShowResult(lessonID int, result Result)
}

// Session drives one quiz attempt end-to-end: start, answer capture,
// timer-driven or manual submission, scoring, persistence and lesson
// auto-completion. At most one attempt exists per (user, lesson); starting
// again discards any unsubmitted attempt. There is no resume: after
// submission or Close the next Start begins a fresh attempt.
type Session struct {
	mu sync.Mutex

	course *models.Course
	lesson *models.Lesson
	email  string

	state     SessionState
	attemptID uuid.UUID
	answers   map[int]int
	index     int
	result    *Result

	timer        *Timer
	tickInterval time.Duration

	tracker   *progress.Client
	presenter Presenter
	logger    *log.Logger
}

func NewSession(course *models.Course, lesson *models.Lesson, email string, tracker *progress.Client, presenter Presenter, logger *log.Logger) *Session {
	return &Session{
		course:       course,
		lesson:       lesson,
		email:        email,
		state:        SessionIdle,
		tickInterval: time.Second,
		tracker:      tracker,
		presenter:    presenter,
		logger:       logger,
	}
}

// SetTickInterval overrides the countdown tick interval. Tests use this to
// run timed attempts in milliseconds.
func (s *Session) SetTickInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickInterval = d
}

// Start opens a fresh attempt: cleared answers, question index 0, and the
// countdown running when the quiz has a time limit. Any previous attempt is
// discarded.
func (s *Session) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lesson.HasQuiz() {
		return false
	}
	s.discardLocked()

	s.state = SessionInProgress
	s.attemptID = uuid.New()
	s.answers = make(map[int]int)
	s.index = 0
	s.result = nil

	if limit := s.lesson.Quiz.TimeLimitSeconds(); limit > 0 {
		attempt := s.attemptID
		s.timer = NewTimerInterval(s.tickInterval, nil, func() {
			s.autoSubmit(attempt)
		})
		s.timer.Start(limit)
	}
	return true
}

// SelectAnswer records the user's answer for a question, overwriting any
// previous choice. Unknown questions are ignored.
func (s *Session) SelectAnswer(questionID, answer int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionInProgress {
		return
	}
	for _, q := range s.lesson.Quiz.Questions {
		if q.ID == questionID {
			s.answers[questionID] = answer
			return
		}
	}
}

// Next advances to the next question, only when the current question has an
// answer and there is a next question.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionInProgress {
		return false
	}
	questions := s.lesson.Quiz.Questions
	if s.index >= len(questions)-1 {
		return false
	}
	if _, answered := s.answers[questions[s.index].ID]; !answered {
		return false
	}
	s.index++
	return true
}

// Prev moves back one question; always allowed while in progress.
func (s *Session) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionInProgress || s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Submit finishes the attempt manually. It is only allowed once every
// question has an answer; the second result reports whether submission
// happened.
func (s *Session) Submit(ctx context.Context) (Result, bool) {
	s.mu.Lock()
	if s.state != SessionInProgress || len(s.answers) < len(s.lesson.Quiz.Questions) {
		s.mu.Unlock()
		return Result{}, false
	}
	return s.submitLocked(ctx), true
}

// autoSubmit is the timer's finished signal: submit whatever has been
// answered. A stale signal from a discarded attempt is ignored.
func (s *Session) autoSubmit(attemptID uuid.UUID) {
	s.mu.Lock()
	if s.state != SessionInProgress || s.attemptID != attemptID {
		s.mu.Unlock()
		return
	}
	s.submitLocked(context.Background())
}

// submitLocked scores the attempt, persists the result, and discards the
// attempt. Persistence is fire-and-forget: a store failure still shows the
// outcome to the user. Unlocks s.mu.
func (s *Session) submitLocked(ctx context.Context) Result {
	result := Evaluate(s.lesson.Quiz, s.answers)
	s.state = SessionSubmitted
	s.result = &result
	s.answers = nil
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
	lessonID := s.lesson.ID
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Printf("Quiz submitted: course=%s lesson=%d score=%d passed=%t", s.course.ID, lessonID, result.Score, result.Passed)
	}
	s.tracker.RecordQuizResult(ctx, s.course.ID, lessonID, result.Score, result.Passed, s.email)
	if s.presenter != nil {
		s.presenter.ShowResult(lessonID, result)
	}
	return result
}

// Close discards the attempt and cancels the countdown. Called on modal
// close and lesson navigation so no orphaned tick fires against a dead
// attempt.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked()
	s.state = SessionIdle
}

func (s *Session) discardLocked() {
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
	s.attemptID = uuid.Nil
	s.answers = nil
	s.index = 0
}

// State reports the current attempt state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// QuestionIndex reports the current question position.
func (s *Session) QuestionIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Remaining reports the seconds left on a timed attempt, or 0.
func (s *Session) Remaining() int {
	s.mu.Lock()
	timer := s.timer
	s.mu.Unlock()
	if timer == nil {
		return 0
	}
	return timer.Remaining()
}

// Result returns the last submitted result, or nil before submission.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

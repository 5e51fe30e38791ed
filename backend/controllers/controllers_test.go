package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"aicitybuilders/backend/config"
	"aicitybuilders/backend/entitlement"
	"aicitybuilders/backend/middleware"
	"aicitybuilders/backend/models"
	"aicitybuilders/backend/progress"
	"aicitybuilders/backend/store"
	"aicitybuilders/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

const testEmail = "student@example.com"

var testCfg = &config.Config{JWTSecret: "testsecret"}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// failingStore simulates an unreachable record store.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, table, pk, rk string) ([]byte, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) Upsert(ctx context.Context, table, pk, rk string, record []byte) error {
	return errors.New("store unavailable")
}

func (failingStore) List(ctx context.Context, table, pk, prefix string) (map[string][]byte, error) {
	return nil, errors.New("store unavailable")
}

// newTestApp wires the protected API the way routes.SetupRoutes does, minus
// the auth controller so tests need no SQL database.
func newTestApp(records store.RecordStore) *fiber.App {
	app := fiber.New()
	logger := testLogger()

	authMiddleware := middleware.AuthMiddleware(testCfg)
	checker := entitlement.NewChecker(records, logger)
	tracker := progress.NewClient(records, store.NewMemoryStore(), logger)

	accessController := NewAccessController(checker)
	app.Get("/api/courses/:courseId/access", authMiddleware, accessController.CheckCourseAccess)

	courses := app.Group("/api/courses", authMiddleware)
	progressController := NewProgressController(tracker)
	courses.Get("/:courseId/progress", progressController.GetCourseProgress)
	courses.Post("/:courseId/lessons/:lessonId/complete", progressController.CompleteLesson)

	quizController := NewQuizController(tracker, logger)
	courses.Get("/:courseId/lessons/:lessonId/quiz", quizController.GetLessonQuiz)
	courses.Post("/:courseId/lessons/:lessonId/quiz/start", quizController.StartQuiz)
	courses.Post("/:courseId/lessons/:lessonId/quiz/answer", quizController.AnswerQuestion)
	courses.Post("/:courseId/lessons/:lessonId/quiz/submit", quizController.SubmitQuiz)

	dashboardController := NewDashboardController(records, tracker, logger)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)

	return app
}

func testToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testEmail, testCfg)
	assert.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	assert.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

func seedEntitlement(t *testing.T, rs store.RecordStore, email, courseID string, paid bool) {
	t.Helper()
	record, err := json.Marshal(models.EntitlementRecord{IsPaid: paid})
	assert.NoError(t, err)
	assert.NoError(t, rs.Upsert(context.Background(), models.TableEntitlements, email, courseID, record))
}

func TestCheckCourseAccessUnauthorized(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, result := doRequest(t, app, "GET", "/api/courses/ai-coding-course/access", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login", result["redirect"])
}

func TestCheckCourseAccessUnknownCourse(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, _ := doRequest(t, app, "GET", "/api/courses/no-such-course/access", testToken(t), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCheckCourseAccessNotPaid(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, result := doRequest(t, app, "GET", "/api/courses/ai-coding-course/access", testToken(t), nil)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, entitlement.PurchasePath, result["redirect"])
	assert.Nil(t, result["retry"])
}

func TestCheckCourseAccessStoreDown(t *testing.T) {
	app := newTestApp(failingStore{})

	resp, result := doRequest(t, app, "GET", "/api/courses/ai-coding-course/access", testToken(t), nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, true, result["retry"], "an outage denial must offer a retry")
}

func TestCheckCourseAccessPaid(t *testing.T) {
	records := store.NewMemoryStore()
	seedEntitlement(t, records, testEmail, "ai-coding-course", true)
	app := newTestApp(records)

	resp, result := doRequest(t, app, "GET", "/api/courses/ai-coding-course/access", testToken(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["has_access"])
}

func TestCompleteLessonUpdatesPercent(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())
	token := testToken(t)

	resp, result := doRequest(t, app, "POST", "/api/courses/ai-coding-course/lessons/1/complete", token,
		map[string]bool{"completed": true})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	// 1 of 4 lessons completed
	assert.Equal(t, float64(1), result["completed"])
	assert.Equal(t, float64(25), result["percent"])

	resp, result = doRequest(t, app, "GET", "/api/courses/ai-coding-course/progress", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), result["completed"])
	assert.Equal(t, float64(4), result["total_lessons"])
	assert.Equal(t, float64(25), result["percent"])

	lessons := result["lessons"].(map[string]interface{})
	assert.Equal(t, true, lessons["1"])
}

func TestCompleteLessonUncomplete(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())
	token := testToken(t)

	doRequest(t, app, "POST", "/api/courses/ai-coding-course/lessons/1/complete", token,
		map[string]bool{"completed": true})
	resp, result := doRequest(t, app, "POST", "/api/courses/ai-coding-course/lessons/1/complete", token,
		map[string]bool{"completed": false})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), result["completed"])
	assert.Equal(t, float64(0), result["percent"])
}

func TestCompleteLessonInvalidLesson(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, _ := doRequest(t, app, "POST", "/api/courses/ai-coding-course/lessons/99/complete", testToken(t),
		map[string]bool{"completed": true})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetCourseProgressStoreDownFailsOpen(t *testing.T) {
	app := newTestApp(failingStore{})

	resp, result := doRequest(t, app, "GET", "/api/courses/ai-coding-course/progress", testToken(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), result["completed"])
	assert.Equal(t, float64(0), result["percent"])
}

func TestGetLessonQuizHidesAnswers(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, result := doRequest(t, app, "GET", "/api/courses/ai-coding-course/lessons/2/quiz", testToken(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(70), result["required_score"])
	assert.Equal(t, float64(5), result["time_limit"])

	questions := result["questions"].([]interface{})
	assert.Len(t, questions, 3)
	for _, q := range questions {
		_, leaked := q.(map[string]interface{})["correct"]
		assert.False(t, leaked, "correct answers must never reach the client")
	}
}

func TestGetLessonQuizNoQuiz(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, _ := doRequest(t, app, "GET", "/api/courses/ai-coding-course/lessons/1/quiz", testToken(t), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestQuizFlowPass(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())
	token := testToken(t)
	base := "/api/courses/ai-coding-course/lessons/2/quiz"

	resp, result := doRequest(t, app, "POST", base+"/start", token, map[string]string{})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), result["total_questions"])
	assert.Equal(t, float64(300), result["time_limit"])

	answers := []map[string]int{
		{"question_id": 1, "answer": 1},
		{"question_id": 2, "answer": models.AnswerFalse},
		{"question_id": 3, "answer": 1},
	}
	for _, a := range answers {
		resp, _ = doRequest(t, app, "POST", base+"/answer", token, a)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, result = doRequest(t, app, "POST", base+"/submit", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	submitted := result["result"].(map[string]interface{})
	assert.Equal(t, float64(100), submitted["score"])
	assert.Equal(t, true, submitted["passed"])

	// the passed quiz completed its lesson
	resp, result = doRequest(t, app, "GET", "/api/courses/ai-coding-course/progress", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	lessons := result["lessons"].(map[string]interface{})
	assert.Equal(t, true, lessons["2"])

	// a passed quiz cannot be reopened
	resp, _ = doRequest(t, app, "POST", base+"/start", token, map[string]string{})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestQuizFlowFailAllowsRetry(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())
	token := testToken(t)
	base := "/api/courses/ai-coding-course/lessons/2/quiz"

	doRequest(t, app, "POST", base+"/start", token, map[string]string{})
	answers := []map[string]int{
		{"question_id": 1, "answer": 0},
		{"question_id": 2, "answer": models.AnswerTrue},
		{"question_id": 3, "answer": 0},
	}
	for _, a := range answers {
		doRequest(t, app, "POST", base+"/answer", token, a)
	}

	resp, result := doRequest(t, app, "POST", base+"/submit", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	submitted := result["result"].(map[string]interface{})
	assert.Equal(t, float64(0), submitted["score"])
	assert.Equal(t, false, submitted["passed"])

	// a failed quiz may be retried
	resp, _ = doRequest(t, app, "POST", base+"/start", token, map[string]string{})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSubmitQuizRequiresAllAnswers(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())
	token := testToken(t)
	base := "/api/courses/ai-coding-course/lessons/2/quiz"

	doRequest(t, app, "POST", base+"/start", token, map[string]string{})
	doRequest(t, app, "POST", base+"/answer", token, map[string]int{"question_id": 1, "answer": 1})

	resp, result := doRequest(t, app, "POST", base+"/submit", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All questions must be answered", result["error"])
}

func TestSubmitQuizWithoutSession(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, _ := doRequest(t, app, "POST", "/api/courses/ai-coding-course/lessons/2/quiz/submit", testToken(t), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAnswerQuestionWithoutSession(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp, _ := doRequest(t, app, "POST", "/api/courses/ai-coding-course/lessons/2/quiz/answer", testToken(t),
		map[string]int{"question_id": 1, "answer": 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSubmitQuizOutcomeShownWhenStoreFails(t *testing.T) {
	app := newTestApp(failingStore{})
	token := testToken(t)
	base := "/api/courses/ai-coding-course/lessons/2/quiz"

	doRequest(t, app, "POST", base+"/start", token, map[string]string{})
	answers := []map[string]int{
		{"question_id": 1, "answer": 1},
		{"question_id": 2, "answer": models.AnswerFalse},
		{"question_id": 3, "answer": 1},
	}
	for _, a := range answers {
		doRequest(t, app, "POST", base+"/answer", token, a)
	}

	// the durable write is dropped, the user still sees the result
	resp, result := doRequest(t, app, "POST", base+"/submit", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	submitted := result["result"].(map[string]interface{})
	assert.Equal(t, float64(100), submitted["score"])
	assert.Equal(t, true, submitted["passed"])
}

func TestDashboardListsPaidCourses(t *testing.T) {
	records := store.NewMemoryStore()
	seedEntitlement(t, records, testEmail, "ai-coding-course", true)
	seedEntitlement(t, records, testEmail, "chatgpt-agent-beginner", false)
	app := newTestApp(records)
	token := testToken(t)

	doRequest(t, app, "POST", "/api/courses/ai-coding-course/lessons/1/complete", token,
		map[string]bool{"completed": true})

	resp, result := doRequest(t, app, "GET", "/api/dashboard", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := result["courses"].([]interface{})
	assert.Len(t, courses, 1, "unpaid courses stay off the dashboard")

	course := courses[0].(map[string]interface{})
	assert.Equal(t, "ai-coding-course", course["id"])
	assert.Equal(t, float64(1), course["completed"])
	assert.Equal(t, float64(25), course["percent"])
}

func TestDashboardStoreDownFailsOpen(t *testing.T) {
	app := newTestApp(failingStore{})

	resp, result := doRequest(t, app, "GET", "/api/dashboard", testToken(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, result["courses"])
}

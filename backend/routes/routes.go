package routes

import (
	"log"

	"aicitybuilders/backend/config"
	"aicitybuilders/backend/controllers"
	"aicitybuilders/backend/entitlement"
	"aicitybuilders/backend/middleware"
	"aicitybuilders/backend/progress"
	"aicitybuilders/backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, records store.RecordStore, sessionCache *store.MemoryStore, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Subsystem wiring
	checker := entitlement.NewChecker(records, logger)
	tracker := progress.NewClient(records, sessionCache, logger)

	// Access routes
	accessController := controllers.NewAccessController(checker)
	app.Get("/api/courses/:courseId/access", authMiddleware, accessController.CheckCourseAccess)

	// Progress routes
	progressController := controllers.NewProgressController(tracker)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/:courseId/progress", progressController.GetCourseProgress)
	courses.Post("/:courseId/lessons/:lessonId/complete", progressController.CompleteLesson)

	// Quiz routes
	quizController := controllers.NewQuizController(tracker, logger)
	courses.Get("/:courseId/lessons/:lessonId/quiz", quizController.GetLessonQuiz)
	courses.Post("/:courseId/lessons/:lessonId/quiz/start", quizController.StartQuiz)
	courses.Post("/:courseId/lessons/:lessonId/quiz/answer", quizController.AnswerQuestion)
	courses.Post("/:courseId/lessons/:lessonId/quiz/submit", quizController.SubmitQuiz)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(records, tracker, logger)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
}

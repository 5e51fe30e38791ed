package controllers

import (
	"strconv"

	"aicitybuilders/backend/models"
	"aicitybuilders/backend/progress"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Tracker *progress.Client
}

func NewProgressController(tracker *progress.Client) *ProgressController {
	return &ProgressController{Tracker: tracker}
}

// GetCourseProgress godoc
// @Summary Get course progress
// @Description Returns the user's lesson completion flags, quiz results and completion percent
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /courses/{courseId}/progress [get]
func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	courseID := c.Params("courseId")
	course := models.CourseByID(courseID)
	if course == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	completion := pc.Tracker.GetProgress(c.UserContext(), courseID, email)
	quizResults := pc.Tracker.GetQuizResults(c.UserContext(), courseID, email)
	completed := progress.CompletedCount(completion)

	return c.JSON(fiber.Map{
		"lessons":       completion,
		"quiz_results":  quizResults,
		"completed":     completed,
		"total_lessons": len(course.Lessons),
		"percent":       progress.CompletionPercent(completed, len(course.Lessons)),
	})
}

// CompleteLesson marks a lesson completed (or not). Lessons without quizzes
// may only be completed this way; passed quizzes complete their lesson
// automatically.
func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	courseID := c.Params("courseId")
	course := models.CourseByID(courseID)
	if course == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil || course.Lesson(lessonID) == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var input struct {
		Completed bool `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	pc.Tracker.SetLessonCompleted(c.UserContext(), courseID, lessonID, input.Completed, email)

	completion := pc.Tracker.GetProgress(c.UserContext(), courseID, email)
	completed := progress.CompletedCount(completion)

	return c.JSON(fiber.Map{
		"message":   "Progress updated",
		"completed": completed,
		"percent":   progress.CompletionPercent(completed, len(course.Lessons)),
	})
}

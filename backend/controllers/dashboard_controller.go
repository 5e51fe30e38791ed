package controllers

import (
	"encoding/json"
	"log"

	"aicitybuilders/backend/models"
	"aicitybuilders/backend/progress"
	"aicitybuilders/backend/store"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Store   store.RecordStore
	Tracker *progress.Client
	Logger  *log.Logger
}

func NewDashboardController(rs store.RecordStore, tracker *progress.Client, logger *log.Logger) *DashboardController {
	return &DashboardController{Store: rs, Tracker: tracker, Logger: logger}
}

// GetDashboard godoc
// @Summary Get user dashboard
// @Description Returns the user's purchased courses with completion percent
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	entitlements, err := dc.Store.List(c.UserContext(), models.TableEntitlements, email, "")
	if err != nil {
		// reads fail open: show an empty dashboard rather than an error page
		dc.Logger.Printf("Could not load entitlements: %v", err)
		entitlements = nil
	}

	courses := make([]fiber.Map, 0)
	for courseID, raw := range entitlements {
		var record models.EntitlementRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			dc.Logger.Printf("Skipping malformed entitlement %s: %v", courseID, err)
			continue
		}
		if !record.IsPaid {
			continue
		}
		course := models.CourseByID(courseID)
		if course == nil {
			continue
		}

		completion := dc.Tracker.GetProgress(c.UserContext(), courseID, email)
		completed := progress.CompletedCount(completion)

		courses = append(courses, fiber.Map{
			"id":            course.ID,
			"title":         course.Title,
			"total_lessons": len(course.Lessons),
			"completed":     completed,
			"percent":       progress.CompletionPercent(completed, len(course.Lessons)),
			"paid_at":       record.PaidAt,
		})
	}

	return c.JSON(fiber.Map{
		"courses": courses,
	})
}

package controllers

import (
	"aicitybuilders/backend/entitlement"
	"aicitybuilders/backend/models"
	"aicitybuilders/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AccessController struct {
	Checker *entitlement.Checker
}

func NewAccessController(checker *entitlement.Checker) *AccessController {
	return &AccessController{Checker: checker}
}

// CheckCourseAccess godoc
// @Summary Check course access
// @Description Returns whether the signed-in user may view the course
// @Tags access
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 402 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/access [get]
func (ac *AccessController) CheckCourseAccess(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	courseID := c.Params("courseId")
	if models.CourseByID(courseID) == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	result := ac.Checker.CheckAccess(c.UserContext(), email, courseID)
	if result.StoreErr != nil {
		// fail closed, but let the page offer a retry instead of a hard denial
		return utils.Denied(c, fiber.StatusServiceUnavailable,
			"Could not verify payment status, please try again", entitlement.PurchasePath, true)
	}
	if !result.HasAccess {
		return utils.Denied(c, fiber.StatusPaymentRequired,
			"Payment is required to view this course", entitlement.PurchasePath, false)
	}

	return c.JSON(fiber.Map{
		"has_access": true,
	})
}

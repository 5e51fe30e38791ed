package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse wraps successful JSON replies
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse wraps error JSON replies
type ErrorResponse struct {
	Success  bool        `json:"success"`
	Error    string      `json:"error"`
	Message  string      `json:"message,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Retry    bool        `json:"retry,omitempty"`
	Details  interface{} `json:"details,omitempty"`
}

// Success sends a successful JSON response
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// Error sends a JSON error response
func Error(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}

// Denied sends an error response carrying the redirect instruction for the
// page, and whether a retry affordance should be shown instead of a hard
// denial.
func Denied(c *fiber.Ctx, status int, message, redirect string, retry bool) error {
	return c.Status(status).JSON(ErrorResponse{
		Success:  false,
		Error:    http.StatusText(status),
		Message:  message,
		Redirect: redirect,
		Retry:    retry,
	})
}

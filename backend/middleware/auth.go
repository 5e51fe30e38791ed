package middleware

import (
	"aicitybuilders/backend/config"
	"aicitybuilders/backend/utils"

	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := utils.ExtractUserEmailFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "Unauthorized",
				"redirect": "/login",
			})
		}
		c.Locals("email", email)
		return c.Next()
	}
}

package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware logs every request
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		logger.Printf("%s %s%s%s %s%d%s %s %s",
			c.IP(),
			getMethodColor(c.Method()), c.Method(), "\033[0m",
			getStatusColor(status), status, "\033[0m",
			c.Path(),
			latency,
		)

		return err
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // red
	case status >= 400:
		return "\033[33m" // yellow
	case status >= 300:
		return "\033[36m" // cyan
	case status >= 200:
		return "\033[32m" // green
	default:
		return "\033[37m" // white
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m" // blue
	case "POST":
		return "\033[33m" // yellow
	case "PUT":
		return "\033[36m" // cyan
	case "DELETE":
		return "\033[31m" // red
	default:
		return "\033[37m" // white
	}
}

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shiptrack/api/pkg/logging"
)

// AccessLog logs one line per request. Errors returned down the chain are
// rendered here through the app's ErrorHandler so the logged status is final.
func AccessLog(log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Info(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)
		return nil
	}
}

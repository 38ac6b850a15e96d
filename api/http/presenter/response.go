package presenter

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shiptrack/api/pkg/logging"
)

const internalErrorMessage = "internal server error"

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Internal logs err and answers with a generic 500 that carries no detail.
func Internal(c *fiber.Ctx, log logging.Logger, msg string, err error) error {
	log.Error(c.UserContext(), msg, "path", c.Path(), "error", err)
	return Error(c, fiber.StatusInternalServerError, internalErrorMessage)
}

// ErrorHandler is the app-wide fiber.ErrorHandler. fiber errors keep their
// status and message; everything else becomes a generic 500.
func ErrorHandler(log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return Error(c, fe.Code, fe.Message)
		}
		return Internal(c, log, "unhandled error", err)
	}
}

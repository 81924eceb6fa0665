package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/models"
)

// errorCodes maps common HTTP statuses to stable machine-readable codes.
var errorCodes = map[int]string{
	fiber.StatusBadRequest:   "BAD_REQUEST",
	fiber.StatusUnauthorized: "UNAUTHORIZED",
	fiber.StatusForbidden:    "FORBIDDEN",
	fiber.StatusNotFound:     "NOT_FOUND",
}

// ErrorHandler returns a custom error handler middleware
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		errCode, ok := errorCodes[code]
		if !ok {
			errCode = "ERROR"
		}

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errCode,
				Message: message,
			},
		})
	}
}

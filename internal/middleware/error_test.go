package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/models"
)

func newErrorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(logging.NewDevelopment()),
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func TestErrorHandler_FiberError(t *testing.T) {
	tests := []struct {
		name           string
		err            *fiber.Error
		expectedStatus int
		expectedCode   string
	}{
		{"bad request", fiber.ErrBadRequest, fiber.StatusBadRequest, "BAD_REQUEST"},
		{"unauthorized", fiber.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", fiber.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"internal", fiber.ErrInternalServerError, fiber.StatusInternalServerError, "ERROR"},
		{"unmapped status", fiber.ErrTeapot, fiber.StatusTeapot, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newErrorApp(tt.err)

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			if err != nil {
				t.Fatalf("Test failed: %v", err)
			}
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}

			var body models.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Error.Code != tt.expectedCode {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.expectedCode)
			}
			if body.Error.Message != tt.err.Message {
				t.Errorf("message = %q, want %q", body.Error.Message, tt.err.Message)
			}
		})
	}
}

func TestErrorHandler_GenericError(t *testing.T) {
	app := newErrorApp(errors.New("boom"))

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	if err != nil {
		t.Fatalf("Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("generic error should be 500, got %d", resp.StatusCode)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	// Internal details are not leaked to clients.
	if body.Error.Message != "Internal Server Error" {
		t.Errorf("message = %q, want generic message", body.Error.Message)
	}
}

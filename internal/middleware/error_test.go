package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
	"quizcraft/internal/middleware"
)

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"session not found", domain.NewSessionNotFoundError("abc"), http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"not found", domain.NewNotFoundError("material x not found"), http.StatusNotFound, "NOT_FOUND"},
		{"empty quiz", domain.NewEmptyQuizError("nothing"), http.StatusBadRequest, "EMPTY_QUIZ"},
		{"unsupported format", domain.NewUnsupportedFormatError("docx"), http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{"invalid difficulty", domain.NewInvalidDifficultyError("extreme"), http.StatusBadRequest, "INVALID_DIFFICULTY"},
		{"pool too small", domain.NewPoolTooSmallError("NLP", 5, 2), http.StatusBadRequest, "POOL_TOO_SMALL"},
		{"extraction failed", domain.NewExtractionError("image OCR is not configured", nil), http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
		{"llm", domain.NewLLMServiceError("ollama", errors.New("timeout")), http.StatusServiceUnavailable, "LLM_SERVICE_ERROR"},
		{"unauthorized", domain.NewUnauthorizedError("no"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrapped internal", fmt.Errorf("outer: %w", domain.NewInternalError("db", errors.New("down"))), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"fiber error", fiber.NewError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body middleware.ErrorResponse
			raw, _ := io.ReadAll(resp.Body)
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.ValidationErrors{domain.NewMissingFieldError("format"), domain.NewOutOfRangeError("num_questions", 99, 1, 50)}
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body middleware.ValidationErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "format", body.Errors[0].Field)
}

func TestErrorHandler_DetailsFromContext(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error { return domain.NewSessionNotFoundError("abc") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	var body middleware.ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "abc", body.Details["session_id"])
}

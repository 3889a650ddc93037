package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"quizcraft/internal/domain"
	"quizcraft/internal/middleware"
)

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.RequestIDKey).(string))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	id := resp.Header.Get(middleware.RequestIDHeader)
	_, parseErr := uuid.Parse(id)
	assert.NoError(t, parseErr)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get(middleware.RequestIDHeader))
}

func TestRequestLogger_RunsErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	app.Get("/", func(c *fiber.Ctx) error { return domain.NewSessionNotFoundError("x") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidateSessionID(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	vm := middleware.NewValidationMiddleware()
	app.Get("/sessions/:id", vm.ValidateSessionID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.ValidatedSessionIDKey).(string))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions/01HZX3K8Q9RZ5T1V2W3X4Y5Z6A", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sessions/not-a-ulid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRequestLogger_RecordsServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Get("/quiz", func(c *fiber.Ctx) error {
		if !trace.SpanFromContext(c.UserContext()).SpanContext().IsValid() {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quiz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /quiz", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
}

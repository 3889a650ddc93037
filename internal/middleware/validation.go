package middleware

import (
	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/validation"
)

const ValidatedSessionIDKey = "validated_session_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID checks the :id path parameter of session routes.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateSessionID(id); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedSessionIDKey, id)
		return c.Next()
	}
}

package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	InstructorIDKey     = "instructorID" // fiber.Ctx locals key
	accessTokenType     = "access"
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// Protected rejects requests without a valid access token and stores the
// instructor id in locals.
func Protected(authService TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		// the transport trims trailing spaces, so "Bearer " arrives as "Bearer"
		if strings.TrimSpace(authHeader) == strings.TrimSpace(BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		if claims.TokenType != accessTokenType {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(InstructorIDKey, claims.InstructorID)
		return c.Next()
	}
}

// OptionalAuth sets the instructor id when a valid access token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(authService TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Next()
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}
		if claims.TokenType != accessTokenType {
			logger.Get().Debug("OptionalAuth: not an access token, proceeding as anonymous", zap.String("tokenType", claims.TokenType))
			return c.Next()
		}

		c.Locals(InstructorIDKey, claims.InstructorID)
		return c.Next()
	}
}

// InstructorID returns the authenticated instructor, or "" for anonymous requests.
func InstructorID(c *fiber.Ctx) string {
	id, _ := c.Locals(InstructorIDKey).(string)
	return id
}

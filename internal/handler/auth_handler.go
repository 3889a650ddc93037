package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
)

const (
	oauthStateCookieName = "oauthstate"
	oauthStateTTL        = 10 * time.Minute
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Redirects the instructor to Google's OAuth2 consent page.
// @Tags auth
// @Success 307 {string} string "Redirects to Google"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	appLogger := logger.Get()
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		appLogger.Error("Failed to generate random state for OAuth", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(middleware.ErrorResponse{
			Code: "OAUTH_STATE_GENERATION_ERROR", Message: "Could not generate state for OAuth flow", Status: fiber.StatusInternalServerError,
		})
	}
	state := base64.URLEncoding.EncodeToString(b)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Expires:  time.Now().Add(oauthStateTTL),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Authenticates the instructor after Google login and issues JWTs.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid state or code"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	appLogger := logger.Get()
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_CODE", Message: "Authorization code is missing", Status: fiber.StatusBadRequest,
		})
	}
	if receivedState == "" || expectedState == "" || receivedState != expectedState {
		appLogger.Warn("OAuth state mismatch", zap.String("received", receivedState), zap.String("expected", expectedState))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_STATE", Message: "OAuth state mismatch or missing", Status: fiber.StatusBadRequest,
		})
	}

	accessToken, refreshToken, instructor, err := h.authService.HandleGoogleCallback(c.UserContext(), code, receivedState, expectedState)
	if err != nil {
		appLogger.Error("Failed to handle Google callback", zap.Error(err))
		if errors.Is(err, service.ErrInvalidAuthState) || errors.Is(err, service.ErrFailedToExchangeToken) {
			return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
				Code: "OAUTH_CALLBACK_ERROR", Message: err.Error(), Status: fiber.StatusBadRequest,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(middleware.ErrorResponse{
			Code: "OAUTH_PROCESSING_ERROR", Message: "Error processing Google login", Status: fiber.StatusInternalServerError,
		})
	}

	appLogger.Info("Google OAuth callback successful, tokens issued", zap.String("instructorID", instructor.ID))
	return c.JSON(dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// RefreshToken exchanges a refresh token for a new token pair.
// @Summary Refresh JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Refresh token missing or invalid format"
// @Failure 401 {object} middleware.ErrorResponse "Refresh token invalid or expired"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_REFRESH_TOKEN", Message: "Refresh token is missing in request body", Status: fiber.StatusBadRequest,
		})
	}

	accessToken, refreshToken, err := h.authService.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		logger.Get().Warn("Failed to refresh token", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_REFRESH_TOKEN", Message: "Failed to refresh token: " + err.Error(), Status: fiber.StatusUnauthorized,
		})
	}
	return c.JSON(dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Logout ends the session on the client side; JWTs stay valid until they expire.
// @Summary Logout instructor
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	logger.Get().Info("Instructor logged out", zap.String("instructorID", middleware.InstructorID(c)))
	return c.JSON(dto.MessageResponse{Message: "Successfully logged out"})
}

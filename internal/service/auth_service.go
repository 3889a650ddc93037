package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	TokenTypeAccess   = "access"
	TokenTypeRefresh  = "refresh"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrNotRefreshToken       = errors.New("not a refresh token")
)

// AuthService defines the interface for instructor authentication.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (accessToken string, refreshToken string, instructor *domain.Instructor, err error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, instructor *domain.Instructor, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, newRefreshToken string, err error)
}

type authServiceImpl struct {
	instructorRepo domain.InstructorRepository
	oauth2Config   *oauth2.Config
	authCfg        config.AuthConfig
	userInfoURL    string
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(instructorRepo domain.InstructorRepository, authCfg config.AuthConfig) (AuthService, error) {
	if authCfg.JWTSecret == "" {
		return nil, errors.New("jwt secret for auth service is not configured")
	}
	return &authServiceImpl{
		instructorRepo: instructorRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     authCfg.GoogleClientID,
			ClientSecret: authCfg.GoogleClientSecret,
			RedirectURL:  authCfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		authCfg:     authCfg,
		userInfoURL: googleUserInfoURL,
	}, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *authServiceImpl) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFailedToGetUserInfo, resp.StatusCode)
	}

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return nil, errors.New("google user info is incomplete")
	}
	return &userInfo, nil
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (string, string, *domain.Instructor, error) {
	appLogger := logger.Get()
	if receivedState == "" || receivedState != expectedState {
		return "", "", nil, ErrInvalidAuthState
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	userInfo, err := s.fetchUserInfo(ctx, googleToken)
	if err != nil {
		return "", "", nil, err
	}

	instructor, err := s.instructorRepo.GetInstructorByGoogleID(ctx, userInfo.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("error fetching instructor by google_id: %w", err)
	}

	now := time.Now()
	if instructor == nil {
		instructor = &domain.Instructor{
			ID:        util.NewULID(),
			GoogleID:  userInfo.ID,
			Email:     userInfo.Email,
			Name:      userInfo.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.instructorRepo.CreateInstructor(ctx, instructor); err != nil {
			return "", "", nil, fmt.Errorf("failed to create instructor: %w", err)
		}
		appLogger.Info("New instructor created via Google OAuth", zap.String("instructorID", instructor.ID), zap.String("email", instructor.Email))
	} else {
		instructor.Email = userInfo.Email
		instructor.Name = userInfo.Name
		instructor.UpdatedAt = now
		if err := s.instructorRepo.UpdateInstructor(ctx, instructor); err != nil {
			return "", "", nil, fmt.Errorf("failed to update instructor: %w", err)
		}
		appLogger.Info("Instructor logged in via Google OAuth", zap.String("instructorID", instructor.ID), zap.String("email", instructor.Email))
	}

	accessToken, refreshToken, err := s.issuePair(ctx, instructor)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, instructor, nil
}

func (s *authServiceImpl) issuePair(ctx context.Context, instructor *domain.Instructor) (string, string, error) {
	accessToken, err := s.CreateJWT(ctx, instructor, s.authCfg.AccessTokenTTL, TokenTypeAccess)
	if err != nil {
		return "", "", fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, err := s.CreateJWT(ctx, instructor, s.authCfg.RefreshTokenTTL, TokenTypeRefresh)
	if err != nil {
		return "", "", fmt.Errorf("failed to create refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, instructor *domain.Instructor, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		InstructorID: instructor.ID,
		TokenType:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   instructor.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

func tokenSnippet(tokenString string) string {
	return tokenString[:min(len(tokenString), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authCfg.JWTSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired",
				zap.Error(err),
				zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	appLogger := logger.Get()
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		appLogger.Warn("Refresh token validation failed",
			zap.Error(err),
			zap.String("refresh_token_snippet", tokenSnippet(refreshTokenString)))
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", "", ErrNotRefreshToken
	}

	instructor, err := s.instructorRepo.GetInstructorByID(ctx, claims.InstructorID)
	if err != nil || instructor == nil {
		appLogger.Error("Instructor not found for refresh token", zap.String("instructorID", claims.InstructorID), zap.Error(err))
		return "", "", domain.NewNotFoundError(fmt.Sprintf("Instructor %s not found for refresh token", claims.InstructorID))
	}

	newAccessToken, newRefreshToken, err := s.issuePair(ctx, instructor)
	if err != nil {
		return "", "", err
	}
	appLogger.Info("JWT token refreshed", zap.String("instructorID", instructor.ID))
	return newAccessToken, newRefreshToken, nil
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/middleware"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth     *AuthHandler
	Session  *SessionHandler
	Material *MaterialHandler
	Pool     *PoolHandler
	Tag      *TagHandler
	Quiz     *QuizHandler
	Health   *HealthHandler
}

// RegisterRoutes mounts the API on router. Routes that own instructor data
// require a bearer token; the session workflow works anonymously.
func RegisterRoutes(router fiber.Router, h Handlers, auth middleware.TokenValidator) {
	protected := middleware.Protected(auth)
	optional := middleware.OptionalAuth(auth)
	validateSession := middleware.NewValidationMiddleware().ValidateSessionID()

	if h.Health != nil {
		router.Get("/health", h.Health.Health)
	}

	authGroup := router.Group("/auth")
	authGroup.Get("/google/login", h.Auth.GoogleLogin)
	authGroup.Get("/google/callback", h.Auth.GoogleCallback)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", protected, h.Auth.Logout)

	sessions := router.Group("/sessions")
	sessions.Post("/", h.Session.CreateSession)
	sessions.Get("/:id", validateSession, h.Session.GetSession)
	sessions.Post("/:id/generate", validateSession, optional, h.Session.Generate)
	sessions.Post("/:id/generate/upload", validateSession, protected, h.Session.GenerateUpload)
	sessions.Post("/:id/analyze", validateSession, h.Session.Analyze)
	sessions.Post("/:id/shuffle", validateSession, h.Session.Shuffle)
	sessions.Post("/:id/explain", validateSession, h.Session.Explain)
	sessions.Get("/:id/download", validateSession, h.Session.Download)
	sessions.Get("/:id/difficulty/:level", validateSession, h.Session.FilterByDifficulty)

	materials := router.Group("/materials")
	materials.Post("/", protected, h.Material.Upload)
	materials.Get("/:id", h.Material.Get)

	pools := router.Group("/pools", protected)
	pools.Get("/", h.Pool.ListPools)
	pools.Post("/", h.Pool.SavePool)
	pools.Post("/import", h.Pool.ImportPools)
	pools.Post("/quiz", h.Pool.GenerateQuiz)
	pools.Post("/templates", h.Pool.SaveTemplate)
	pools.Delete("/:id", h.Pool.DeletePool)

	tags := router.Group("/tags")
	tags.Post("/filter", h.Tag.Filter)
	tags.Post("/scores", h.Tag.Scores)
	tags.Get("/templates", protected, h.Tag.ListTemplates)
	tags.Post("/templates", protected, h.Tag.SaveTemplate)

	quizzes := router.Group("/quizzes")
	quizzes.Post("/", protected, h.Quiz.SaveQuiz)
	quizzes.Get("/:id", h.Quiz.GetQuiz)
}

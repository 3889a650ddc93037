package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"
)

// QuizHandler persists session quizzes beyond the session TTL.
type QuizHandler struct {
	sessions  service.QuizSessionService
	validator *validation.Validator
}

func NewQuizHandler(sessions service.QuizSessionService) *QuizHandler {
	return &QuizHandler{sessions: sessions, validator: validation.NewValidator()}
}

// SaveQuiz stores the current quiz of a session.
// @Summary Save a session quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SaveQuizRequest true "Session and title"
// @Success 201 {object} domain.SavedQuiz
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) SaveQuiz(c *fiber.Ctx) error {
	var req dto.SaveQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errors := h.validator.ValidateSaveQuizRequest(&req); len(errors) > 0 {
		return errors
	}
	quiz, err := h.sessions.SaveQuiz(c.UserContext(), req.SessionID, req.Title, middleware.InstructorID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetQuiz returns a saved quiz.
// @Summary Get a saved quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} domain.SavedQuiz
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.sessions.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"
)

// SessionHandler exposes the quiz workflow of a session over HTTP.
type SessionHandler struct {
	sessions     service.QuizSessionService
	validator    *validation.Validator
	maxFileBytes int64
}

func NewSessionHandler(sessions service.QuizSessionService, maxFileBytes int64) *SessionHandler {
	return &SessionHandler{
		sessions:     sessions,
		validator:    validation.NewValidator(),
		maxFileBytes: maxFileBytes,
	}
}

func sessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.ValidatedSessionIDKey).(string); ok {
		return id
	}
	return c.Params("id")
}

// CreateSession starts an empty quiz session.
// @Summary Create a quiz session
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	session, err := h.sessions.CreateSession(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(session))
}

// GetSession returns the current quiz of a session.
// @Summary Get a quiz session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessions.GetSession(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

// Generate builds a new quiz from text or a stored material.
// @Summary Generate a quiz
// @Description Generates questions from text input or a previously uploaded material. Blank text returns a prompt instead of a quiz.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.GenerateQuizRequest true "Generation options"
// @Success 200 {object} dto.MarkdownResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /sessions/{id}/generate [post]
func (h *SessionHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse generate request", zap.Error(err))
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Format == "" {
		req.Format = string(domain.SourceText)
	}
	if errors := h.validator.ValidateGenerateRequest(&req); len(errors) > 0 {
		return errors
	}
	if domain.SourceFormat(req.Format) == domain.SourceFile {
		return domain.NewInvalidInputError("file input must be sent to /generate/upload as multipart form data")
	}

	in, err := generateInput(req)
	if err != nil {
		return err
	}
	in.InstructorID = middleware.InstructorID(c)

	markdown, err := h.sessions.Generate(c.UserContext(), sessionID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkdownResponse{Markdown: markdown})
}

// GenerateUpload builds a new quiz from uploaded files.
// @Summary Generate a quiz from files
// @Description Accepts text, PDF and image files in the "files" field. Extracted text is stored as materials.
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param files formData file true "Study materials"
// @Param num_questions formData int true "Number of questions"
// @Param question_types formData string false "Comma separated question types"
// @Param difficulty formData string false "easy, medium or hard"
// @Success 200 {object} dto.MarkdownResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /sessions/{id}/generate/upload [post]
func (h *SessionHandler) GenerateUpload(c *fiber.Ctx) error {
	req := dto.GenerateQuizRequest{
		Format:        string(domain.SourceFile),
		NumQuestions:  formInt(c, "num_questions", 0),
		QuestionTypes: splitList(c.FormValue("question_types")),
		Difficulty:    c.FormValue("difficulty"),
	}
	if errors := h.validator.ValidateGenerateRequest(&req); len(errors) > 0 {
		return errors
	}

	uploads, err := readUploads(c, h.maxFileBytes)
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		return domain.ValidationErrors{domain.NewMissingFieldError(uploadField)}
	}

	in, err := generateInput(req)
	if err != nil {
		return err
	}
	in.Uploads = uploads
	in.InstructorID = middleware.InstructorID(c)

	markdown, err := h.sessions.Generate(c.UserContext(), sessionID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkdownResponse{Markdown: markdown})
}

// Analyze appends keywords, entities and topics of the session input.
// @Summary Analyze session input
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.MarkdownResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/analyze [post]
func (h *SessionHandler) Analyze(c *fiber.Ctx) error {
	markdown, err := h.sessions.Analyze(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkdownResponse{Markdown: markdown})
}

// Shuffle reorders questions and options without changing the stored quiz.
// @Summary Shuffle the quiz
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ShuffleRequest false "Optional seed"
// @Success 200 {object} dto.MarkdownResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/shuffle [post]
func (h *SessionHandler) Shuffle(c *fiber.Ctx) error {
	var req dto.ShuffleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("invalid request body")
		}
	}
	markdown, err := h.sessions.Shuffle(c.UserContext(), sessionID(c), req.Seed)
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkdownResponse{Markdown: markdown})
}

// Explain asks the LLM to explain each multiple-choice answer.
// @Summary Explain answers
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.MarkdownResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /sessions/{id}/explain [post]
func (h *SessionHandler) Explain(c *fiber.Ctx) error {
	markdown, err := h.sessions.Explain(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkdownResponse{Markdown: markdown})
}

// Download exports the quiz as md, csv, txt, pdf or png.
// @Summary Download the quiz
// @Description Returns the exported file. When there is nothing to export, or the export fails, a JSON message is returned instead.
// @Tags sessions
// @Produce octet-stream
// @Produce json
// @Param id path string true "Session ID"
// @Param format query string false "md, csv, txt, pdf or png" default(md)
// @Success 200 {file} file
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/download [get]
func (h *SessionHandler) Download(c *fiber.Ctx) error {
	format := c.Query("format", "md")
	result, err := h.sessions.Download(c.UserContext(), sessionID(c), format)
	if err != nil {
		return err
	}
	if result.Data == nil {
		return c.JSON(dto.MessageResponse{Message: result.Message})
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Set("X-Quiz-Message", result.Message)
	return c.Send(result.Data)
}

// FilterByDifficulty lists up to n questions of one difficulty.
// @Summary Filter questions by difficulty
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param level path string true "easy, medium or hard"
// @Param n query int false "Maximum number of questions, 0 for all"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /sessions/{id}/difficulty/{level} [get]
func (h *SessionHandler) FilterByDifficulty(c *fiber.Ctx) error {
	n := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return domain.ValidationErrors{domain.NewInvalidFormatError("n", raw)}
		}
		n = parsed
	}
	questions, err := h.sessions.FilterByDifficulty(c.UserContext(), sessionID(c), c.Params("level"), n)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuestionsResponse{Questions: questions})
}

func generateInput(req dto.GenerateQuizRequest) (service.GenerateInput, error) {
	in := service.GenerateInput{
		Format:        domain.SourceFormat(req.Format),
		Input:         req.Input,
		MaterialID:    req.MaterialID,
		NumQuestions:  req.NumQuestions,
		QuestionTypes: make([]domain.QuestionType, 0, len(req.QuestionTypes)),
	}
	for _, raw := range req.QuestionTypes {
		in.QuestionTypes = append(in.QuestionTypes, domain.QuestionType(raw))
	}
	if req.Difficulty != "" {
		d, err := domain.ParseDifficulty(req.Difficulty)
		if err != nil {
			return in, err
		}
		in.Difficulty = d
	}
	return in, nil
}

func toSessionResponse(s *domain.Session) dto.SessionResponse {
	return dto.SessionResponse{ID: s.ID, State: s.State, Markdown: s.Markdown}
}

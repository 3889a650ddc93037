package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"
)

type TagHandler struct {
	tags      service.TagService
	validator *validation.Validator
}

func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags, validator: validation.NewValidator()}
}

// Filter keeps the questions carrying at least one of the selected tags.
// @Summary Filter questions by tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body dto.TagFilterRequest true "Questions and tags"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /tags/filter [post]
func (h *TagHandler) Filter(c *fiber.Ctx) error {
	var req dto.TagFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	return c.JSON(dto.QuestionsResponse{Questions: h.tags.Filter(req.Questions, req.Tags)})
}

// Scores computes per-tag results for a set of answers.
// @Summary Score answers per tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body dto.TagScoresRequest true "Questions and chosen option indexes"
// @Success 200 {object} dto.TagScoresResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /tags/scores [post]
func (h *TagHandler) Scores(c *fiber.Ctx) error {
	var req dto.TagScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	scores, report := h.tags.Scores(req.Questions, req.Answers)
	return c.JSON(dto.TagScoresResponse{Scores: scores, Report: report})
}

// ListTemplates returns saved tag selections.
// @Summary List tag templates
// @Tags tags
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.TagTemplate
// @Router /tags/templates [get]
func (h *TagHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.tags.ListTemplates(c.UserContext(), middleware.InstructorID(c))
	if err != nil {
		return err
	}
	return c.JSON(templates)
}

// SaveTemplate stores a tag selection.
// @Summary Save a tag template
// @Tags tags
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.TagTemplateRequest true "Tag selection"
// @Success 201 {object} domain.TagTemplate
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /tags/templates [post]
func (h *TagHandler) SaveTemplate(c *fiber.Ctx) error {
	var req dto.TagTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errors := h.validator.ValidateTagTemplateRequest(&req); len(errors) > 0 {
		return errors
	}
	template, err := h.tags.SaveTemplate(c.UserContext(), middleware.InstructorID(c), req.Name, req.SelectedTags)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

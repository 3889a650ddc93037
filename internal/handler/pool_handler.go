package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/poolfile"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"
)

const poolFileField = "file"

type PoolHandler struct {
	pools     service.PoolService
	validator *validation.Validator
}

func NewPoolHandler(pools service.PoolService) *PoolHandler {
	return &PoolHandler{pools: pools, validator: validation.NewValidator()}
}

// ListPools lists the instructor's question pools.
// @Summary List question pools
// @Tags pools
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.Pool
// @Router /pools [get]
func (h *PoolHandler) ListPools(c *fiber.Ctx) error {
	pools, err := h.pools.ListPools(c.UserContext(), middleware.InstructorID(c))
	if err != nil {
		return err
	}
	return c.JSON(pools)
}

// SavePool stores the questions of one topic, replacing any earlier version.
// @Summary Save a question pool
// @Tags pools
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SavePoolRequest true "Pool"
// @Success 201 {object} domain.Pool
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /pools [post]
func (h *PoolHandler) SavePool(c *fiber.Ctx) error {
	var req dto.SavePoolRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errors := h.validator.ValidateSavePoolRequest(&req); len(errors) > 0 {
		return errors
	}
	pool, err := h.pools.SavePool(c.UserContext(), middleware.InstructorID(c), req.Topic, req.Questions)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(pool)
}

// ImportPools loads a JSON or YAML pool file.
// @Summary Import question pools
// @Description The file maps each topic to a list of questions.
// @Tags pools
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Pool file (.json, .yaml)"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /pools/import [post]
func (h *PoolHandler) ImportPools(c *fiber.Ctx) error {
	fh, err := c.FormFile(poolFileField)
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError(poolFileField)}
	}
	data, err := readFile(fh)
	if err != nil {
		return domain.NewInternalError("failed to read pool file", err)
	}
	pools, err := poolfile.Parse(fh.Filename, data)
	if err != nil {
		return err
	}
	n, err := h.pools.ImportPools(c.UserContext(), middleware.InstructorID(c), pools)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: importMessage(n)})
}

// DeletePool removes one pool.
// @Summary Delete a question pool
// @Tags pools
// @Security ApiKeyAuth
// @Param id path string true "Pool ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /pools/{id} [delete]
func (h *PoolHandler) DeletePool(c *fiber.Ctx) error {
	if err := h.pools.DeletePool(c.UserContext(), middleware.InstructorID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateQuiz draws a quiz from the stored pools.
// @Summary Draw a quiz from pools
// @Description settings maps a topic to the number of questions to draw from it.
// @Tags pools
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.PoolQuizRequest true "Draw settings"
// @Success 200 {object} dto.PoolQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /pools/quiz [post]
func (h *PoolHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.PoolQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errors := h.validator.ValidatePoolSettings(req.Settings); len(errors) > 0 {
		return errors
	}
	questions, err := h.pools.GenerateQuiz(c.UserContext(), middleware.InstructorID(c), req.Settings, req.Seed)
	if err != nil {
		return err
	}
	return c.JSON(dto.PoolQuizResponse{Questions: questions})
}

// SaveTemplate stores draw settings as a reusable JSON template.
// @Summary Save a pool template
// @Tags pools
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.PoolTemplateRequest true "Template"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /pools/templates [post]
func (h *PoolHandler) SaveTemplate(c *fiber.Ctx) error {
	var req dto.PoolTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errors := h.validator.ValidatePoolSettings(req.Settings); len(errors) > 0 {
		return errors
	}
	key, err := h.pools.SaveTemplate(c.UserContext(), middleware.InstructorID(c), req.Name, req.Settings)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Template saved to " + key})
}

func importMessage(n int) string {
	if n == 1 {
		return "Imported 1 pool"
	}
	return fmt.Sprintf("Imported %d pools", n)
}

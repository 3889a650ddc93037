package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
)

type MaterialHandler struct {
	materials    service.MaterialService
	maxFileBytes int64
}

func NewMaterialHandler(materials service.MaterialService, maxFileBytes int64) *MaterialHandler {
	return &MaterialHandler{materials: materials, maxFileBytes: maxFileBytes}
}

// Upload extracts and stores study materials.
// @Summary Upload study materials
// @Description Extracts text from text, PDF and image files. The returned ids can be used as material_id in quiz generation.
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param files formData file true "Files to ingest"
// @Success 201 {array} domain.Material
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /materials [post]
func (h *MaterialHandler) Upload(c *fiber.Ctx) error {
	uploads, err := readUploads(c, h.maxFileBytes)
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		return domain.ValidationErrors{domain.NewMissingFieldError(uploadField)}
	}

	instructorID := middleware.InstructorID(c)
	materials, err := h.materials.Ingest(c.UserContext(), instructorID, uploads)
	if err != nil {
		return err
	}
	logger.Get().Info("Materials ingested",
		zap.String("instructorID", instructorID),
		zap.Int("count", len(materials)),
	)
	return c.Status(fiber.StatusCreated).JSON(materials)
}

// Get returns one stored material with its extracted text.
// @Summary Get a material
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} domain.Material
// @Failure 404 {object} middleware.ErrorResponse
// @Router /materials/{id} [get]
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	material, err := h.materials.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(material)
}

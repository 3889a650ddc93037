package service

import (
	"bytes"
	"context"
	"path"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"
)

// BatchExtractor extracts several uploads at once, keeping upload order.
type BatchExtractor interface {
	ExtractAll(ctx context.Context, uploads []domain.Upload) ([]*domain.Material, error)
}

// MaterialService turns uploads into stored study materials.
type MaterialService interface {
	Ingest(ctx context.Context, instructorID string, uploads []domain.Upload) ([]*domain.Material, error)
	Get(ctx context.Context, id string) (*domain.Material, error)
}

type materialService struct {
	extractor BatchExtractor
	repo      domain.MaterialRepository
	blobs     domain.BlobStore
}

// NewMaterialService wires extraction, raw file archiving and persistence.
func NewMaterialService(extractor BatchExtractor, repo domain.MaterialRepository, blobs domain.BlobStore) MaterialService {
	return &materialService{extractor: extractor, repo: repo, blobs: blobs}
}

func materialKey(id, filename string) string {
	return path.Join("materials", id, path.Base(filename))
}

func (s *materialService) Ingest(ctx context.Context, instructorID string, uploads []domain.Upload) ([]*domain.Material, error) {
	ctx, span := otel.Tracer("quizcraft/service").Start(ctx, "material.Ingest")
	defer span.End()
	span.SetAttributes(attribute.Int("uploads", len(uploads)))

	if len(uploads) == 0 {
		return nil, domain.NewInvalidInputError("no files uploaded")
	}

	materials, err := s.extractor.ExtractAll(ctx, uploads)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for i, m := range materials {
		if m.ID == "" {
			m.ID = util.NewULID()
		}
		m.InstructorID = instructorID

		if s.blobs != nil {
			key := materialKey(m.ID, uploads[i].Filename)
			if err := s.blobs.Put(ctx, key, uploads[i].MimeType, bytes.NewReader(uploads[i].Data)); err != nil {
				logger.Get().Warn("Failed to archive upload",
					zap.Error(err),
					zap.String("materialID", m.ID),
					zap.String("key", key))
			} else {
				m.StorageKey = key
			}
		}

		if s.repo != nil {
			if err := s.repo.SaveMaterial(ctx, m); err != nil {
				return nil, domain.NewInternalError("failed to save material", err)
			}
		}
		logger.Get().Info("Material ingested",
			zap.String("materialID", m.ID),
			zap.String("filename", m.Filename),
			zap.String("kind", string(m.Kind)),
			zap.Int("textLength", len(m.Text)))
	}
	return materials, nil
}

func (s *materialService) Get(ctx context.Context, id string) (*domain.Material, error) {
	if s.repo == nil {
		return nil, domain.NewNotFoundError("material " + id + " not found")
	}
	m, err := s.repo.GetMaterialByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load material", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError("material " + id + " not found")
	}
	return m, nil
}

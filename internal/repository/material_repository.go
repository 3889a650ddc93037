package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
	"quizcraft/internal/util"
)

const materialColumns = `id, instructor_id, filename, kind, mime_type, content, segments, storage_key, created_at`

var materialSelect = aliasColumns(materialColumns)

type sqlxMaterialRepository struct {
	db DBTX
}

func NewMaterialRepository(db DBTX) domain.MaterialRepository {
	return &sqlxMaterialRepository{db: db}
}

func (r *sqlxMaterialRepository) SaveMaterial(ctx context.Context, m *domain.Material) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	row, err := fromDomainMaterial(m)
	if err != nil {
		return err
	}
	query := `INSERT INTO materials (` + materialColumns + `)
	          VALUES (:id, :instructor_id, :filename, :kind, :mime_type, :content, :segments, :storage_key, :created_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save material: %w", err)
	}
	return nil
}

// GetMaterialByID returns nil, nil when the material does not exist.
func (r *sqlxMaterialRepository) GetMaterialByID(ctx context.Context, id string) (*domain.Material, error) {
	db := GetExecutor(ctx, r.db)
	var row models.Material
	query := db.Rebind(`SELECT ` + materialSelect + ` FROM materials WHERE id = ?`)
	if err := db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get material by id: %w", err)
	}
	return toDomainMaterial(&row)
}

func (r *sqlxMaterialRepository) ListMaterials(ctx context.Context, instructorID string, limit, offset int) ([]*domain.Material, error) {
	db := GetExecutor(ctx, r.db)
	query, pageArgs := paginate(db, `SELECT `+materialSelect+` FROM materials WHERE instructor_id = ? ORDER BY created_at DESC`, limit, offset)
	args := append([]interface{}{instructorID}, pageArgs...)

	var rows []models.Material
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	out := make([]*domain.Material, 0, len(rows))
	for i := range rows {
		m, err := toDomainMaterial(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func toDomainMaterial(m *models.Material) (*domain.Material, error) {
	if m == nil {
		return nil, nil
	}
	var segments []domain.Segment
	if len(m.Segments) > 0 {
		if err := json.Unmarshal(m.Segments, &segments); err != nil {
			return nil, fmt.Errorf("failed to decode material segments: %w", err)
		}
	}
	return &domain.Material{
		ID:           m.ID,
		InstructorID: m.InstructorID.String,
		Filename:     m.Filename,
		Kind:         domain.MaterialKind(m.Kind),
		MimeType:     m.MimeType,
		Text:         m.Content,
		Segments:     segments,
		StorageKey:   m.StorageKey.String,
		CreatedAt:    m.CreatedAt,
	}, nil
}

func fromDomainMaterial(m *domain.Material) (*models.Material, error) {
	segments := m.Segments
	if segments == nil {
		segments = []domain.Segment{}
	}
	raw, err := json.Marshal(segments)
	if err != nil {
		return nil, fmt.Errorf("failed to encode material segments: %w", err)
	}
	return &models.Material{
		ID:           m.ID,
		InstructorID: util.StringToNullString(m.InstructorID),
		Filename:     m.Filename,
		Kind:         string(m.Kind),
		MimeType:     m.MimeType,
		Content:      m.Text,
		Segments:     raw,
		StorageKey:   util.StringToNullString(m.StorageKey),
		CreatedAt:    m.CreatedAt,
	}, nil
}

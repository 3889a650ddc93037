package repository

import (
	"context"
	"fmt"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
	"quizcraft/internal/util"
)

var tagTemplateSelect = aliasColumns(`id, instructor_id, name, selected_tags, created_at`)

type sqlxTagTemplateRepository struct {
	db DBTX
}

func NewTagTemplateRepository(db DBTX) domain.TagTemplateRepository {
	return &sqlxTagTemplateRepository{db: db}
}

func (r *sqlxTagTemplateRepository) SaveTagTemplate(ctx context.Context, t *domain.TagTemplate) error {
	if t.ID == "" {
		t.ID = util.NewULID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	row := &models.TagTemplate{
		ID:           t.ID,
		InstructorID: util.StringToNullString(t.InstructorID),
		Name:         util.StringToNullString(t.Name),
		SelectedTags: models.StringSlice(t.SelectedTags),
		CreatedAt:    t.CreatedAt,
	}
	query := `INSERT INTO tag_templates (id, instructor_id, name, selected_tags, created_at)
	          VALUES (:id, :instructor_id, :name, :selected_tags, :created_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save tag template: %w", err)
	}
	return nil
}

func (r *sqlxTagTemplateRepository) ListTagTemplates(ctx context.Context, instructorID string) ([]*domain.TagTemplate, error) {
	db := GetExecutor(ctx, r.db)
	query := `SELECT ` + tagTemplateSelect + ` FROM tag_templates WHERE instructor_id = ? ORDER BY created_at DESC`

	var rows []models.TagTemplate
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), instructorID); err != nil {
		return nil, fmt.Errorf("failed to list tag templates: %w", err)
	}
	out := make([]*domain.TagTemplate, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.TagTemplate{
			ID:           row.ID,
			InstructorID: row.InstructorID.String,
			Name:         row.Name.String,
			SelectedTags: []string(row.SelectedTags),
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

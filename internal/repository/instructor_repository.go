package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
	"quizcraft/internal/util"
)

const instructorColumns = `id, google_id, email, name, created_at, updated_at`

var instructorSelect = aliasColumns(instructorColumns)

type sqlxInstructorRepository struct {
	db DBTX
}

func NewInstructorRepository(db DBTX) domain.InstructorRepository {
	return &sqlxInstructorRepository{db: db}
}

func (r *sqlxInstructorRepository) CreateInstructor(ctx context.Context, i *domain.Instructor) error {
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
	query := `INSERT INTO instructors (` + instructorColumns + `)
	          VALUES (:id, :google_id, :email, :name, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainInstructor(i)); err != nil {
		return fmt.Errorf("failed to create instructor: %w", err)
	}
	return nil
}

// GetInstructorByGoogleID returns nil, nil for unknown accounts.
func (r *sqlxInstructorRepository) GetInstructorByGoogleID(ctx context.Context, googleID string) (*domain.Instructor, error) {
	return r.getBy(ctx, "google_id", googleID)
}

func (r *sqlxInstructorRepository) GetInstructorByID(ctx context.Context, id string) (*domain.Instructor, error) {
	return r.getBy(ctx, "id", id)
}

func (r *sqlxInstructorRepository) getBy(ctx context.Context, column, value string) (*domain.Instructor, error) {
	db := GetExecutor(ctx, r.db)
	var row models.Instructor
	query := db.Rebind(`SELECT ` + instructorSelect + ` FROM instructors WHERE ` + column + ` = ?`)
	if err := db.GetContext(ctx, &row, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get instructor by %s: %w", column, err)
	}
	return toDomainInstructor(&row), nil
}

func (r *sqlxInstructorRepository) UpdateInstructor(ctx context.Context, i *domain.Instructor) error {
	i.UpdatedAt = time.Now()
	query := `UPDATE instructors SET email = :email, name = :name, updated_at = :updated_at WHERE id = :id`
	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainInstructor(i))
	if err != nil {
		return fmt.Errorf("failed to update instructor: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func toDomainInstructor(m *models.Instructor) *domain.Instructor {
	if m == nil {
		return nil
	}
	return &domain.Instructor{
		ID:        m.ID,
		GoogleID:  m.GoogleID,
		Email:     m.Email,
		Name:      m.Name.String,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainInstructor(i *domain.Instructor) *models.Instructor {
	if i == nil {
		return nil
	}
	return &models.Instructor{
		ID:        i.ID,
		GoogleID:  i.GoogleID,
		Email:     i.Email,
		Name:      util.StringToNullString(i.Name),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

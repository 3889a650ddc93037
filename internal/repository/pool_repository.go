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

const poolColumns = `id, instructor_id, topic, questions, created_at, updated_at`

var poolSelect = aliasColumns(poolColumns)

type sqlxPoolRepository struct {
	db DBTX
}

func NewPoolRepository(db DBTX) domain.PoolRepository {
	return &sqlxPoolRepository{db: db}
}

// SavePool replaces the questions of an existing (instructor, topic) pool or
// inserts a new one. On update p takes the stored id and creation time.
func (r *sqlxPoolRepository) SavePool(ctx context.Context, p *domain.Pool) error {
	db := GetExecutor(ctx, r.db)
	existing, err := r.GetPoolByTopic(ctx, p.InstructorID, p.Topic)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()

	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		update := `UPDATE pools SET questions = :questions, updated_at = :updated_at WHERE id = :id`
		if _, err := db.NamedExecContext(ctx, update, fromDomainPool(p)); err != nil {
			return fmt.Errorf("failed to update pool: %w", err)
		}
		return nil
	}

	p.ID = util.NewULID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	insert := `INSERT INTO pools (` + poolColumns + `)
	           VALUES (:id, :instructor_id, :topic, :questions, :created_at, :updated_at)`
	if _, err := db.NamedExecContext(ctx, insert, fromDomainPool(p)); err != nil {
		return fmt.Errorf("failed to insert pool: %w", err)
	}
	return nil
}

// GetPoolByTopic returns nil, nil when no pool exists for the topic.
func (r *sqlxPoolRepository) GetPoolByTopic(ctx context.Context, instructorID, topic string) (*domain.Pool, error) {
	db := GetExecutor(ctx, r.db)
	query := `SELECT ` + poolSelect + ` FROM pools WHERE topic = ? AND `
	args := []interface{}{topic}
	if instructorID == "" {
		query += "instructor_id IS NULL"
	} else {
		query += "instructor_id = ?"
		args = append(args, instructorID)
	}

	var row models.Pool
	if err := db.GetContext(ctx, &row, db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pool by topic: %w", err)
	}
	return toDomainPool(&row), nil
}

func (r *sqlxPoolRepository) ListPools(ctx context.Context, instructorID string) ([]*domain.Pool, error) {
	db := GetExecutor(ctx, r.db)
	query := `SELECT ` + poolSelect + ` FROM pools WHERE `
	var args []interface{}
	if instructorID == "" {
		query += "instructor_id IS NULL"
	} else {
		query += "instructor_id = ?"
		args = append(args, instructorID)
	}
	query += " ORDER BY topic"

	var rows []models.Pool
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	out := make([]*domain.Pool, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainPool(&rows[i]))
	}
	return out, nil
}

// DeletePool removes a pool owned by instructorID. Another instructor's pool
// reports NOT_FOUND.
func (r *sqlxPoolRepository) DeletePool(ctx context.Context, instructorID, id string) error {
	db := GetExecutor(ctx, r.db)
	query := `DELETE FROM pools WHERE id = ? AND `
	args := []interface{}{id}
	if instructorID == "" {
		query += "instructor_id IS NULL"
	} else {
		query += "instructor_id = ?"
		args = append(args, instructorID)
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to delete pool: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("pool not found")
	}
	return nil
}

func toDomainPool(p *models.Pool) *domain.Pool {
	if p == nil {
		return nil
	}
	return &domain.Pool{
		ID:           p.ID,
		InstructorID: p.InstructorID.String,
		Topic:        p.Topic,
		Questions:    []string(p.Questions),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func fromDomainPool(p *domain.Pool) *models.Pool {
	return &models.Pool{
		ID:           p.ID,
		InstructorID: util.StringToNullString(p.InstructorID),
		Topic:        p.Topic,
		Questions:    models.StringSlice(p.Questions),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

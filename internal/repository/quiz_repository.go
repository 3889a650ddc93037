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

const savedQuizColumns = `id, instructor_id, title, state, markdown, created_at, updated_at`

var savedQuizSelect = aliasColumns(savedQuizColumns)

type sqlxQuizRepository struct {
	db DBTX
}

func NewQuizRepository(db DBTX) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, q *domain.SavedQuiz) error {
	now := time.Now()
	if q.ID == "" {
		q.ID = util.NewULID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	row, err := fromDomainSavedQuiz(q)
	if err != nil {
		return err
	}
	query := `INSERT INTO saved_quizzes (` + savedQuizColumns + `)
	          VALUES (:id, :instructor_id, :title, :state, :markdown, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID returns nil, nil when the quiz does not exist.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.SavedQuiz, error) {
	db := GetExecutor(ctx, r.db)
	var row models.SavedQuiz
	if err := db.GetContext(ctx, &row, db.Rebind(`SELECT `+savedQuizSelect+` FROM saved_quizzes WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return toDomainSavedQuiz(&row)
}

func (r *sqlxQuizRepository) ListQuizzes(ctx context.Context, instructorID string, limit, offset int) ([]*domain.SavedQuiz, error) {
	db := GetExecutor(ctx, r.db)
	query, pageArgs := paginate(db, `SELECT `+savedQuizSelect+` FROM saved_quizzes WHERE instructor_id = ? ORDER BY created_at DESC`, limit, offset)
	args := append([]interface{}{instructorID}, pageArgs...)

	var rows []models.SavedQuiz
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	out := make([]*domain.SavedQuiz, 0, len(rows))
	for i := range rows {
		q, err := toDomainSavedQuiz(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func toDomainSavedQuiz(q *models.SavedQuiz) (*domain.SavedQuiz, error) {
	state := domain.NewQuizState()
	if len(q.State) > 0 {
		if err := json.Unmarshal(q.State, &state); err != nil {
			return nil, fmt.Errorf("failed to decode quiz state: %w", err)
		}
	}
	return &domain.SavedQuiz{
		ID:           q.ID,
		InstructorID: q.InstructorID.String,
		Title:        q.Title,
		State:        state,
		Markdown:     q.Markdown,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}, nil
}

func fromDomainSavedQuiz(q *domain.SavedQuiz) (*models.SavedQuiz, error) {
	raw, err := json.Marshal(q.State)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz state: %w", err)
	}
	return &models.SavedQuiz{
		ID:           q.ID,
		InstructorID: util.StringToNullString(q.InstructorID),
		Title:        q.Title,
		State:        raw,
		Markdown:     q.Markdown,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}, nil
}

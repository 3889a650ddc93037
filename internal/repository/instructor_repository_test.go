package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
)

var instructorRowColumns = []string{"id", "google_id", "email", "name", "created_at", "updated_at"}

func TestToDomainInstructor(t *testing.T) {
	assert.Nil(t, toDomainInstructor(nil))
	assert.Nil(t, fromDomainInstructor(nil))

	m := fromDomainInstructor(&domain.Instructor{ID: "i1", GoogleID: "g1", Email: "a@b.c"})
	assert.False(t, m.Name.Valid)
	assert.Equal(t, "", toDomainInstructor(m).Name)
}

func TestInstructorRepository_GetByGoogleID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewInstructorRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM instructors WHERE google_id = \?`).
		WithArgs("g123").
		WillReturnRows(sqlmock.NewRows(instructorRowColumns).AddRow("i1", "g123", "t@example.com", "Ada Lovelace", now, now))

	got, err := repo.GetInstructorByGoogleID(context.Background(), "g123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada Lovelace", got.Name)

	mock.ExpectQuery(`SELECT .+ FROM instructors WHERE id = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(instructorRowColumns))
	got, err = repo.GetInstructorByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepository_CreateAndUpdate(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewInstructorRepository(db)

	i := &domain.Instructor{ID: "i1", GoogleID: "g1", Email: "t@example.com", Name: "T"}
	mock.ExpectExec(`INSERT INTO instructors`).
		WithArgs("i1", "g1", "t@example.com", "T", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.CreateInstructor(context.Background(), i))

	mock.ExpectExec(`UPDATE instructors SET`).
		WithArgs("new@example.com", "T", sqlmock.AnyArg(), "i1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	i.Email = "new@example.com"
	require.NoError(t, repo.UpdateInstructor(context.Background(), i))

	mock.ExpectExec(`UPDATE instructors SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateInstructor(context.Background(), i), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
)

func TestTagTemplateRepository(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTagTemplateRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO tag_templates`).
		WithArgs(sqlmock.AnyArg(), "inst1", nil, `["NLP","Basics"]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	tpl := &domain.TagTemplate{InstructorID: "inst1", SelectedTags: []string{"NLP", "Basics"}}
	require.NoError(t, repo.SaveTagTemplate(ctx, tpl))
	assert.NotEmpty(t, tpl.ID)

	mock.ExpectQuery(`SELECT .+ FROM tag_templates WHERE instructor_id = \?`).
		WithArgs("inst1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "instructor_id", "name", "selected_tags", "created_at"}).
			AddRow(tpl.ID, "inst1", "week 1", `["NLP","Basics"]`, time.Now()))
	list, err := repo.ListTagTemplates(ctx, "inst1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "week 1", list[0].Name)
	assert.Equal(t, []string{"NLP", "Basics"}, list[0].SelectedTags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

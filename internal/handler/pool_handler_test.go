package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
)

func TestPoolHandler_RequiresAuth(t *testing.T) {
	deps := newTestDeps()
	resp, err := deps.app().Test(httptest.NewRequest(http.MethodGet, "/api/pools", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPoolHandler_ListAndSave(t *testing.T) {
	deps := newTestDeps()
	deps.pools.ListPoolsFunc = func(ctx context.Context, instructorID string) ([]*domain.Pool, error) {
		assert.Equal(t, testInstructorID, instructorID)
		return []*domain.Pool{{ID: "p1", Topic: "NLP", Questions: []string{"What is NLP?"}}}, nil
	}
	deps.pools.SavePoolFunc = func(ctx context.Context, instructorID, topic string, questions []string) (*domain.Pool, error) {
		return &domain.Pool{ID: "p2", InstructorID: instructorID, Topic: topic, Questions: questions}, nil
	}
	app := deps.app()

	resp, err := app.Test(authorize(httptest.NewRequest(http.MethodGet, "/api/pools", nil)))
	require.NoError(t, err)
	var pools []domain.Pool
	decode(t, resp, &pools)
	require.Len(t, pools, 1)
	assert.Equal(t, "NLP", pools[0].Topic)

	resp, err = app.Test(authorize(jsonRequest(http.MethodPost, "/api/pools", dto.SavePoolRequest{
		Topic: "Go", Questions: []string{"What is a goroutine?"},
	})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var saved domain.Pool
	decode(t, resp, &saved)
	assert.Equal(t, "Go", saved.Topic)

	resp, err = app.Test(authorize(jsonRequest(http.MethodPost, "/api/pools", dto.SavePoolRequest{Topic: ""})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr middleware.ValidationErrorResponse
	decode(t, resp, &verr)
	assert.Len(t, verr.Errors, 2)
}

func TestPoolHandler_Import(t *testing.T) {
	deps := newTestDeps()
	var imported domain.Pools
	deps.pools.ImportPoolsFunc = func(ctx context.Context, instructorID string, pools domain.Pools) (int, error) {
		imported = pools
		return len(pools), nil
	}
	app := deps.app()

	yamlPools := []byte("NLP:\n  - What is NLP?\n  - What is tokenization?\nML:\n  - Define overfitting.\n")
	resp, err := app.Test(authorize(multipartRequest(t, "/api/pools/import", nil,
		formFile{"file", "pools.yaml", "application/x-yaml", yamlPools})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var body dto.MessageResponse
	decode(t, resp, &body)
	assert.Equal(t, "Imported 2 pools", body.Message)
	assert.Len(t, imported["NLP"], 2)

	resp, err = app.Test(authorize(multipartRequest(t, "/api/pools/import", nil,
		formFile{"file", "pools.json", "application/json", []byte("{not json")})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(authorize(multipartRequest(t, "/api/pools/import", map[string]string{"x": "y"})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPoolHandler_GenerateQuiz(t *testing.T) {
	deps := newTestDeps()
	deps.pools.GenerateQuizFunc = func(ctx context.Context, instructorID string, settings domain.PoolSettings, seed *int64) ([]string, error) {
		if settings["NLP"] > 3 {
			return nil, domain.NewPoolTooSmallError("NLP", settings["NLP"], 3)
		}
		assert.NotNil(t, seed)
		return []string{"What is NLP?", "What is tokenization?"}, nil
	}
	app := deps.app()

	seed := int64(7)
	resp, err := app.Test(authorize(jsonRequest(http.MethodPost, "/api/pools/quiz", dto.PoolQuizRequest{
		Settings: domain.PoolSettings{"NLP": 2}, Seed: &seed,
	})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.PoolQuizResponse
	decode(t, resp, &body)
	assert.Len(t, body.Questions, 2)

	resp, err = app.Test(authorize(jsonRequest(http.MethodPost, "/api/pools/quiz", dto.PoolQuizRequest{
		Settings: domain.PoolSettings{"NLP": 10}, Seed: &seed,
	})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody middleware.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, string(domain.CodePoolTooSmall), errBody.Code)

	resp, err = app.Test(authorize(jsonRequest(http.MethodPost, "/api/pools/quiz", dto.PoolQuizRequest{
		Settings: domain.PoolSettings{"NLP": -1},
	})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPoolHandler_SaveTemplateAndDelete(t *testing.T) {
	deps := newTestDeps()
	deps.pools.SaveTemplateFunc = func(ctx context.Context, instructorID, name string, settings domain.PoolSettings) (string, error) {
		return "templates/" + instructorID + "/" + name, nil
	}
	deps.pools.DeletePoolFunc = func(ctx context.Context, instructorID, id string) error {
		if instructorID != testInstructorID || id != "p1" {
			return domain.NewNotFoundError("pool not found")
		}
		return nil
	}
	app := deps.app()

	resp, err := app.Test(authorize(jsonRequest(http.MethodPost, "/api/pools/templates", dto.PoolTemplateRequest{
		Name: "midterm.json", Settings: domain.PoolSettings{"NLP": 1},
	})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var body dto.MessageResponse
	decode(t, resp, &body)
	assert.Equal(t, "Template saved to templates/"+testInstructorID+"/midterm.json", body.Message)

	resp, err = app.Test(authorize(httptest.NewRequest(http.MethodDelete, "/api/pools/p1", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(authorize(httptest.NewRequest(http.MethodDelete, "/api/pools/p9", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

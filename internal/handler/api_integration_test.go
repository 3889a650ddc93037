package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/handler"
	"quizcraft/internal/ingestion"
	"quizcraft/internal/middleware"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
	"quizcraft/internal/storage"
	"quizcraft/internal/util"
)

const photosynthesisText = `Photosynthesis is the process plants use to convert light into chemical energy.
Chlorophyll absorbs light mostly in the blue and red wavelengths. The chloroplast contains chlorophyll and thylakoid membranes.
Glucose produced during photosynthesis fuels cellular respiration. Oxygen is released as a byproduct of photosynthesis.
Stomata regulate gas exchange between the leaf and the atmosphere. Carbon dioxide enters the leaf through stomata.
The Calvin cycle fixes carbon dioxide into sugar molecules. Water molecules are split during the light reactions.`

// mapCache is an in-process domain.Cache standing in for Redis.
type mapCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMapCache() *mapCache { return &mapCache{items: map[string]string{}} }

func (c *mapCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *mapCache) Ping(ctx context.Context) error { return nil }

func (c *mapCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

type apiFixture struct {
	app        *fiber.App
	token      string
	otherToken string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{DB: config.DBConfig{Driver: "sqlite", Path: filepath.Join(dir, "quizcraft.db")}}

	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db.DB, "sqlite", zap.NewNop()))

	blobs, err := storage.NewFSStore(filepath.Join(dir, "blobs"))
	require.NoError(t, err)
	cache := newMapCache()

	materials := service.NewMaterialService(ingestion.NewExtractor(zap.NewNop()), repository.NewMaterialRepository(db), blobs)
	sessions := service.NewQuizSessionService(
		service.NewSessionStore(cache, time.Hour),
		quizgen.NewHeuristicGenerator(zap.NewNop()),
		nil,
		service.NewAnalysisService(cache),
		materials,
		repository.NewQuizRepository(db),
		blobs,
		2,
	)
	pools := service.NewPoolService(repository.NewPoolRepository(db), repository.NewTransactionManagerAdapter(db), blobs)
	tags := service.NewTagService(repository.NewTagTemplateRepository(db))
	auth, err := service.NewAuthService(repository.NewInstructorRepository(db), config.AuthConfig{
		JWTSecret:       "integration-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 2 * time.Hour,
	})
	require.NoError(t, err)

	token, err := auth.CreateJWT(context.Background(), &domain.Instructor{ID: util.NewULID()}, time.Hour, service.TokenTypeAccess)
	require.NoError(t, err)
	otherToken, err := auth.CreateJWT(context.Background(), &domain.Instructor{ID: util.NewULID()}, time.Hour, service.TokenTypeAccess)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Auth:     handler.NewAuthHandler(auth),
		Session:  handler.NewSessionHandler(sessions, 1<<20),
		Material: handler.NewMaterialHandler(materials, 1<<20),
		Pool:     handler.NewPoolHandler(pools),
		Tag:      handler.NewTagHandler(tags),
		Quiz:     handler.NewQuizHandler(sessions),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"db":    db.PingContext,
			"cache": cache.Ping,
		}),
	}, auth)

	return &apiFixture{app: app, token: token, otherToken: otherToken}
}

func (f *apiFixture) do(t *testing.T, req *http.Request, authenticated bool) *http.Response {
	t.Helper()
	if authenticated {
		return f.doAs(t, req, f.token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) doAs(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	req.Header.Set(middleware.AuthorizationHeader, middleware.BearerSchema+token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAPI_SessionWorkflow(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil), false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodPost, "/api/sessions", nil), false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session dto.SessionResponse
	decode(t, resp, &session)
	base := "/api/sessions/" + session.ID

	// nothing generated yet
	resp = f.do(t, httptest.NewRequest(http.MethodPost, base+"/shuffle", nil), false)
	var shuffled dto.MarkdownResponse
	decode(t, resp, &shuffled)
	assert.Equal(t, domain.MsgShuffleBeforeGen, shuffled.Markdown)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, base+"/download", nil), false)
	var nothing dto.MessageResponse
	decode(t, resp, &nothing)
	assert.Equal(t, domain.MsgNothingToExport, nothing.Message)

	resp = f.do(t, jsonRequest(http.MethodPost, base+"/generate", dto.GenerateQuizRequest{
		Format:        "text",
		Input:         photosynthesisText,
		NumQuestions:  4,
		QuestionTypes: []string{"fill_blank", "multiple_choice", "true_false", "short_answer"},
	}), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var generated dto.MarkdownResponse
	decode(t, resp, &generated)
	assert.NotEmpty(t, generated.Markdown)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, base, nil), false)
	decode(t, resp, &session)
	require.Len(t, session.State.Questions, 4)
	assert.Equal(t, 4, session.State.NumQuestions)

	resp = f.do(t, httptest.NewRequest(http.MethodPost, base+"/analyze", nil), false)
	var analyzed dto.MarkdownResponse
	decode(t, resp, &analyzed)
	assert.Contains(t, analyzed.Markdown, "## Analysis")

	seed := int64(7)
	resp = f.do(t, jsonRequest(http.MethodPost, base+"/shuffle", dto.ShuffleRequest{Seed: &seed}), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodPost, base+"/explain", nil), false)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, base+"/download?format=csv", nil), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "generated_quiz.csv")

	resp = f.do(t, jsonRequest(http.MethodPost, "/api/quizzes", dto.SaveQuizRequest{SessionID: session.ID, Title: "Photosynthesis"}), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var saved domain.SavedQuiz
	decode(t, resp, &saved)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/quizzes/"+saved.ID, nil), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loaded domain.SavedQuiz
	decode(t, resp, &loaded)
	assert.Equal(t, "Photosynthesis", loaded.Title)
	assert.Len(t, loaded.State.Questions, 4)
}

func TestAPI_UploadAndGenerateFromMaterial(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, multipartRequest(t, "/api/materials", nil,
		formFile{"files", "photosynthesis.txt", "text/plain", []byte(photosynthesisText)}), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var materials []domain.Material
	decode(t, resp, &materials)
	require.Len(t, materials, 1)
	assert.Equal(t, domain.MaterialText, materials[0].Kind)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/materials/"+materials[0].ID, nil), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodPost, "/api/sessions", nil), false)
	var session dto.SessionResponse
	decode(t, resp, &session)

	resp = f.do(t, jsonRequest(http.MethodPost, "/api/sessions/"+session.ID+"/generate", dto.GenerateQuizRequest{
		Format: "material", MaterialID: materials[0].ID, NumQuestions: 2,
	}), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var generated dto.MarkdownResponse
	decode(t, resp, &generated)
	assert.NotEqual(t, domain.MsgEmptyInput, generated.Markdown)
}

func TestAPI_PoolsAndTags(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, jsonRequest(http.MethodPost, "/api/pools", dto.SavePoolRequest{
		Topic:     "Topic 1: NLP",
		Questions: []string{"What does NLP stand for?", "What is tokenization?", "Name one NLP application."},
	}), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, multipartRequest(t, "/api/pools/import", nil, formFile{"file", "pools.json", "application/json",
		[]byte(`{"Topic 2: Machine Learning": ["What is supervised learning?", "Define overfitting."]}`)}), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/pools", nil), true)
	var pools []domain.Pool
	decode(t, resp, &pools)
	assert.Len(t, pools, 2)

	seed := int64(42)
	request := dto.PoolQuizRequest{Settings: domain.PoolSettings{"Topic 1: NLP": 2, "Topic 2: Machine Learning": 1}, Seed: &seed}
	resp = f.do(t, jsonRequest(http.MethodPost, "/api/pools/quiz", request), true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var first dto.PoolQuizResponse
	decode(t, resp, &first)
	assert.Len(t, first.Questions, 3)

	resp = f.do(t, jsonRequest(http.MethodPost, "/api/pools/quiz", request), true)
	var second dto.PoolQuizResponse
	decode(t, resp, &second)
	assert.Equal(t, first.Questions, second.Questions)

	resp = f.do(t, jsonRequest(http.MethodPost, "/api/pools/templates", dto.PoolTemplateRequest{Settings: request.Settings}), true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, jsonRequest(http.MethodPost, "/api/tags/templates", dto.TagTemplateRequest{
		Name: "nlp", SelectedTags: []string{"NLP", "Basics", "NLP"},
	}), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/tags/templates", nil), true)
	var templates []domain.TagTemplate
	decode(t, resp, &templates)
	require.Len(t, templates, 1)
	assert.Equal(t, []string{"NLP", "Basics"}, templates[0].SelectedTags)
}

func TestAPI_DeletePool(t *testing.T) {
	f := newAPIFixture(t)
	save := func(questions ...string) domain.Pool {
		resp := f.do(t, jsonRequest(http.MethodPost, "/api/pools", dto.SavePoolRequest{
			Topic: "Topic 1: NLP", Questions: questions,
		}), true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var pool domain.Pool
		decode(t, resp, &pool)
		return pool
	}

	first := save("What does NLP stand for?")
	second := save("What does NLP stand for?", "What is tokenization?")
	assert.Equal(t, first.ID, second.ID, "saving a topic again keeps its id")

	resp := f.doAs(t, httptest.NewRequest(http.MethodDelete, "/api/pools/"+second.ID, nil), f.otherToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/pools", nil), true)
	var pools []domain.Pool
	decode(t, resp, &pools)
	require.Len(t, pools, 1)
	assert.Len(t, pools[0].Questions, 2)

	resp = f.do(t, httptest.NewRequest(http.MethodDelete, "/api/pools/"+second.ID, nil), true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/pools", nil), true)
	decode(t, resp, &pools)
	assert.Empty(t, pools)
}

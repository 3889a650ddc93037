package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
)

func storedPools() []*domain.Pool {
	return []*domain.Pool{
		{Topic: "Topic 1: NLP", Questions: []string{"What does NLP stand for?", "What is tokenization?"}},
		{Topic: "Topic 2: Machine Learning", Questions: []string{"What is supervised learning?", "Define overfitting.", "What is a dataset?"}},
	}
}

func TestPoolService_SavePool(t *testing.T) {
	repo := new(MockPoolRepository)
	svc := NewPoolService(repo, nil, nil)

	repo.On("SavePool", mock.Anything, mock.MatchedBy(func(p *domain.Pool) bool {
		return p.Topic == "NLP" && p.InstructorID == "inst-1" && len(p.Questions) == 2
	})).Return(nil).Once()

	pool, err := svc.SavePool(context.Background(), "inst-1", "  NLP ", []string{"Q1", "Q2"})
	require.NoError(t, err)
	assert.Equal(t, "NLP", pool.Topic)

	repo.On("SavePool", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	_, err = svc.SavePool(context.Background(), "inst-1", "ML", []string{"Q"})
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
	repo.AssertExpectations(t)
}

func TestPoolService_ImportPools(t *testing.T) {
	repo := new(MockPoolRepository)
	tx := new(MockTransactionManager)
	svc := NewPoolService(repo, tx, nil)
	ctx := context.Background()

	tx.On("WithTransaction", mock.Anything).Return(nil).Once()
	repo.On("SavePool", mock.Anything, mock.Anything).Return(nil).Twice()

	n, err := svc.ImportPools(ctx, "inst-1", domain.Pools{"A": {"Q1"}, "B": {"Q2", "Q3"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tx.On("WithTransaction", mock.Anything).Return(errors.New("begin failed")).Once()
	_, err = svc.ImportPools(ctx, "inst-1", domain.Pools{"A": {"Q1"}})
	assert.True(t, domain.IsCode(err, domain.CodeInternal))

	tx.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestPoolService_GenerateQuiz(t *testing.T) {
	repo := new(MockPoolRepository)
	svc := NewPoolService(repo, nil, nil)
	ctx := context.Background()
	repo.On("ListPools", mock.Anything, "inst-1").Return(storedPools(), nil)

	seed := int64(42)
	settings := domain.PoolSettings{"Topic 1: NLP": 1, "Topic 2: Machine Learning": 2}
	a, err := svc.GenerateQuiz(ctx, "inst-1", settings, &seed)
	require.NoError(t, err)
	assert.Len(t, a, 3)

	b, err := svc.GenerateQuiz(ctx, "inst-1", settings, &seed)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	empty, err := svc.GenerateQuiz(ctx, "inst-1", domain.PoolSettings{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty)

	_, err = svc.GenerateQuiz(ctx, "inst-1", domain.PoolSettings{"Topic 1: NLP": 5}, &seed)
	assert.True(t, domain.IsCode(err, domain.CodePoolTooSmall))
}

func TestPoolService_ListPools(t *testing.T) {
	repo := new(MockPoolRepository)
	svc := NewPoolService(repo, nil, nil)

	repo.On("ListPools", mock.Anything, "").Return(nil, nil).Once()
	pools, err := svc.ListPools(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, pools)
	assert.Empty(t, pools)

	repo.On("ListPools", mock.Anything, "x").Return(nil, errors.New("db down")).Once()
	_, err = svc.ListPools(context.Background(), "x")
	assert.Error(t, err)
}

func TestPoolService_SaveTemplate(t *testing.T) {
	blobs := new(MockBlobStore)
	svc := NewPoolService(new(MockPoolRepository), nil, blobs)
	ctx := context.Background()

	blobs.On("Put", mock.Anything, "templates/inst-1/quiz_template.json", "application/json").Return(nil).Once()
	key, err := svc.SaveTemplate(ctx, "inst-1", "", domain.PoolSettings{"Topic 1: NLP": 1})
	require.NoError(t, err)
	assert.Equal(t, "templates/inst-1/quiz_template.json", key)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(blobs.stored(key), &decoded))
	assert.Equal(t, 1, decoded["Topic 1: NLP"])
	assert.Contains(t, string(blobs.stored(key)), "\n    \"Topic 1: NLP\": 1")

	blobs.On("Put", mock.Anything, "templates/shared/week1.json", "application/json").Return(nil).Once()
	key, err = svc.SaveTemplate(ctx, "", "../../week1.json", domain.PoolSettings{})
	require.NoError(t, err)
	assert.Equal(t, "templates/shared/week1.json", key)

	_, err = NewPoolService(nil, nil, nil).SaveTemplate(ctx, "", "", nil)
	assert.Error(t, err)
}

func TestPoolService_DeletePoolPassesOwner(t *testing.T) {
	repo := new(MockPoolRepository)
	svc := NewPoolService(repo, nil, nil)

	repo.On("DeletePool", mock.Anything, "inst-1", "p1").Return(nil).Once()
	repo.On("DeletePool", mock.Anything, "inst-2", "p1").Return(domain.NewNotFoundError("pool not found")).Once()

	require.NoError(t, svc.DeletePool(context.Background(), "inst-1", "p1"))
	err := svc.DeletePool(context.Background(), "inst-2", "p1")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	repo.AssertExpectations(t)
}

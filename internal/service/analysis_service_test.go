package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
)

const analysisText = "Dr. Ada Lovelace wrote about the Analytical Engine in 1843. " +
	"The Analytical Engine was a mechanical computer designed by Charles Babbage. " +
	"Lovelace described how the engine could compute Bernoulli numbers."

func TestAnalysisService_MissComputesAndStores(t *testing.T) {
	mockCache := new(MockCache)
	key := cache.AnalysisKey(analysisText)
	mockCache.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss).Once()
	mockCache.On("Set", mock.Anything, key, mock.AnythingOfType("string"), analysisCacheTTL).Return(nil).Once()

	result, err := NewAnalysisService(mockCache).Analyze(context.Background(), analysisText)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Keywords)
	mockCache.AssertExpectations(t)
}

func TestAnalysisService_HitSkipsComputation(t *testing.T) {
	mockCache := new(MockCache)
	key := cache.AnalysisKey("anything")
	mockCache.On("Get", mock.Anything, key).Return(`{"keywords":["cached"],"entities":[],"topics":[]}`, nil).Once()

	result, err := NewAnalysisService(mockCache).Analyze(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, result.Keywords)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisService_CacheFailuresAreNotFatal(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return("", errors.New("redis down")).Once()
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	result, err := NewAnalysisService(mockCache).Analyze(context.Background(), analysisText)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Keywords)
}

func TestAnalysisService_NilCache(t *testing.T) {
	result, err := NewAnalysisService(nil).Analyze(context.Background(), analysisText)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Keywords)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"quizcraft/internal/analysis"
	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
)

const analysisCacheTTL = 24 * time.Hour

// AnalysisService computes keywords, entities and topics of a text.
type AnalysisService interface {
	Analyze(ctx context.Context, text string) (domain.Analysis, error)
}

type analysisService struct {
	cache domain.Cache
}

// NewAnalysisService caches results by content hash. cache may be nil.
func NewAnalysisService(cache domain.Cache) AnalysisService {
	return &analysisService{cache: cache}
}

func (s *analysisService) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	ctx, span := otel.Tracer("quizcraft/service").Start(ctx, "analysis.Analyze")
	defer span.End()
	span.SetAttributes(attribute.Int("text.length", len(text)))

	key := cache.AnalysisKey(text)
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached domain.Analysis
			if jsonErr := json.Unmarshal([]byte(data), &cached); jsonErr == nil {
				span.SetAttributes(attribute.Bool("cache.hit", true))
				return cached, nil
			}
			logger.Get().Warn("Discarding undecodable cached analysis", zap.String("key", key))
		case !errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Warn("Analysis cache read failed", zap.Error(err), zap.String("key", key))
		}
	}

	result := analysis.Analyze(text)

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(data), analysisCacheTTL); err != nil {
				logger.Get().Warn("Analysis cache write failed", zap.Error(err), zap.String("key", key))
			}
		}
	}
	return result, nil
}

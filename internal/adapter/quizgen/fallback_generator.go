package quizgen

import (
	"context"

	"go.uber.org/zap"

	"quizcraft/internal/domain"
)

// FallbackGenerator uses secondary when primary succeeds but yields nothing usable.
type FallbackGenerator struct {
	primary   domain.QuestionGenerator
	secondary domain.QuestionGenerator
	logger    *zap.Logger
}

func NewFallbackGenerator(primary, secondary domain.QuestionGenerator, logger *zap.Logger) *FallbackGenerator {
	return &FallbackGenerator{primary: primary, secondary: secondary, logger: logger}
}

func (g *FallbackGenerator) Generate(ctx context.Context, req domain.GenerateRequest) ([]domain.Question, error) {
	questions, err := g.primary.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		return questions, nil
	}
	g.logger.Warn("primary generator returned no questions, falling back")
	return g.secondary.Generate(ctx, req)
}

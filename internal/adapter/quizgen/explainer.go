package quizgen

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"quizcraft/internal/domain"
)

var errNoChoices = errors.New("model returned no choices")

// LLMExplainer explains the first question of a rendered quiz.
type LLMExplainer struct {
	llm         llms.Model
	provider    string
	temperature float64
	logger      *zap.Logger
}

func NewLLMExplainer(llm llms.Model, provider string, temperature float64, logger *zap.Logger) *LLMExplainer {
	return &LLMExplainer{llm: llm, provider: provider, temperature: temperature, logger: logger}
}

// Explain implements domain.Explainer.
func (e *LLMExplainer) Explain(ctx context.Context, quizText string) (string, error) {
	question := domain.ExtractFirstQuestion(quizText)
	if question == "" {
		question = strings.TrimSpace(quizText)
	}
	if question == "" {
		return "", nil
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, domain.BuildExplanationPrompt(question)),
	}
	resp, err := e.llm.GenerateContent(ctx, messages, llms.WithTemperature(e.temperature))
	if err != nil {
		e.logger.Error("LLM explanation failed", zap.String("provider", e.provider), zap.Error(err))
		return "", domain.NewLLMServiceError(e.provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.NewLLMServiceError(e.provider, errNoChoices)
	}

	return strings.TrimSpace(thinkBlock.ReplaceAllString(resp.Choices[0].Content, "")), nil
}

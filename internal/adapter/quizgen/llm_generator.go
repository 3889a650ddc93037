package quizgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/util"
)

const maxSourceRunes = 8000

// LLMGenerator asks a language model for questions in a fixed JSON shape.
type LLMGenerator struct {
	llm         llms.Model
	provider    string
	temperature float64
	logger      *zap.Logger
}

// NewLLMGenerator wraps a langchaingo model. provider is used in error messages.
func NewLLMGenerator(llm llms.Model, provider string, temperature float64, logger *zap.Logger) *LLMGenerator {
	return &LLMGenerator{llm: llm, provider: provider, temperature: temperature, logger: logger}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func buildGenerationPrompt(req domain.GenerateRequest) string {
	types := req.QuestionTypes
	if len(types) == 0 {
		types = domain.DefaultQuestionTypes
	}
	typeNames := lo.Map(types, func(t domain.QuestionType, _ int) string { return string(t) })

	difficulty := "a mix of easy, medium and hard"
	if req.Difficulty != "" {
		difficulty = string(req.Difficulty)
	}

	return fmt.Sprintf(`You are an expert instructor writing a quiz. Using ONLY the source text below, write %d questions.
Allowed question types: %s. Cycle through the types in that order.
Difficulty: %s.

Respond with ONLY a JSON object in the following format:
{
    "questions": [
        {
            "question": "question text",
            "answer": "correct answer",
            "type": "one of the allowed types",
            "options": ["option 1", "option 2", "option 3", "option 4"],
            "difficulty": "easy | medium | hard",
            "tags": ["tag1", "tag2"]
        }
    ]
}

Rules:
1. "options" is required for multiple_choice and true_false questions and must contain the answer verbatim
2. fill_blank questions mark the gap with _____
3. tags are 1-3 short key terms from the text

Source text:
%s`, req.NumQuestions, strings.Join(typeNames, ", "), difficulty, truncateRunes(req.SourceText, maxSourceRunes))
}

// Generate implements domain.QuestionGenerator.
func (g *LLMGenerator) Generate(ctx context.Context, req domain.GenerateRequest) ([]domain.Question, error) {
	if strings.TrimSpace(req.SourceText) == "" || req.NumQuestions <= 0 {
		return []domain.Question{}, nil
	}

	prompt := buildGenerationPrompt(req)
	g.logger.Debug("requesting questions from LLM",
		zap.String("provider", g.provider),
		zap.Int("num_questions", req.NumQuestions))

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("LLM question generation failed", zap.String("provider", g.provider), zap.Error(err))
		return nil, domain.NewLLMServiceError(g.provider, err)
	}

	questions := ParseQuestions(raw)
	if req.Difficulty != "" {
		questions = lo.Filter(questions, func(q domain.Question, _ int) bool { return q.Difficulty == req.Difficulty })
	}
	if len(questions) > req.NumQuestions {
		questions = questions[:req.NumQuestions]
	}
	for i := range questions {
		questions[i].ID = util.NewULID()
	}

	g.logger.Info("parsed LLM questions",
		zap.String("provider", g.provider),
		zap.Int("generated", len(questions)))
	return questions, nil
}

package quizgen_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/domain"
)

const llmResponse = `{"questions": [
	{"question": "What do plants convert light into?", "answer": "chemical energy", "type": "short_answer", "difficulty": "easy"},
	{"question": "Which pigment absorbs light?", "answer": "Chlorophyll", "type": "multiple_choice", "options": ["Chlorophyll", "Keratin", "Melanin", "Hemoglobin"], "difficulty": "medium"},
	{"question": "Oxygen is a byproduct.", "answer": "True", "type": "true_false", "options": ["True", "False"], "difficulty": "hard"}
]}`

func TestLLMGenerator_Generate(t *testing.T) {
	model := &fakeModel{response: llmResponse}
	gen := quizgen.NewLLMGenerator(model, "ollama", 0.2, zap.NewNop())

	questions, err := gen.Generate(context.Background(), domain.GenerateRequest{
		SourceText:    photosynthesisText,
		NumQuestions:  2,
		QuestionTypes: []domain.QuestionType{domain.QuestionTypeShortAnswer, domain.QuestionTypeMultipleChoice},
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.NotEmpty(t, questions[0].ID)
	assert.Equal(t, 0, *questions[1].CorrectIndex)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "write 2 questions")
	assert.Contains(t, prompt, "short_answer, multiple_choice")
	assert.Contains(t, prompt, "Chlorophyll absorbs light")
}

func TestLLMGenerator_TruncatesSource(t *testing.T) {
	model := &fakeModel{response: "[]"}
	gen := quizgen.NewLLMGenerator(model, "ollama", 0.2, zap.NewNop())

	long := strings.Repeat("é", 9000)
	_, err := gen.Generate(context.Background(), domain.GenerateRequest{SourceText: long, NumQuestions: 1})
	require.NoError(t, err)
	require.Len(t, model.prompts, 1)
	assert.Equal(t, 8000, strings.Count(model.prompts[0], "é"))
}

func TestLLMGenerator_DifficultyFilter(t *testing.T) {
	gen := quizgen.NewLLMGenerator(&fakeModel{response: llmResponse}, "ollama", 0.2, zap.NewNop())
	questions, err := gen.Generate(context.Background(), domain.GenerateRequest{
		SourceText:   photosynthesisText,
		NumQuestions: 5,
		Difficulty:   domain.DifficultyHard,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, domain.QuestionTypeTrueFalse, questions[0].Type)
}

func TestLLMGenerator_Error(t *testing.T) {
	gen := quizgen.NewLLMGenerator(&fakeModel{err: errors.New("connection refused")}, "openai", 0.2, zap.NewNop())
	_, err := gen.Generate(context.Background(), domain.GenerateRequest{SourceText: "text", NumQuestions: 1})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeLLMServiceError))
	assert.Equal(t, "Error calling openai API: connection refused", err.Error())
}

func TestLLMGenerator_EmptyInput(t *testing.T) {
	model := &fakeModel{response: llmResponse}
	gen := quizgen.NewLLMGenerator(model, "ollama", 0.2, zap.NewNop())
	questions, err := gen.Generate(context.Background(), domain.GenerateRequest{SourceText: " ", NumQuestions: 3})
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.Empty(t, model.prompts)
}

func TestFallbackGenerator(t *testing.T) {
	heuristic := quizgen.NewHeuristicGenerator(zap.NewNop())
	req := domain.GenerateRequest{SourceText: photosynthesisText, NumQuestions: 2}

	t.Run("primary result used", func(t *testing.T) {
		gen := quizgen.NewFallbackGenerator(
			quizgen.NewLLMGenerator(&fakeModel{response: llmResponse}, "ollama", 0, zap.NewNop()), heuristic, zap.NewNop())
		got, err := gen.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "What do plants convert light into?", got[0].Question)
	})

	t.Run("empty primary falls back", func(t *testing.T) {
		gen := quizgen.NewFallbackGenerator(
			quizgen.NewLLMGenerator(&fakeModel{response: "I cannot help"}, "ollama", 0, zap.NewNop()), heuristic, zap.NewNop())
		got, err := gen.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("primary error is returned", func(t *testing.T) {
		gen := quizgen.NewFallbackGenerator(
			quizgen.NewLLMGenerator(&fakeModel{err: errors.New("boom")}, "ollama", 0, zap.NewNop()), heuristic, zap.NewNop())
		_, err := gen.Generate(context.Background(), req)
		assert.True(t, domain.IsCode(err, domain.CodeLLMServiceError))
	})
}

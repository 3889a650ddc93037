package quizgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/domain"
)

func TestParseQuestions(t *testing.T) {
	t.Run("wrapped object", func(t *testing.T) {
		raw := `{"questions": [
			{"question": "What is 2+2?", "answer": "4", "type": "mcq", "options": ["3", "4", "5", "6"], "difficulty": "easy", "tags": ["math"]},
			{"question": "Capital of France?", "answer": "Paris", "type": "short_answer"}
		]}`
		got := quizgen.ParseQuestions(raw)
		require.Len(t, got, 2)
		assert.Equal(t, domain.QuestionTypeMultipleChoice, got[0].Type)
		require.NotNil(t, got[0].CorrectIndex)
		assert.Equal(t, 1, *got[0].CorrectIndex)
		assert.Equal(t, domain.DifficultyEasy, got[0].Difficulty)
		assert.Equal(t, []string{"math"}, got[0].Tags)
		assert.Equal(t, domain.DifficultyMedium, got[1].Difficulty)
	})

	t.Run("bare list", func(t *testing.T) {
		got := quizgen.ParseQuestions(`[{"question": "Sky is blue?", "answer": true, "type": "t/f"}]`)
		require.Len(t, got, 1)
		assert.Equal(t, "True", got[0].Answer)
		assert.Equal(t, domain.QuestionTypeTrueFalse, got[0].Type)
	})

	t.Run("think block and surrounding prose", func(t *testing.T) {
		raw := "<think>I should write JSON {not this}</think>Sure! Here it is:\n" +
			`{"questions": [{"question": "Q?", "answer": "A", "type": "fill_blank"}]} hope that helps`
		got := quizgen.ParseQuestions(raw)
		require.Len(t, got, 1)
		assert.Equal(t, domain.QuestionTypeFillBlank, got[0].Type)
	})

	t.Run("incomplete items dropped", func(t *testing.T) {
		raw := `{"questions": [
			{"question": "", "answer": "A", "type": "short_answer"},
			{"question": "Q?", "type": "short_answer"},
			{"question": "Q?", "answer": "A"},
			{"question": "Kept?", "answer": "yes", "type": "short_answer"}
		]}`
		got := quizgen.ParseQuestions(raw)
		require.Len(t, got, 1)
		assert.Equal(t, "Kept?", got[0].Question)
	})

	t.Run("unknown type becomes short answer", func(t *testing.T) {
		got := quizgen.ParseQuestions(`[{"question": "Q?", "answer": "A", "type": "essay"}]`)
		require.Len(t, got, 1)
		assert.Equal(t, domain.QuestionTypeShortAnswer, got[0].Type)
	})

	t.Run("letter answers resolve to an option", func(t *testing.T) {
		got := quizgen.ParseQuestions(`[{"question": "Q?", "answer": "C)", "type": "multiple_choice", "options": ["w", "x", "y", "z"]}]`)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].CorrectIndex)
		assert.Equal(t, 2, *got[0].CorrectIndex)
	})

	t.Run("invalid json", func(t *testing.T) {
		assert.Empty(t, quizgen.ParseQuestions(`{"questions": [ {broken`))
		assert.Empty(t, quizgen.ParseQuestions("no json at all"))
		assert.Empty(t, quizgen.ParseQuestions(""))
	})
}

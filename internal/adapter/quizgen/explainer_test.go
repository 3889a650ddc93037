package quizgen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/config"
	"quizcraft/internal/domain"
)

const quizText = `Intro line
1. What does NLP stand for?
a) Natural Language Processing
b) Neural Logic Programming
c) New Learning Path
d) None
2. Second question?
a) x`

func TestLLMExplainer_Explain(t *testing.T) {
	model := &fakeModel{response: "  <think>hmm</think>NLP stands for Natural Language Processing.  "}
	explainer := quizgen.NewLLMExplainer(model, "ollama", 0.2, zap.NewNop())

	got, err := explainer.Explain(context.Background(), quizText)
	require.NoError(t, err)
	assert.Equal(t, "NLP stands for Natural Language Processing.", got)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Explain the correct answer to the following multiple-choice question.")
	assert.Contains(t, model.prompts[0], "Question:\n1. What does NLP stand for?")
	assert.Contains(t, model.prompts[0], "d) None")
	assert.NotContains(t, model.prompts[0], "Second question")
}

func TestLLMExplainer_EmptyGeneration(t *testing.T) {
	explainer := quizgen.NewLLMExplainer(&fakeModel{response: ""}, "ollama", 0.2, zap.NewNop())
	got, err := explainer.Explain(context.Background(), quizText)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestLLMExplainer_NoChoices(t *testing.T) {
	explainer := quizgen.NewLLMExplainer(&fakeModel{noChoices: true}, "ollama", 0.2, zap.NewNop())
	_, err := explainer.Explain(context.Background(), quizText)
	assert.True(t, domain.IsCode(err, domain.CodeLLMServiceError))
}

func TestLLMExplainer_Error(t *testing.T) {
	explainer := quizgen.NewLLMExplainer(&fakeModel{err: errors.New("timeout")}, "googleai", 0.2, zap.NewNop())
	_, err := explainer.Explain(context.Background(), quizText)
	require.Error(t, err)
	assert.Equal(t, "Error calling googleai API: timeout", err.Error())
}

func TestLLMExplainer_EmptyQuiz(t *testing.T) {
	model := &fakeModel{response: "unused"}
	explainer := quizgen.NewLLMExplainer(model, "ollama", 0.2, zap.NewNop())
	got, err := explainer.Explain(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.Empty(t, model.prompts)
}

func TestNewModel(t *testing.T) {
	_, err := quizgen.NewModel(context.Background(), config.LLMConfig{Provider: "watson"})
	assert.Error(t, err)

	_, err = quizgen.NewModel(context.Background(), config.LLMConfig{Provider: quizgen.ProviderOpenAI, Model: "gpt-4o-mini"})
	assert.Error(t, err)

	_, err = quizgen.NewModel(context.Background(), config.LLMConfig{Provider: quizgen.ProviderGoogleAI})
	assert.Error(t, err)

	model, err := quizgen.NewModel(context.Background(), config.LLMConfig{Provider: quizgen.ProviderOllama, Model: "llama3"})
	require.NoError(t, err)
	assert.NotNil(t, model)
}

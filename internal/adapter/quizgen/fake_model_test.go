package quizgen_test

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model returning a canned completion.
type fakeModel struct {
	response  string
	err       error
	noChoices bool
	prompts   []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, p := range m.Parts {
			if text, ok := p.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.noChoices {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

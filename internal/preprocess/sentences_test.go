package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "basic punctuation",
			in:   "Hello world. How are you? I am fine!",
			want: []string{"Hello world.", "How are you?", "I am fine!"},
		},
		{
			name: "abbreviations",
			in:   "Dr. Smith works at Acme Inc. in London. He likes tea.",
			want: []string{"Dr. Smith works at Acme Inc. in London.", "He likes tea."},
		},
		{
			name: "latin abbreviations",
			in:   "Use fruit, e.g. apples. Then rest.",
			want: []string{"Use fruit, e.g. apples.", "Then rest."},
		},
		{
			name: "decimals urls and emails",
			in:   "It costs $19.99 today. Visit https://example.com or mail a.b@example.org now. Done.",
			want: []string{"It costs $19.99 today.", "Visit https://example.com or mail a.b@example.org now.", "Done."},
		},
		{
			name: "ellipsis",
			in:   "Wait... what happened? Nothing.",
			want: []string{"Wait...", "what happened?", "Nothing."},
		},
		{
			name: "closing quote",
			in:   `He said "stop." Then left.`,
			want: []string{`He said "stop."`, "Then left."},
		},
		{
			name: "blank lines split",
			in:   "Heading without period\n\nBody text here. More text.",
			want: []string{"Heading without period", "Body text here.", "More text."},
		},
		{
			name: "no terminal punctuation",
			in:   "just a fragment",
			want: []string{"just a fragment"},
		},
		{
			name: "unicode",
			in:   "Café is open. 東京 is big!",
			want: []string{"Café is open.", "東京 is big!"},
		},
		{
			name: "empty",
			in:   "",
			want: []string{},
		},
		{
			name: "whitespace only",
			in:   " \n\t ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

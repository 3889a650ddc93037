package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceWord(t *testing.T) {
	tests := []struct {
		name, sentence, word, want string
	}{
		{"ascii", "Chlorophyll absorbs light.", "chlorophyll", "_____ absorbs light."},
		{"trailing non-ascii letter", "Das Café serviert Kaffee.", "café", "Das _____ serviert Kaffee."},
		{"leading non-ascii letter", "Über München scheint Sonne.", "über", "_____ München scheint Sonne."},
		{"inside a longer word is skipped", "Kaffeehaus und Kaffee.", "kaffee", "Kaffeehaus und _____."},
		{"non-ascii neighbour is part of the word", "Cafés und Café.", "café", "Cafés und _____."},
		{"absent", "Nothing to see.", "café", "Nothing to see."},
		{"empty word", "Nothing to see.", "", "Nothing to see."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, replaceWord(tt.sentence, tt.word, blank))
		})
	}
}

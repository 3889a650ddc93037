package analysis

import (
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

const (
	DefaultKeywords = 10
	DefaultEntities = 10
	DefaultTopics   = 3
)

// Analyze runs keyword, entity and topic extraction with the default limits.
func Analyze(text string) domain.Analysis {
	entities := ExtractEntities(text)
	if len(entities) > DefaultEntities {
		entities = entities[:DefaultEntities]
	}
	return domain.Analysis{
		Keywords: ExtractKeywords(text, DefaultKeywords),
		Entities: entities,
		Topics:   ExtractTopics(text, DefaultTopics),
	}
}

// RenderMarkdown formats an analysis as the section appended below a quiz.
func RenderMarkdown(a domain.Analysis) string {
	var b strings.Builder
	b.WriteString("\n\n---\n\n## Analysis\n\n")
	b.WriteString("### Key Terms (TF-IDF):\n")
	b.WriteString(strings.Join(a.Keywords, ", "))
	b.WriteString("\n")

	if len(a.Entities) > 0 {
		b.WriteString("\n### Named Entities (NER):\n")
		for _, e := range a.Entities {
			fmt.Fprintf(&b, "- %s (%s)\n", e.Text, e.Label)
		}
	}

	if len(a.Topics) > 0 {
		b.WriteString("\n### Topics (LDA):\n")
		for i, words := range a.Topics {
			fmt.Fprintf(&b, "- Topic %d: %s\n", i+1, strings.Join(words, ", "))
		}
	}
	return b.String()
}

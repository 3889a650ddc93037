package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quizcraft/internal/domain"
)

func TestAnalyze(t *testing.T) {
	a := Analyze(mlText)
	assert.NotEmpty(t, a.Keywords)
	assert.LessOrEqual(t, len(a.Keywords), DefaultKeywords)
	assert.LessOrEqual(t, len(a.Entities), DefaultEntities)
	assert.LessOrEqual(t, len(a.Topics), DefaultTopics)
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(domain.Analysis{
		Keywords: []string{"learning", "data"},
		Entities: []domain.Entity{{Text: "Google", Label: LabelOrg}},
		Topics:   [][]string{{"cats", "mice"}, {"stocks", "bonds"}},
	})

	assert.Equal(t, "\n\n---\n\n## Analysis\n\n"+
		"### Key Terms (TF-IDF):\nlearning, data\n"+
		"\n### Named Entities (NER):\n- Google (ORG)\n"+
		"\n### Topics (LDA):\n- Topic 1: cats, mice\n- Topic 2: stocks, bonds\n", md)
}

func TestRenderMarkdown_OmitsEmptySections(t *testing.T) {
	md := RenderMarkdown(domain.Analysis{Keywords: []string{"alpha"}})
	assert.Contains(t, md, "### Key Terms (TF-IDF):\nalpha\n")
	assert.NotContains(t, md, "Named Entities")
	assert.NotContains(t, md, "Topics (LDA)")
}

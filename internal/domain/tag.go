package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// DefaultTagTemplateFile is where the CLI stores the last tag selection.
const DefaultTagTemplateFile = "tag_template.json"

// TagScore counts answered questions carrying a tag
type TagScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy in percent; zero when nothing was answered.
func (s TagScore) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// TagTemplate is a saved tag selection
type TagTemplate struct {
	ID           string    `json:"id,omitempty"`
	InstructorID string    `json:"instructor_id,omitempty"`
	Name         string    `json:"name,omitempty"`
	SelectedTags []string  `json:"selected_tags"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// FilterByTag keeps questions that carry at least one of tags. Matching is exact
// and case-sensitive; an empty selection matches nothing.
func FilterByTag(questions []Question, tags []string) []Question {
	out := []Question{}
	if len(tags) == 0 {
		return out
	}
	for _, q := range questions {
		for _, tag := range tags {
			if q.HasTag(tag) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

// CalculateTagScores grades answers[i] against questions[i].CorrectOption().
// Only the first min(len(questions), len(answers)) pairs count. Negative or
// out-of-range answers are wrong.
func CalculateTagScores(questions []Question, answers []int) map[string]TagScore {
	scores := make(map[string]TagScore)
	n := len(questions)
	if len(answers) < n {
		n = len(answers)
	}
	for i := 0; i < n; i++ {
		q := questions[i]
		a := answers[i]
		correct := a >= 0 && a < len(q.Options) && a == q.CorrectOption()
		for _, tag := range q.Tags {
			s := scores[tag]
			s.Total++
			if correct {
				s.Correct++
			}
			scores[tag] = s
		}
	}
	return scores
}

// TagReport renders scores as the plain-text performance report.
func TagReport(scores map[string]TagScore) string {
	var b strings.Builder
	rule := strings.Repeat("=", 40)
	b.WriteString(rule + "\n")
	b.WriteString("TAG PERFORMANCE REPORT\n")
	b.WriteString(rule + "\n")
	if len(scores) == 0 {
		b.WriteString("No tag data available.\n")
		return b.String()
	}
	tags := make([]string, 0, len(scores))
	for tag := range scores {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		s := scores[tag]
		fmt.Fprintf(&b, "%s: %d/%d correct (%.2f%%)\n", tag, s.Correct, s.Total, s.Accuracy())
	}
	return b.String()
}

// SaveTagTemplate writes {"selected_tags": [...]} indented with four spaces.
func SaveTagTemplate(w io.Writer, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(struct {
		SelectedTags []string `json:"selected_tags"`
	}{tags})
}

// LoadTagTemplate reads a template written by SaveTagTemplate.
func LoadTagTemplate(r io.Reader) (*TagTemplate, error) {
	var t TagTemplate
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

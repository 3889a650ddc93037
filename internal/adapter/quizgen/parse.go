package quizgen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"quizcraft/internal/domain"
)

var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

type llmQuestion struct {
	Question    string   `json:"question"`
	Answer      any      `json:"answer"`
	Type        string   `json:"type"`
	Options     []string `json:"options"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	Explanation string   `json:"explanation"`
}

// extractJSON strips reasoning blocks and returns the outermost JSON object or
// array in a model response, or "" when there is none.
func extractJSON(raw string) string {
	cleaned := strings.TrimSpace(thinkBlock.ReplaceAllString(raw, ""))
	start := strings.IndexAny(cleaned, "{[")
	if start == -1 {
		return ""
	}
	closer := "}"
	if cleaned[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(cleaned, closer)
	if end <= start {
		return ""
	}
	return cleaned[start : end+1]
}

// ParseQuestions decodes model output shaped as {"questions": [...]} or as a
// bare list. Items without question, answer or type are dropped and unknown
// types become short_answer. Malformed JSON yields an empty list.
func ParseQuestions(raw string) []domain.Question {
	payload := extractJSON(raw)
	if payload == "" {
		return []domain.Question{}
	}

	var items []llmQuestion
	if strings.HasPrefix(payload, "{") {
		var wrapper struct {
			Questions []llmQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(payload), &wrapper); err != nil {
			return []domain.Question{}
		}
		items = wrapper.Questions
	} else if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return []domain.Question{}
	}

	out := make([]domain.Question, 0, len(items))
	for _, it := range items {
		answer := answerText(it.Answer)
		if strings.TrimSpace(it.Question) == "" || answer == "" || strings.TrimSpace(it.Type) == "" {
			continue
		}
		qType, ok := domain.ParseQuestionType(it.Type)
		if !ok {
			qType = domain.QuestionTypeShortAnswer
		}
		q := domain.Question{
			Question:    strings.TrimSpace(it.Question),
			Answer:      answer,
			Type:        qType,
			Options:     it.Options,
			Tags:        it.Tags,
			Explanation: it.Explanation,
		}
		if d, err := domain.ParseDifficulty(it.Difficulty); err == nil {
			q.Difficulty = d
		} else {
			q.Difficulty = domain.DifficultyMedium
		}
		if len(q.Options) > 0 {
			if idx := q.CorrectOption(); idx >= 0 {
				q.CorrectIndex = domain.IntPtr(idx)
			} else if idx := letterIndex(answer, len(q.Options)); idx >= 0 {
				q.CorrectIndex = domain.IntPtr(idx)
			}
		}
		out = append(out, q)
	}
	return out
}

func answerText(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(a)
	case bool:
		if a {
			return "True"
		}
		return "False"
	default:
		return strings.TrimSpace(fmt.Sprint(a))
	}
}

// letterIndex resolves answers given as "B" or "b)".
func letterIndex(answer string, n int) int {
	a := strings.TrimRight(strings.TrimSpace(answer), ").")
	if len(a) != 1 {
		return -1
	}
	idx := int(strings.ToUpper(a)[0] - 'A')
	if idx < 0 || idx >= n {
		return -1
	}
	return idx
}

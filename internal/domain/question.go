package domain

import (
	"strings"
	"unicode"
)

// QuestionType is an open set; generators may emit types outside the constants below.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeFillBlank      QuestionType = "fill_blank"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeTopic          QuestionType = "topic"

	// aliases accepted from LLM output and older question banks
	QuestionTypeMCQ QuestionType = "mcq"
	QuestionTypeTF  QuestionType = "t/f"
)

// DefaultQuestionTypes is used when a request does not name any type.
var DefaultQuestionTypes = []QuestionType{
	QuestionTypeFillBlank,
	QuestionTypeMultipleChoice,
	QuestionTypeTrueFalse,
	QuestionTypeShortAnswer,
}

var questionTypeAliases = map[string]QuestionType{
	"multiple_choice":   QuestionTypeMultipleChoice,
	"multiple choice":   QuestionTypeMultipleChoice,
	"mcq":               QuestionTypeMultipleChoice,
	"short_answer":      QuestionTypeShortAnswer,
	"short answer":      QuestionTypeShortAnswer,
	"fill_blank":        QuestionTypeFillBlank,
	"fill in the blank": QuestionTypeFillBlank,
	"fill_in_the_blank": QuestionTypeFillBlank,
	"true_false":        QuestionTypeTrueFalse,
	"true/false":        QuestionTypeTrueFalse,
	"t/f":               QuestionTypeTrueFalse,
	"topic":             QuestionTypeTopic,
}

// ParseQuestionType maps user or model supplied names onto a canonical type.
// ok is false when the name is unknown.
func ParseQuestionType(s string) (QuestionType, bool) {
	t, ok := questionTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Label renders a type for humans: fill_blank -> "Fill Blank", mcq -> "Mcq".
func (t QuestionType) Label() string {
	words := strings.Fields(strings.ReplaceAll(string(t), "_", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// IsMultipleChoice reports whether questions of this type carry options.
func (t QuestionType) IsMultipleChoice() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeMCQ
}

// Difficulty of a generated question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty level.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", NewInvalidDifficultyError(s)
	}
}

// Question is a single generated or pooled quiz item
type Question struct {
	ID             string       `json:"id,omitempty"`
	Question       string       `json:"question"`
	Answer         string       `json:"answer"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options,omitempty"`
	CorrectIndex   *int         `json:"correct_index,omitempty"`
	Difficulty     Difficulty   `json:"difficulty,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Explanation    string       `json:"explanation,omitempty"`
	SourceSentence string       `json:"source_sentence,omitempty"`
}

// Clone returns a deep copy so callers can reorder options without touching the original.
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.Tags != nil {
		c.Tags = append([]string(nil), q.Tags...)
	}
	if q.CorrectIndex != nil {
		idx := *q.CorrectIndex
		c.CorrectIndex = &idx
	}
	return c
}

// CorrectOption returns the index of the correct option, resolving it from the
// answer text when CorrectIndex is unset. -1 means unknown.
func (q Question) CorrectOption() int {
	if q.CorrectIndex != nil {
		return *q.CorrectIndex
	}
	for i, opt := range q.Options {
		if opt == q.Answer || StripOptionPrefix(opt) == q.Answer {
			return i
		}
	}
	return -1
}

// HasTag reports an exact, case-sensitive tag match.
func (q Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// OptionLetter returns "A", "B", ... for option index i.
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// StripOptionPrefix removes a leading "A) " or "a. " style marker.
func StripOptionPrefix(opt string) string {
	s := strings.TrimSpace(opt)
	if len(s) >= 3 && unicode.IsLetter(rune(s[0])) && (s[1] == ')' || s[1] == '.') && s[2] == ' ' {
		return strings.TrimSpace(s[3:])
	}
	return s
}

// IntPtr is a small helper for CorrectIndex literals.
func IntPtr(i int) *int {
	return &i
}

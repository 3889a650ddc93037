package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberedLine = regexp.MustCompile(`^\d+\.`)
	lastOption   = regexp.MustCompile(`(?i)^d\)`)
)

func isQuestionStart(line string) bool {
	return numberedLine.MatchString(line) || strings.HasPrefix(strings.ToLower(line), "question")
}

// ExtractFirstQuestion returns the first question block of a quiz rendered as
// text: from the first "N." or "Question..." line through its "d)" option. When
// no "d)" line follows, the block ends before the next question or at the end.
func ExtractFirstQuestion(quizText string) string {
	if strings.TrimSpace(quizText) == "" {
		return ""
	}
	var block []string
	started := false
	for _, raw := range strings.Split(quizText, "\n") {
		line := strings.TrimSpace(raw)
		if !started {
			if isQuestionStart(line) {
				started = true
				block = append(block, line)
			}
			continue
		}
		if isQuestionStart(line) {
			break
		}
		if line == "" {
			continue
		}
		block = append(block, line)
		if lastOption.MatchString(line) {
			break
		}
	}
	return strings.Join(block, "\n")
}

// BuildExplanationPrompt wraps a question block in the explanation instruction.
func BuildExplanationPrompt(question string) string {
	var b strings.Builder
	b.WriteString("Explain the correct answer to the following multiple-choice question.\n\n")
	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n\nProvide a short and clear explanation.")
	return b.String()
}

// QuestionBlock renders q in the "1. ... a) ... d)" layout that
// ExtractFirstQuestion understands.
func QuestionBlock(n int, q Question) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(n))
	b.WriteString(". ")
	b.WriteString(q.Question)
	correct := q.CorrectOption()
	for i, opt := range q.Options {
		b.WriteString("\n")
		b.WriteString(strings.ToLower(OptionLetter(i)))
		b.WriteString(") ")
		b.WriteString(StripOptionPrefix(opt))
		if i == correct {
			b.WriteString(" (*)")
		}
	}
	return b.String()
}

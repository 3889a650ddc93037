package export

import (
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

const ruleWidth = 50

// Text renders a plain text quiz with its answers.
func Text(questions []domain.Question) string {
	var b strings.Builder
	b.WriteString("Generated Quiz\n")
	b.WriteString(strings.Repeat("=", ruleWidth))
	b.WriteString("\n\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "Q%d. [%s] %s\n", i+1, q.Type.Label(), q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(&b, "   %s\n", optionLine(j, opt))
		}
		fmt.Fprintf(&b, "Answer: %s\n", q.Answer)
		if q.Explanation != "" {
			fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
		}
		b.WriteString(strings.Repeat("-", ruleWidth))
		b.WriteString("\n\n")
	}
	return b.String()
}

package export

import (
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

// Markdown renders the quiz view shown after generation and shuffling.
func Markdown(questions []domain.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Generated Quiz (%d questions)\n\n", len(questions))
	for i, q := range questions {
		fmt.Fprintf(&b, "**Q%d.** %s\n", i+1, q.Question)
		if q.Difficulty != "" {
			fmt.Fprintf(&b, "*Type: %s* | *Difficulty: %s*\n", q.Type.Label(), q.Difficulty)
		} else {
			fmt.Fprintf(&b, "*Type: %s*\n", q.Type.Label())
		}
		if len(q.Options) > 0 {
			b.WriteString("\n")
			for j, opt := range q.Options {
				b.WriteString(optionLine(j, opt))
				b.WriteString("\n")
			}
		}
		fmt.Fprintf(&b, "\n**Answer:** %s\n", q.Answer)
		if q.Explanation != "" {
			fmt.Fprintf(&b, "**Explanation:** %s\n", q.Explanation)
		}
		if len(q.Tags) > 0 {
			fmt.Fprintf(&b, "**Tags:** %s\n", strings.Join(q.Tags, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

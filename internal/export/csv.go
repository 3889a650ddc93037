package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"quizcraft/internal/domain"
)

var csvHeader = []string{"Question Number", "Type", "Question", "Answer", "Options"}

// WriteCSV writes one row per question; options are joined with " | ".
func WriteCSV(w io.Writer, questions []domain.Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, q := range questions {
		row := []string{
			strconv.Itoa(i + 1),
			string(q.Type),
			q.Question,
			q.Answer,
			strings.Join(q.Options, " | "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

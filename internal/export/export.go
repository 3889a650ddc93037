// Package export renders a quiz as markdown, CSV, plain text, PDF or PNG.
package export

import (
	"fmt"
	"io"
	"strings"

	"quizcraft/internal/domain"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatText     Format = "txt"
	FormatPDF      Format = "pdf"
	FormatPNG      Format = "png"
)

const baseFilename = "generated_quiz"

// ParseFormat maps a user supplied format; anything unknown becomes markdown.
func ParseFormat(s string) Format {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatCSV, FormatText, FormatPDF, FormatPNG:
		return f
	default:
		return FormatMarkdown
	}
}

// Filename is the download name for this format.
func (f Format) Filename() string {
	return baseFilename + "." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Quiz is what every writer needs: the questions and their rendered markdown.
type Quiz struct {
	Questions []domain.Question
	Markdown  string
}

// Write renders quiz in format f.
func Write(w io.Writer, f Format, quiz Quiz) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, quiz.Questions)
	case FormatText:
		_, err := io.WriteString(w, Text(quiz.Questions))
		return err
	case FormatPDF:
		return WritePDF(w, quiz.Questions)
	case FormatPNG:
		return WritePNG(w, quiz.Questions)
	case FormatMarkdown:
		md := quiz.Markdown
		if md == "" {
			md = Markdown(quiz.Questions)
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// optionLine prefixes an option with its letter unless it already has one.
func optionLine(i int, opt string) string {
	if domain.StripOptionPrefix(opt) != strings.TrimSpace(opt) {
		return strings.TrimSpace(opt)
	}
	return domain.OptionLetter(i) + ") " + strings.TrimSpace(opt)
}

package export

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"

	"quizcraft/internal/domain"
)

var (
	pdfEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	boldRun    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRun  = regexp.MustCompile(`\*(.+?)\*`)
	blankRun   = regexp.MustCompile(`_{3,}`)
	styleTag   = regexp.MustCompile(`</?[bi]>`)
)

const (
	pdfFont       = "Helvetica"
	pdfBodySize   = 11
	pdfLineHeight = 6
)

// CleanTextForPDF escapes markup characters and turns markdown emphasis into
// <b>/<i> runs. Blanks are widened so they stay visible in print.
func CleanTextForPDF(text string) string {
	s := pdfEscaper.Replace(text)
	s = boldRun.ReplaceAllString(s, "<b>$1</b>")
	s = italicRun.ReplaceAllString(s, "<i>$1</i>")
	return blankRun.ReplaceAllString(s, "___________")
}

// WritePDF renders the questions followed by an answer key on its own page.
func WritePDF(w io.Writer, questions []domain.Question) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Generated Quiz", true)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 10, "Generated Quiz", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, q := range questions {
		line := fmt.Sprintf("**Q%d.** %s", i+1, q.Question)
		writeRich(pdf, tr, CleanTextForPDF(line))
		pdf.Ln(pdfLineHeight)
		pdf.SetFont(pdfFont, "I", 9)
		pdf.Write(5, tr(q.Type.Label()))
		pdf.Ln(5)
		for j, opt := range q.Options {
			pdf.SetX(24)
			writeRich(pdf, tr, CleanTextForPDF(optionLine(j, opt)))
			pdf.Ln(pdfLineHeight)
		}
		pdf.Ln(3)
	}

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, "Answer Key", "", 1, "L", false, 0, "")
	for i, q := range questions {
		writeRich(pdf, tr, CleanTextForPDF(fmt.Sprintf("**%d.** %s", i+1, q.Answer)))
		pdf.Ln(pdfLineHeight)
		if q.Explanation != "" {
			writeRich(pdf, tr, "<i>"+CleanTextForPDF(q.Explanation)+"</i>")
			pdf.Ln(pdfLineHeight)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// writeRich writes text produced by CleanTextForPDF, switching font style at
// each <b>/<i> tag and unescaping the entities in between.
func writeRich(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	bold, italic := false, false
	flush := func(s string) {
		if s == "" {
			return
		}
		style := ""
		if bold {
			style += "B"
		}
		if italic {
			style += "I"
		}
		pdf.SetFont(pdfFont, style, pdfBodySize)
		pdf.Write(pdfLineHeight, tr(html.UnescapeString(s)))
	}

	pos := 0
	for _, loc := range styleTag.FindAllStringIndex(text, -1) {
		flush(text[pos:loc[0]])
		switch text[loc[0]:loc[1]] {
		case "<b>":
			bold = true
		case "</b>":
			bold = false
		case "<i>":
			italic = true
		case "</i>":
			italic = false
		}
		pos = loc[1]
	}
	flush(text[pos:])
}

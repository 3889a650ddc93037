package export

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"quizcraft/internal/domain"
)

const (
	sheetWidth  = 900
	sheetMargin = 40
	sheetLineH  = 18
	// keeps very long quizzes within image size limits
	sheetMaxHeight = 16000
)

// WritePNG renders a printable quiz sheet: questions, then the answer key.
func WritePNG(w io.Writer, questions []domain.Question) error {
	face := basicfont.Face7x13
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	maxWidth := float64(sheetWidth - 2*sheetMargin)

	var lines []string
	add := func(s string) {
		if s == "" {
			lines = append(lines, "")
			return
		}
		lines = append(lines, measure.WordWrap(s, maxWidth)...)
	}

	add("Generated Quiz")
	add("")
	for i, q := range questions {
		add(fmt.Sprintf("Q%d. [%s] %s", i+1, q.Type.Label(), q.Question))
		for j, opt := range q.Options {
			add("    " + optionLine(j, opt))
		}
		add("")
	}
	add("Answer Key")
	for i, q := range questions {
		add(fmt.Sprintf("%d. %s", i+1, q.Answer))
	}

	height := 2*sheetMargin + len(lines)*sheetLineH
	if height > sheetMaxHeight {
		height = sheetMaxHeight
	}

	dc := gg.NewContext(sheetWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face)
	y := float64(sheetMargin)
	for _, line := range lines {
		if y > float64(height-sheetMargin) {
			break
		}
		dc.DrawString(line, sheetMargin, y)
		y += sheetLineH
	}
	return dc.EncodePNG(w)
}

package ingestion

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"quizcraft/internal/domain"
)

// extractPDFText reads the embedded text layer page by page. Scanned PDFs
// come back with blank segments.
func extractPDFText(raw []byte) (segments []domain.Segment, err error) {
	// the parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		segments = append(segments, domain.Segment{Text: normalize(text), Page: i})
	}
	return segments, nil
}

// Package ingestion turns uploaded files into normalized source text.
package ingestion

import (
	"bytes"
	"path/filepath"
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/preprocess"
)

var (
	imageExts = map[string]struct{}{".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".bmp": {}, ".tif": {}, ".tiff": {}}
	textExts  = map[string]struct{}{".txt": {}, ".md": {}, ".markdown": {}, ".csv": {}, ".json": {}}
)

// ClassifyKind decides how an upload is read from its magic bytes, mime type
// and file extension, in that order.
func ClassifyKind(filename, mimeType string, head []byte) domain.MaterialKind {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case bytes.HasPrefix(head, []byte("%PDF-")), ext == ".pdf", mimeType == "application/pdf":
		return domain.MaterialPDF
	case strings.HasPrefix(mimeType, "image/"):
		return domain.MaterialImage
	case strings.HasPrefix(mimeType, "text/"):
		return domain.MaterialText
	}
	if _, ok := imageExts[ext]; ok {
		return domain.MaterialImage
	}
	if _, ok := textExts[ext]; ok {
		return domain.MaterialText
	}
	return domain.MaterialUnknown
}

// DecodeText reads raw bytes as UTF-8, dropping invalid sequences.
func DecodeText(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
}

// normalize is applied to every extracted text.
func normalize(text string) string {
	return preprocess.Normalize(text)
}

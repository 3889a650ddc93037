package ingestion

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quizcraft/internal/domain"
	"quizcraft/internal/util"
)

const defaultConcurrency = 4

var tracer = otel.Tracer("quizcraft/ingestion")

// Extractor implements domain.TextExtractor. Both OCR backends are optional.
type Extractor struct {
	images      ImageOCR
	documents   DocumentOCR
	concurrency int
	logger      *zap.Logger
}

type Option func(*Extractor)

// WithImageOCR enables text extraction from images.
func WithImageOCR(ocr ImageOCR) Option {
	return func(e *Extractor) { e.images = ocr }
}

// WithDocumentOCR enables the OCR fallback for PDFs without a text layer.
func WithDocumentOCR(ocr DocumentOCR) Option {
	return func(e *Extractor) { e.documents = ocr }
}

// WithConcurrency bounds how many files ExtractAll reads at once.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func NewExtractor(logger *zap.Logger, opts ...Option) *Extractor {
	e := &Extractor{concurrency: defaultConcurrency, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads one upload into a Material with normalized text.
func (e *Extractor) Extract(ctx context.Context, upload domain.Upload) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "ingestion.Extract")
	defer span.End()

	mimeType := upload.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(upload.Data)
	}
	head := upload.Data
	if len(head) > 8 {
		head = head[:8]
	}
	kind := ClassifyKind(upload.Filename, mimeType, head)
	span.SetAttributes(
		attribute.String("material.filename", upload.Filename),
		attribute.String("material.kind", string(kind)),
		attribute.Int("material.size", len(upload.Data)),
	)

	material := &domain.Material{
		ID:        util.NewULID(),
		Filename:  upload.Filename,
		Kind:      kind,
		MimeType:  mimeType,
		CreatedAt: time.Now(),
	}

	var err error
	switch kind {
	case domain.MaterialText:
		material.Text = normalize(DecodeText(upload.Data))
	case domain.MaterialPDF:
		err = e.extractPDF(ctx, upload, material)
	case domain.MaterialImage:
		err = e.extractImage(ctx, upload, material)
	default:
		err = domain.NewUnsupportedFormatError(upload.Filename)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	e.logger.Info("extracted material",
		zap.String("filename", upload.Filename),
		zap.String("kind", string(kind)),
		zap.Int("chars", len(material.Text)))
	return material, nil
}

func (e *Extractor) extractPDF(ctx context.Context, upload domain.Upload, m *domain.Material) error {
	if len(upload.Data) == 0 {
		return nil
	}
	segments, err := extractPDFText(upload.Data)
	if err != nil {
		e.logger.Warn("pdf text layer unreadable", zap.String("filename", upload.Filename), zap.Error(err))
	}
	m.Segments = segments
	m.Text = joinSegments(segments)
	if m.Text != "" {
		return nil
	}

	if e.documents == nil {
		if err != nil {
			return domain.NewExtractionError("could not read PDF text", err)
		}
		return nil
	}
	text, ocrErr := e.documents.ProcessDocument(ctx, upload.Data, "application/pdf")
	if ocrErr != nil {
		return domain.NewExtractionError("document OCR failed", ocrErr)
	}
	m.Text = normalize(text)
	m.Segments = []domain.Segment{{Text: m.Text, Page: 1}}
	return nil
}

func (e *Extractor) extractImage(ctx context.Context, upload domain.Upload, m *domain.Material) error {
	if e.images == nil {
		return domain.NewExtractionError("image OCR is not configured", nil)
	}
	text, err := e.images.DetectText(ctx, upload.Data)
	if err != nil {
		return domain.NewExtractionError("image OCR failed", err)
	}
	m.Text = normalize(text)
	return nil
}

// ExtractAll reads uploads concurrently and returns materials in upload order.
func (e *Extractor) ExtractAll(ctx context.Context, uploads []domain.Upload) ([]*domain.Material, error) {
	materials := make([]*domain.Material, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, upload := range uploads {
		g.Go(func() error {
			m, err := e.Extract(gctx, upload)
			if err != nil {
				return err
			}
			materials[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return materials, nil
}

// JoinText concatenates material texts with a blank line, skipping empty ones.
func JoinText(materials []*domain.Material) string {
	parts := make([]string, 0, len(materials))
	for _, m := range materials {
		if m != nil && strings.TrimSpace(m.Text) != "" {
			parts = append(parts, m.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func joinSegments(segments []domain.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

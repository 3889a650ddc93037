package ingestion

import (
	"context"
	"fmt"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"quizcraft/internal/config"
	"quizcraft/internal/gcp"
)

// ImageOCR reads text from an image.
type ImageOCR interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// DocumentOCR reads text from a scanned document.
type DocumentOCR interface {
	ProcessDocument(ctx context.Context, data []byte, mimeType string) (string, error)
}

// VisionOCR uses Cloud Vision DOCUMENT_TEXT_DETECTION.
type VisionOCR struct {
	client *vision.ImageAnnotatorClient
}

func NewVisionOCR(ctx context.Context, cfg config.GCPConfig) (*VisionOCR, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, gcp.ClientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &VisionOCR{client: client}, nil
}

func (v *VisionOCR) DetectText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", nil
	}
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	}
	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}
	r0 := resp.Responses[0]
	if r0.GetError() != nil && r0.GetError().GetMessage() != "" {
		return "", fmt.Errorf("vision annotate error: %s", r0.GetError().GetMessage())
	}
	return strings.TrimSpace(r0.GetFullTextAnnotation().GetText()), nil
}

func (v *VisionOCR) Close() error {
	return v.client.Close()
}

// DocumentAIOCR sends raw documents to a Document AI OCR processor.
type DocumentAIOCR struct {
	client    *documentai.DocumentProcessorClient
	processor string
}

func NewDocumentAIOCR(ctx context.Context, cfg config.GCPConfig) (*DocumentAIOCR, error) {
	opts := append([]option.ClientOption{option.WithEndpoint(gcp.DocumentAIEndpoint(cfg.Location))}, gcp.ClientOptions(cfg)...)
	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}
	return &DocumentAIOCR{
		client:    client,
		processor: gcp.ProcessorName(cfg.ProjectID, cfg.Location, cfg.DocumentAIProcessor),
	}, nil
}

func (d *DocumentAIOCR) ProcessDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	resp, err := d.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: d.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{Content: data, MimeType: mimeType},
		},
	})
	if err != nil {
		return "", fmt.Errorf("documentai ProcessDocument: %w", err)
	}
	return strings.TrimSpace(resp.GetDocument().GetText()), nil
}

func (d *DocumentAIOCR) Close() error {
	return d.client.Close()
}

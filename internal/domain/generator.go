package domain

import (
	"context"
	"io"
)

// GenerateRequest describes what a QuestionGenerator should produce.
type GenerateRequest struct {
	SourceText    string
	NumQuestions  int
	QuestionTypes []QuestionType
	Difficulty    Difficulty // empty means any
	Seed          int64
}

// QuestionGenerator turns source text into quiz questions.
type QuestionGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) ([]Question, error)
}

// Explainer produces a short explanation for the first question of a quiz text.
type Explainer interface {
	Explain(ctx context.Context, quizText string) (string, error)
}

// TextExtractor turns an upload into a Material with normalized text.
type TextExtractor interface {
	Extract(ctx context.Context, upload Upload) (*Material, error)
}

// BlobStore keeps raw uploads and exported files.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// StorageError represents an error originating from a BlobStore.
type StorageError string

func (e StorageError) Error() string {
	return string(e)
}

// ErrBlobNotFound is returned by BlobStore.Get for unknown keys.
const ErrBlobNotFound = StorageError("blob: object not found")

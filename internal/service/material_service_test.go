package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
)

func TestMaterialService_Ingest(t *testing.T) {
	extractor := new(MockBatchExtractor)
	repo := new(MockMaterialRepository)
	blobs := new(MockBlobStore)
	svc := NewMaterialService(extractor, repo, blobs)

	uploads := []domain.Upload{
		{Filename: "notes.txt", MimeType: "text/plain", Data: []byte("Go has goroutines.")},
		{Filename: "../../etc/scan.png", MimeType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	extracted := []*domain.Material{
		{ID: "01HZX3K8Q9RZ5T1V2W3X4Y5Z6A", Filename: "notes.txt", Kind: domain.MaterialText, Text: "Go has goroutines."},
		{Filename: "scan.png", Kind: domain.MaterialImage, Text: "scanned"},
	}
	extractor.On("ExtractAll", mock.Anything, uploads).Return(extracted, nil).Once()
	blobs.On("Put", mock.Anything, "materials/01HZX3K8Q9RZ5T1V2W3X4Y5Z6A/notes.txt", "text/plain").Return(nil).Once()
	blobs.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return key != "materials/01HZX3K8Q9RZ5T1V2W3X4Y5Z6A/notes.txt"
	}), "image/png").Return(errors.New("bucket unavailable")).Once()
	repo.On("SaveMaterial", mock.Anything, mock.AnythingOfType("*domain.Material")).Return(nil).Twice()

	got, err := svc.Ingest(context.Background(), "inst-1", uploads)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "materials/01HZX3K8Q9RZ5T1V2W3X4Y5Z6A/notes.txt", got[0].StorageKey)
	assert.Equal(t, "inst-1", got[0].InstructorID)
	assert.Equal(t, []byte("Go has goroutines."), blobs.stored(got[0].StorageKey))

	assert.NotEmpty(t, got[1].ID)
	assert.Empty(t, got[1].StorageKey, "failed archive leaves no key")

	extractor.AssertExpectations(t)
	repo.AssertExpectations(t)
	blobs.AssertExpectations(t)
}

func TestMaterialService_Ingest_Errors(t *testing.T) {
	extractor := new(MockBatchExtractor)
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(extractor, repo, nil)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, "", nil)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))

	uploads := []domain.Upload{{Filename: "x.bin"}}
	extractor.On("ExtractAll", mock.Anything, uploads).Return(nil, domain.NewUnsupportedFormatError("unknown")).Once()
	_, err = svc.Ingest(ctx, "", uploads)
	assert.True(t, domain.IsCode(err, domain.CodeUnsupportedFormat))

	ok := []domain.Upload{{Filename: "a.txt"}}
	extractor.On("ExtractAll", mock.Anything, ok).Return([]*domain.Material{{Text: "a"}}, nil).Once()
	repo.On("SaveMaterial", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	_, err = svc.Ingest(ctx, "", ok)
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}

func TestMaterialService_Get(t *testing.T) {
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(nil, repo, nil)
	ctx := context.Background()

	repo.On("GetMaterialByID", mock.Anything, "found").Return(&domain.Material{ID: "found"}, nil).Once()
	repo.On("GetMaterialByID", mock.Anything, "missing").Return(nil, nil).Once()
	repo.On("GetMaterialByID", mock.Anything, "broken").Return(nil, errors.New("db down")).Once()

	m, err := svc.Get(ctx, "found")
	require.NoError(t, err)
	assert.Equal(t, "found", m.ID)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	_, err = svc.Get(ctx, "broken")
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}

package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
)

func TestFSStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	key := "exports/01HX/generated_quiz.md"
	require.NoError(t, store.Put(ctx, key, "text/markdown", strings.NewReader("# Quiz")))

	rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "# Quiz", string(data))

	require.NoError(t, store.Put(ctx, key, "text/markdown", strings.NewReader("# Quiz v2")))
	rc, err = store.Get(ctx, key)
	require.NoError(t, err)
	data, _ = io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "# Quiz v2", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.True(t, errors.Is(err, domain.ErrBlobNotFound))

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, key))
}

func TestFSStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/../../b", "/etc/passwd", "a//b", "./a", `a\b`} {
		assert.Error(t, store.Put(ctx, key, "", strings.NewReader("x")), key)
		_, err := store.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestNew(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Driver: "fs", BaseDir: t.TempDir()}, config.GCPConfig{})
	require.NoError(t, err)
	assert.IsType(t, &FSStore{}, store)

	_, err = New(context.Background(), config.StorageConfig{Driver: "s3"}, config.GCPConfig{})
	assert.Error(t, err)
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zap.NewNop())
	require.NoError(t, err)

	obj, err := store.Save(context.Background(), strings.NewReader("content"), "user-1/123-abc.pdf")
	require.NoError(t, err)

	// Path separators in the key are flattened to keep files inside baseDir.
	assert.Equal(t, filepath.Join(dir, "123-abc.pdf"), obj.Path)
	assert.Equal(t, "/uploads/123-abc.pdf", obj.URL)

	data, err := os.ReadFile(obj.Path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestLocalStoreRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	obj, err := store.Save(context.Background(), strings.NewReader("x"), "a.txt")
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), obj.Path))
	_, err = os.Stat(obj.Path)
	assert.True(t, os.IsNotExist(err))

	// Removing a missing file is not an error.
	assert.NoError(t, store.Remove(context.Background(), obj.Path))
}

func TestLocalStoreCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := NewLocalStore(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, dir, store.BaseDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

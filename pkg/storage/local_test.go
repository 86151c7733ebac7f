package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(filepath.Join(dir, "uploads"))

	fileName, filePath, err := store.Save(context.Background(), "resume.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(fileName, "-resume.pdf"))
	assert.Equal(t, "/uploads/"+fileName, filePath)

	// Upload dir is created on demand and the file lands inside it
	data, err := os.ReadFile(filepath.Join(dir, "uploads", fileName))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestLocalStoreStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	fileName, _, err := store.Save(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)

	// Only the base name survives; no traversal outside the store root
	assert.True(t, strings.HasSuffix(fileName, "-passwd"))
	assert.NotContains(t, fileName, "/")
	_, err = os.Stat(filepath.Join(dir, fileName))
	assert.NoError(t, err)
}

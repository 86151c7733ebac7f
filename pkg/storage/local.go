package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ResumeStore persists uploaded resume binaries and returns the stored
// file name plus the public path a client can fetch it from.
type ResumeStore interface {
	Save(ctx context.Context, originalName string, data []byte) (fileName string, filePath string, err error)
}

// LocalStore writes resumes to a directory on local disk, created on first
// use. Files are named "<upload-epoch-ms>-<original-name>"; two uploads of
// the same file within the same millisecond collide, which is accepted.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Save(ctx context.Context, originalName string, data []byte) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	// Base strips any client-supplied directory components
	fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalName))
	fullPath := filepath.Join(s.baseDir, fileName)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}

	return fileName, "/uploads/" + fileName, nil
}

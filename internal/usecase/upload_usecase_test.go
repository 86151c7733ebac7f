package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recroot-backend/internal/domain"
	"recroot-backend/internal/usecase"
	"recroot-backend/pkg/apperror"
	"recroot-backend/pkg/security"
	"recroot-backend/pkg/security/antivirus"
	"recroot-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	allowed    bool
	retryAfter int
	err        error
}

func (f *fakeLimiter) AllowUpload(ctx context.Context, ip, userID string) (bool, int, error) {
	return f.allowed, f.retryAfter, f.err
}

type fakeScanner struct {
	infected bool
}

func (f *fakeScanner) Scan(ctx context.Context, filename string, data io.Reader) antivirus.ScanResult {
	return antivirus.ScanResult{Infected: f.infected, ThreatName: "Eicar-Test", ScannerName: f.Name()}
}
func (f *fakeScanner) Name() string                       { return "fake" }
func (f *fakeScanner) Available(ctx context.Context) bool { return true }

func newUploadUC(t *testing.T, limiter usecase.UploadLimiter, scanner antivirus.Scanner) (domain.ResumeUploadUsecase, string) {
	t.Helper()
	dir := t.TempDir()
	return usecase.NewResumeUploadUsecase(storage.NewLocalStore(dir), limiter, scanner), dir
}

func docxBytes() []byte {
	// Minimal zip local-file-header magic is all the content check needs
	return append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0}, 64)...)
}

func upload(name string, content []byte) *domain.ResumeUpload {
	return &domain.ResumeUpload{
		FileName:   name,
		Size:       int64(len(content)),
		Content:    bytes.NewReader(content),
		ClientIP:   "10.0.0.1",
		UploadedBy: "user1",
	}
}

func TestResumeUploadValidation(t *testing.T) {
	uc, _ := newUploadUC(t, &fakeLimiter{allowed: true}, antivirus.NewNoOpScanner())
	ctx := authedCtx("user1")

	t.Run("Should reject missing authentication", func(t *testing.T) {
		_, err := uc.Upload(context.Background(), upload("cv.pdf", []byte("%PDF-1.4")))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should reject missing file", func(t *testing.T) {
		_, err := uc.Upload(ctx, &domain.ResumeUpload{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Please upload a file")
	})

	t.Run("Should reject disallowed extension", func(t *testing.T) {
		_, err := uc.Upload(ctx, upload("malware.exe", []byte("MZ")))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only PDF, DOC, and DOCX files are allowed")
	})

	t.Run("Should reject files over the size cap", func(t *testing.T) {
		big := upload("cv.pdf", nil)
		big.Size = security.MaxResumeSize + 1
		big.Content = strings.NewReader("%PDF-1.4")

		_, err := uc.Upload(ctx, big)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "File too large")
	})

	t.Run("Should reject content that does not match the extension", func(t *testing.T) {
		_, err := uc.Upload(ctx, upload("cv.pdf", []byte("<html>not a pdf</html>")))
		assert.Error(t, err)
	})
}

func TestResumeUploadSuccess(t *testing.T) {
	uc, dir := newUploadUC(t, &fakeLimiter{allowed: true}, antivirus.NewNoOpScanner())

	result, err := uc.Upload(authedCtx("user1"), upload("My Resume.docx", docxBytes()))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.FileName, "-My Resume.docx"))
	assert.Equal(t, "/uploads/"+result.FileName, result.FilePath)

	// The file must actually be on disk under the store root
	data, err := os.ReadFile(filepath.Join(dir, result.FileName))
	require.NoError(t, err)
	assert.Equal(t, docxBytes(), data)
}

func TestResumeUploadRateLimit(t *testing.T) {
	t.Run("Should return 429 when throttled", func(t *testing.T) {
		uc, _ := newUploadUC(t, &fakeLimiter{allowed: false, retryAfter: 42}, antivirus.NewNoOpScanner())

		_, err := uc.Upload(authedCtx("user1"), upload("cv.docx", docxBytes()))
		assert.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 429, appErr.Code)
	})

	t.Run("Should surface limiter backend failures as 500", func(t *testing.T) {
		uc, _ := newUploadUC(t, &fakeLimiter{err: errors.New("redis down")}, antivirus.NewNoOpScanner())

		_, err := uc.Upload(authedCtx("user1"), upload("cv.docx", docxBytes()))
		assert.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 500, appErr.Code)
	})
}

func TestResumeUploadScanner(t *testing.T) {
	uc, dir := newUploadUC(t, &fakeLimiter{allowed: true}, &fakeScanner{infected: true})

	_, err := uc.Upload(authedCtx("user1"), upload("cv.docx", docxBytes()))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "File rejected by malware scan")

	// Nothing may be written for a rejected file
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

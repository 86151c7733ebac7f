package security

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResumeExtension(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.PDF", "cv.doc", "cv.docx", "my cv.DocX"} {
		assert.NoError(t, ValidateResumeExtension(name), name)
	}
	for _, name := range []string{"cv.exe", "cv.pdf.exe", "cv", "cv.txt", ""} {
		assert.Error(t, ValidateResumeExtension(name), name)
	}
}

func TestValidateResumeContent(t *testing.T) {
	t.Run("PDF magic bytes accepted", func(t *testing.T) {
		result := ValidateResume("cv.pdf", []byte("%PDF-1.7 rest of file"))
		assert.True(t, result.Valid)
		assert.Equal(t, ".pdf", result.Extension)
	})

	t.Run("DOCX zip header accepted", func(t *testing.T) {
		content := append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0}, 32)...)
		result := ValidateResume("cv.docx", content)
		assert.True(t, result.Valid)
	})

	t.Run("Extension spoofing rejected", func(t *testing.T) {
		result := ValidateResume("cv.pdf", []byte("MZ executable content"))
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("Empty file rejected", func(t *testing.T) {
		result := ValidateResume("cv.pdf", nil)
		assert.False(t, result.Valid)
	})
}

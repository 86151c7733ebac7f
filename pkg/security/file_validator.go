package security

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// MaxResumeSize is the upload size ceiling (5 MiB).
const MaxResumeSize = 5 << 20

// ResumeValidationResult contains the result of resume file validation
type ResumeValidationResult struct {
	Valid     bool   // Whether the file passed all validation checks
	Extension string // Detected file extension
	Error     string // Error message if validation failed
}

// Magic byte signatures for the allowed resume types
var resumeMagicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                 // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},         // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                 // ZIP (PK..)
}

// Allowed resume extensions (strict whitelist)
var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ValidateResume performs two-layer resume validation:
// 1. Extension whitelist check (case-insensitive)
// 2. Magic byte verification (content matches extension)
func ValidateResume(filename string, data []byte) ResumeValidationResult {
	result := ResumeValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if !allowedResumeExtensions[ext] {
		result.Error = "Only PDF, DOC, and DOCX files are allowed"
		return result
	}

	// Layer 2: Magic byte validation
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	result.Valid = true
	return result
}

// ValidateResumeExtension checks only the extension (cheap pre-check before
// the request body is read)
func ValidateResumeExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedResumeExtensions[ext] {
		return errors.New("Only PDF, DOC, and DOCX files are allowed")
	}
	return nil
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}

	signatures, ok := resumeMagicBytes[ext]
	if !ok {
		return false
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

package usecase

import (
	"bytes"
	"context"
	"io"

	"recroot-backend/internal/domain"
	"recroot-backend/pkg/apperror"
	"recroot-backend/pkg/logger"
	"recroot-backend/pkg/security"
	"recroot-backend/pkg/security/antivirus"
	"recroot-backend/pkg/storage"
)

// UploadLimiter throttles resume uploads per IP and per user.
type UploadLimiter interface {
	AllowUpload(ctx context.Context, ip, userID string) (bool, int, error)
}

type resumeUploadUsecase struct {
	store   storage.ResumeStore
	limiter UploadLimiter
	scanner antivirus.Scanner
}

func NewResumeUploadUsecase(store storage.ResumeStore, limiter UploadLimiter, scanner antivirus.Scanner) domain.ResumeUploadUsecase {
	return &resumeUploadUsecase{
		store:   store,
		limiter: limiter,
		scanner: scanner,
	}
}

// Upload validates and persists a single resume file. The stored file is
// not linked to any Candidate record; callers issue a separate update with
// the returned path if they want the association.
func (u *resumeUploadUsecase) Upload(ctx context.Context, upload *domain.ResumeUpload) (*domain.ResumeFile, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}

	if upload == nil || upload.FileName == "" {
		return nil, apperror.BadRequest("Please upload a file")
	}

	// Cheap checks before reading the body
	if err := security.ValidateResumeExtension(upload.FileName); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if upload.Size > security.MaxResumeSize {
		return nil, apperror.BadRequest("File too large (max 5 MB)")
	}

	allowed, retryAfter, err := u.limiter.AllowUpload(ctx, upload.ClientIP, upload.UploadedBy)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !allowed {
		logger.Log.Warn("upload rate limited",
			"ip", upload.ClientIP, "user", upload.UploadedBy, "retry_after", retryAfter)
		return nil, apperror.TooManyRequests("Too many uploads, please try again later")
	}

	// LimitReader guards against clients that lie about Content-Length
	data, err := io.ReadAll(io.LimitReader(upload.Content, security.MaxResumeSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > security.MaxResumeSize {
		return nil, apperror.BadRequest("File too large (max 5 MB)")
	}

	if result := security.ValidateResume(upload.FileName, data); !result.Valid {
		return nil, apperror.BadRequest(result.Error)
	}

	if scan := u.scanner.Scan(ctx, upload.FileName, bytes.NewReader(data)); scan.Infected {
		logger.Log.Warn("resume upload rejected by scanner",
			"scanner", scan.ScannerName, "threat", scan.ThreatName, "error", scan.Error)
		return nil, apperror.BadRequest("File rejected by malware scan")
	}

	fileName, filePath, err := u.store.Save(ctx, upload.FileName, data)
	if err != nil {
		return nil, err
	}

	return &domain.ResumeFile{
		FileName: fileName,
		FilePath: filePath,
	}, nil
}

package usecase

import (
	"context"
	"errors"

	"recroot-backend/internal/domain"
	"recroot-backend/pkg/apperror"
	"recroot-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type candidateUsecase struct {
	repo     domain.CandidateRepository
	validate *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		validate: validate,
	}
}

// callerID reads the authenticated user from context. Handlers never pass
// identity explicitly; ownership is always derived from the request.
func callerID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || id == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return id, nil
}

func (u *candidateUsecase) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	// Owner and id are always assigned server-side, never trusted from the body
	c.ID = uuid.NewString()
	c.CreatedBy = caller

	if c.Status == "" {
		c.Status = domain.StatusNew
	}
	if c.Source == "" {
		c.Source = domain.SourceOther
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}

	if err := u.validate.Struct(c); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	if err := u.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.BadRequest("Duplicate field value entered")
		}
		return nil, err
	}
	return c, nil
}

func (u *candidateUsecase) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("No candidate found with id " + id)
		}
		return nil, err
	}

	// Deliberately distinct from not-found: the id exists but belongs to
	// someone else
	if c.CreatedBy != caller {
		return nil, apperror.Unauthorized("Not authorized to access this candidate")
	}
	return c, nil
}

func (u *candidateUsecase) Update(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if c.CreatedBy != caller {
		return nil, apperror.Unauthorized("Not authorized to update this candidate")
	}

	if c.Status == "" {
		c.Status = domain.StatusNew
	}
	if c.Source == "" {
		c.Source = domain.SourceOther
	}
	// A null skills body clears the list; the column rejects NULL
	if c.Skills == nil {
		c.Skills = []string{}
	}

	// Partial updates are merged over the stored record by the handler, so
	// the full invariant set is re-checked here exactly as on create
	if err := u.validate.Struct(c); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	if err := u.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("No candidate found with id " + c.ID)
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.BadRequest("Duplicate field value entered")
		}
		return nil, err
	}
	return c, nil
}

func (u *candidateUsecase) Delete(ctx context.Context, id string) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("No candidate found with id " + id)
		}
		return err
	}
	if c.CreatedBy != caller {
		return apperror.Unauthorized("Not authorized to delete this candidate")
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("No candidate found with id " + id)
		}
		return err
	}
	return nil
}

func (u *candidateUsecase) List(ctx context.Context, page, limit int) ([]domain.Candidate, int64, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, 0, err
	}

	page, limit = normalizePagination(page, limit)
	return u.repo.Fetch(ctx, caller, limit, (page-1)*limit)
}

func (u *candidateUsecase) Search(ctx context.Context, filter domain.CandidateFilter, page, limit int) ([]domain.Candidate, int64, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, 0, err
	}

	page, limit = normalizePagination(page, limit)
	return u.repo.Search(ctx, caller, filter, limit, (page-1)*limit)
}

// normalizePagination falls back to page=1, limit=10 for missing or
// nonsensical values instead of rejecting them; existing clients rely on
// the permissive behavior.
func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

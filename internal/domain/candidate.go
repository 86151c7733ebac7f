package domain

import (
	"context"
	"io"
	"time"
)

// Candidate pipeline statuses
const (
	StatusNew          = "new"
	StatusContacted    = "contacted"
	StatusInterviewing = "interviewing"
	StatusOffered      = "offered"
	StatusHired        = "hired"
	StatusRejected     = "rejected"
)

// Candidate sourcing channels
const (
	SourceLinkedIn = "linkedin"
	SourceIndeed   = "indeed"
	SourceReferral = "referral"
	SourceDirect   = "direct"
	SourceOther    = "other"
)

// EducationEntry is one item of a candidate's education history.
type EducationEntry struct {
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
}

// ExperienceEntry is one item of a candidate's work history.
type ExperienceEntry struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
}

// Candidate is a single applicant profile, always owned by exactly one
// user (CreatedBy). JSON field names follow the frontend contract.
type Candidate struct {
	ID              string            `json:"id"`
	FirstName       string            `json:"firstName" validate:"required"`
	LastName        string            `json:"lastName" validate:"required"`
	Email           string            `json:"email" validate:"required,email"`
	Phone           string            `json:"phone,omitempty"`
	Location        string            `json:"location,omitempty"`
	CurrentPosition string            `json:"currentPosition,omitempty"`
	CurrentCompany  string            `json:"currentCompany,omitempty"`
	Skills          []string          `json:"skills"`
	ExperienceYears *int              `json:"experienceYears,omitempty" validate:"omitempty,min=0"`
	ResumeURL       string            `json:"resumeUrl,omitempty"`
	LinkedInProfile string            `json:"linkedInProfile,omitempty" validate:"omitempty,url"`
	GithubProfile   string            `json:"githubProfile,omitempty" validate:"omitempty,url"`
	Portfolio       string            `json:"portfolio,omitempty" validate:"omitempty,url"`
	Education       []EducationEntry  `json:"education"`
	Experience      []ExperienceEntry `json:"experience"`
	Notes           string            `json:"notes,omitempty"`
	Status          string            `json:"status" validate:"omitempty,oneof=new contacted interviewing offered hired rejected"`
	Source          string            `json:"source" validate:"omitempty,oneof=linkedin indeed referral direct other"`
	CreatedBy       string            `json:"createdBy"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// CandidateFilter carries the optional search parameters. The zero value of
// each field means "not set": no predicate is added for it.
type CandidateFilter struct {
	Query         string   // free-text match against the search vector
	Skills        []string // record must have at least one of these skills
	Location      string   // case-insensitive substring match
	MinExperience *int     // experience_years >= n; unset years never match
	Status        string   // exact match
	Source        string   // exact match
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id string) error
	Fetch(ctx context.Context, ownerID string, limit, offset int) ([]Candidate, int64, error)
	Search(ctx context.Context, ownerID string, filter CandidateFilter, limit, offset int) ([]Candidate, int64, error)
}

type CandidateUsecase interface {
	Create(ctx context.Context, c *Candidate) (*Candidate, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) (*Candidate, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, limit int) ([]Candidate, int64, error)
	Search(ctx context.Context, filter CandidateFilter, page, limit int) ([]Candidate, int64, error)
}

// ResumeUpload is a pending resume file received from a client.
type ResumeUpload struct {
	FileName   string
	Size       int64
	Content    io.Reader
	ClientIP   string
	UploadedBy string
}

// ResumeFile is the stored result returned to the client. The upload is not
// associated with any Candidate; callers set resumeUrl via a later update.
type ResumeFile struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

type ResumeUploadUsecase interface {
	Upload(ctx context.Context, upload *ResumeUpload) (*ResumeFile, error)
}

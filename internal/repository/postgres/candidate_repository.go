package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"recroot-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const candidateColumns = `id, first_name, last_name, email, phone, location,
	current_position, current_company, skills, experience_years, resume_url,
	linkedin_profile, github_profile, portfolio, education, experience, notes,
	status, source, created_by, created_at, updated_at`

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, first_name, last_name, email, phone, location,
			current_position, current_company, skills, experience_years,
			resume_url, linkedin_profile, github_profile, portfolio,
			education, experience, notes, status, source, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at, updated_at`

	eduJSON, expJSON, err := marshalHistories(c)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Location,
		c.CurrentPosition, c.CurrentCompany, pq.Array(c.Skills), c.ExperienceYears,
		c.ResumeURL, c.LinkedInProfile, c.GithubProfile, c.Portfolio,
		eduJSON, expJSON, c.Notes, c.Status, c.Source, c.CreatedBy,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return translateError(err)
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1`, candidateColumns)
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
		UPDATE candidates SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			location = $6, current_position = $7, current_company = $8,
			skills = $9, experience_years = $10, resume_url = $11,
			linkedin_profile = $12, github_profile = $13, portfolio = $14,
			education = $15, experience = $16, notes = $17,
			status = $18, source = $19, updated_at = now()
		WHERE id = $1`

	eduJSON, expJSON, err := marshalHistories(c)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Location, c.CurrentPosition, c.CurrentCompany,
		pq.Array(c.Skills), c.ExperienceYears, c.ResumeURL,
		c.LinkedInProfile, c.GithubProfile, c.Portfolio,
		eduJSON, expJSON, c.Notes, c.Status, c.Source,
	)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepository) Fetch(ctx context.Context, ownerID string, limit, offset int) ([]domain.Candidate, int64, error) {
	return r.Search(ctx, ownerID, domain.CandidateFilter{}, limit, offset)
}

func (r *candidateRepository) Search(ctx context.Context, ownerID string, filter domain.CandidateFilter, limit, offset int) ([]domain.Candidate, int64, error) {
	where, args := buildCandidateWhere(ownerID, filter)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM candidates WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// created_at DESC with an id tiebreak keeps pages stable when two
	// records share a timestamp
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		candidateColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}

// buildCandidateWhere maps each present filter field to exactly one
// predicate, ANDed together. The ownership predicate is always first; no
// filter combination can reach another owner's records.
func buildCandidateWhere(ownerID string, f domain.CandidateFilter) (string, []any) {
	conds := []string{"created_by = $1"}
	args := []any{ownerID}

	if f.Query != "" {
		args = append(args, f.Query)
		conds = append(conds, fmt.Sprintf("search_vector @@ plainto_tsquery('english', $%d)", len(args)))
	}
	if len(f.Skills) > 0 {
		// && is array overlap: at least one skill in common
		args = append(args, pq.Array(f.Skills))
		conds = append(conds, fmt.Sprintf("skills && $%d", len(args)))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if f.MinExperience != nil {
		// NULL experience_years never satisfies >=, so unset years are excluded
		args = append(args, *f.MinExperience)
		conds = append(conds, fmt.Sprintf("experience_years >= $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Source != "" {
		args = append(args, f.Source)
		conds = append(conds, fmt.Sprintf("source = $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var skills []string
	var eduJSON, expJSON []byte

	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Location,
		&c.CurrentPosition, &c.CurrentCompany, pq.Array(&skills), &c.ExperienceYears,
		&c.ResumeURL, &c.LinkedInProfile, &c.GithubProfile, &c.Portfolio,
		&eduJSON, &expJSON, &c.Notes, &c.Status, &c.Source,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Skills = skills
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if err := json.Unmarshal(eduJSON, &c.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	if err := json.Unmarshal(expJSON, &c.Experience); err != nil {
		return nil, fmt.Errorf("decode experience: %w", err)
	}
	if c.Education == nil {
		c.Education = []domain.EducationEntry{}
	}
	if c.Experience == nil {
		c.Experience = []domain.ExperienceEntry{}
	}

	return &c, nil
}

// marshalHistories encodes the education/experience sub-records as JSON
// text; a string parameter casts cleanly to jsonb, a []byte would be
// treated as bytea.
func marshalHistories(c *domain.Candidate) (string, string, error) {
	edu := c.Education
	if edu == nil {
		edu = []domain.EducationEntry{}
	}
	exp := c.Experience
	if exp == nil {
		exp = []domain.ExperienceEntry{}
	}

	eduJSON, err := json.Marshal(edu)
	if err != nil {
		return "", "", fmt.Errorf("encode education: %w", err)
	}
	expJSON, err := json.Marshal(exp)
	if err != nil {
		return "", "", fmt.Errorf("encode experience: %w", err)
	}
	return string(eduJSON), string(expJSON), nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicate
	}
	return err
}

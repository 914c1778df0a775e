// Package jobs persists job postings and derives the skill vocabulary used
// by the resume parser.
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a posting id does not exist.
var ErrNotFound = errors.New("job posting not found")

const schema = `
CREATE TABLE IF NOT EXISTS job_postings (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	job_title        TEXT NOT NULL,
	company_name     TEXT NOT NULL DEFAULT '',
	job_description  TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	experience_level TEXT NOT NULL DEFAULT '',
	skills_required  TEXT NOT NULL DEFAULT '',
	industry         TEXT NOT NULL DEFAULT '',
	employment_mode  TEXT NOT NULL DEFAULT '',
	salary_range     TEXT NOT NULL DEFAULT '',
	job_type         TEXT NOT NULL DEFAULT '',
	posted_date      TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const postingColumns = `id, job_title, company_name, job_description, location,
	experience_level, skills_required, industry, employment_mode,
	salary_range, job_type, posted_date, created_at`

// Store provides CRUD access to job postings.
type Store struct {
	db *sql.DB
}

// NewStore ensures the schema exists and returns the store.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create job_postings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// List returns all postings, newest first.
func (s *Store) List(ctx context.Context) (*Postings, error) {
	query := fmt.Sprintf("SELECT %s FROM job_postings ORDER BY created_at DESC, id DESC", postingColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	defer rows.Close()

	postings := &Postings{}
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings.Items = append(postings.Items, posting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}

	return postings, nil
}

// Get returns one posting or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*Posting, error) {
	query := fmt.Sprintf("SELECT %s FROM job_postings WHERE id = ?", postingColumns)

	posting, err := scanPosting(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job posting %d: %w", id, err)
	}

	return posting, nil
}

// Add inserts a posting and returns its assigned id.
func (s *Store) Add(ctx context.Context, p *Posting) (int64, error) {
	if strings.TrimSpace(p.Title) == "" {
		return 0, errors.New("job title is required")
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO job_postings (
			job_title, company_name, job_description, location,
			experience_level, skills_required, industry, employment_mode,
			salary_range, job_type, posted_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Company, p.Description, p.Location,
		p.ExperienceLevel, p.SkillsRequired, p.Industry, p.EmploymentMode,
		p.SalaryRange, p.JobType, p.PostedDate, p.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("add job posting: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add job posting: %w", err)
	}

	p.ID = id
	return id, nil
}

// Update replaces the mutable fields of an existing posting.
func (s *Store) Update(ctx context.Context, id int64, p *Posting) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE job_postings SET
			job_title = ?, company_name = ?, job_description = ?, location = ?,
			experience_level = ?, skills_required = ?, industry = ?, employment_mode = ?,
			salary_range = ?, job_type = ?, posted_date = ?
		WHERE id = ?`,
		p.Title, p.Company, p.Description, p.Location,
		p.ExperienceLevel, p.SkillsRequired, p.Industry, p.EmploymentMode,
		p.SalaryRange, p.JobType, p.PostedDate, id,
	)
	if err != nil {
		return fmt.Errorf("update job posting %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job posting %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a posting.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM job_postings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete job posting %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job posting %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Vocabulary unions the skills of every posting with the built-in common
// skills list. The result is lower-cased and deduplicated; order is not
// defined.
func (s *Store) Vocabulary(ctx context.Context) ([]string, error) {
	postings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(CommonSkills))
	vocab := make([]string, 0, len(CommonSkills))

	add := func(skill string) {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			return
		}
		if _, ok := seen[skill]; ok {
			return
		}
		seen[skill] = struct{}{}
		vocab = append(vocab, skill)
	}

	for _, skill := range CommonSkills {
		add(skill)
	}
	for _, posting := range postings.Items {
		for _, skill := range posting.RequiredSkills() {
			add(skill)
		}
	}

	return vocab, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (*Posting, error) {
	var p Posting
	err := row.Scan(
		&p.ID, &p.Title, &p.Company, &p.Description, &p.Location,
		&p.ExperienceLevel, &p.SkillsRequired, &p.Industry, &p.EmploymentMode,
		&p.SalaryRange, &p.JobType, &p.PostedDate, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

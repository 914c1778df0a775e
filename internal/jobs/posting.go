package jobs

import (
	"strings"
	"time"
)

// Posting is one stored job posting.
type Posting struct {
	ID              int64     `json:"id"`
	Title           string    `json:"job_title"`
	Company         string    `json:"company_name"`
	Description     string    `json:"job_description"`
	Location        string    `json:"location"`
	ExperienceLevel string    `json:"experience_level"`
	SkillsRequired  string    `json:"skills_required"`
	Industry        string    `json:"industry"`
	EmploymentMode  string    `json:"employment_mode"`
	SalaryRange     string    `json:"salary_range"`
	JobType         string    `json:"job_type"`
	PostedDate      string    `json:"posted_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// RequiredSkills parses the comma-separated skills field into a trimmed,
// lower-cased, deduplicated list.
func (p *Posting) RequiredSkills() []string {
	seen := make(map[string]struct{})
	skills := make([]string, 0)

	for _, part := range strings.Split(p.SkillsRequired, ",") {
		skill := strings.ToLower(strings.TrimSpace(part))
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}

	return skills
}

// Postings wraps a posting list with the lookup helpers the CLI needs.
type Postings struct {
	Items []*Posting
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id int64) *Posting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

// Titles returns a "Title | Company" label per posting, for prompts.
func (p *Postings) Titles() []string {
	titles := make([]string, 0, len(p.Items))
	for _, posting := range p.Items {
		label := posting.Title
		if posting.Company != "" {
			label += " | " + posting.Company
		}
		titles = append(titles, label)
	}
	return titles
}

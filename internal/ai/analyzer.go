package ai

import "context"

// JobDetails carries the posting fields forwarded to the analysis prompt.
type JobDetails struct {
	Title           string
	Company         string
	Description     string
	Location        string
	ExperienceLevel string
	SkillsRequired  string
	Industry        string
	EmploymentMode  string
}

// Analysis is a provider-neutral resume evaluation. Missing response keys
// are left at their zero values by the provider implementations.
type Analysis struct {
	MatchScore         int      `mapstructure:"match_score"`
	SkillMatch         int      `mapstructure:"skill_match_score"`
	ExperienceMatch    int      `mapstructure:"experience_match_score"`
	MatchedSkills      []string `mapstructure:"matched_skills"`
	MissingSkills      []string `mapstructure:"missing_skills_from_resume"`
	Suggestions        string   `mapstructure:"suggestions_for_candidate"`
	SuitabilitySummary string   `mapstructure:"suitability_summary"`
	Raw                string   `mapstructure:"-"`
}

type Analyzer interface {
	Analyze(ctx context.Context, resumeText string, job *JobDetails) (*Analysis, error)
}

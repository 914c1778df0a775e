package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/hrtools/hrscan/internal/ai"
	"github.com/hrtools/hrscan/internal/logger"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Analyzer evaluates a resume against a job posting with Gemini.
type Analyzer struct {
	generator contentGenerator
	maxLogLen int
	logger    *zap.Logger
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// responseKeyAliases maps the secondary key names the model sometimes emits
// to the canonical response keys.
var responseKeyAliases = map[string]string{
	"skill_match":       "skill_match_score",
	"experience_match":  "experience_match_score",
	"missing_skills":    "missing_skills_from_resume",
	"suggestions":       "suggestions_for_candidate",
	"candidate_summary": "suitability_summary",
}

func NewAnalyzer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{
		generator: generator,
		maxLogLen: maxLogLength,
		logger:    log,
	}
}

// Analyze builds the evaluation prompt, sends it to Gemini, and parses the
// JSON response. Missing keys default; an error indicator in the response is
// returned as an error so the caller can fall back.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string, job *ai.JobDetails) (*ai.Analysis, error) {
	if job == nil {
		return nil, fmt.Errorf("job details are required")
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is required")
	}

	prompt := buildPrompt(resumeText, job)

	a.logger.Debug("gemini analyze request",
		zap.String("job_title", job.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini analyze response",
		zap.String("job_title", job.Title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	analysis, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	analysis.Raw = raw
	return analysis, nil
}

func buildPrompt(resumeText string, job *ai.JobDetails) string {
	details := fmt.Sprintf(
		"Job Title: %s\nCompany: %s\nFull Job Description: %s\nLocation: %s\nExperience Level Required: %s\nSkills Required: %s\nIndustry: %s\nEmployment Mode: %s",
		orNA(job.Title), orNA(job.Company), orNA(job.Description), orNA(job.Location),
		orNA(job.ExperienceLevel), orNA(job.SkillsRequired), orNA(job.Industry), orNA(job.EmploymentMode),
	)

	prompt := strings.ReplaceAll(promptTemplate, "{{JOB_DETAILS}}", details)
	return strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func parseResponse(raw string) (*ai.Analysis, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if msg, ok := data["error"]; ok {
		return nil, fmt.Errorf("gemini analysis error: %v", msg)
	}

	for alias, canonical := range responseKeyAliases {
		if _, ok := data[canonical]; ok {
			continue
		}
		if value, ok := data[alias]; ok {
			data[canonical] = value
		}
	}

	var analysis ai.Analysis
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &analysis,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build response decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	return &analysis, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// The model occasionally wraps the object in prose.
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		raw = raw[first : last+1]
	}

	return raw
}

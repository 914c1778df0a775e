package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hrtools/hrscan/internal/ai"

	"go.uber.org/zap"
)

// ModelChoice selects the scoring strategy used by the dispatcher.
type ModelChoice string

const (
	ModelGeminiPro         ModelChoice = "Gemini Pro"
	ModelLSTMCustom        ModelChoice = "LSTM Model"
	ModelTransformerCustom ModelChoice = "Transformer Model"
	ModelRuleBased         ModelChoice = "Rule-Based Fallback"
)

// ModelChoices lists every supported strategy in display order.
func ModelChoices() []ModelChoice {
	return []ModelChoice{ModelGeminiPro, ModelLSTMCustom, ModelTransformerCustom, ModelRuleBased}
}

// ParseModelChoice resolves a user-supplied model name. Unknown names map to
// the rule-based strategy, keeping Match a total function.
func ParseModelChoice(s string) ModelChoice {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, choice := range ModelChoices() {
		if strings.ToLower(string(choice)) == normalized {
			return choice
		}
	}
	return ModelRuleBased
}

// ResumeInput carries the extracted resume fields the scorer needs.
type ResumeInput struct {
	RawText         string
	Skills          []string
	YearsExperience int
}

// JobInput carries the job-posting fields the scorer and the AI analyzer need.
type JobInput struct {
	Title           string
	Company         string
	Description     string
	Location        string
	ExperienceLevel string
	SkillsRequired  string
	Industry        string
	EmploymentMode  string
}

// RequiredSkills parses the comma-separated skills field into a trimmed,
// lower-cased list.
func (j *JobInput) RequiredSkills() []string {
	parts := strings.Split(j.SkillsRequired, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skill := strings.ToLower(strings.TrimSpace(part))
		if skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// Predictor produces an overall match score in [0,100] from raw texts.
type Predictor interface {
	Predict(ctx context.Context, resumeText, jobDescription string) (float64, error)
}

// Dispatcher routes a match request to the selected strategy and guarantees
// a usable result: every failure path terminates in the rule-based scorer.
type Dispatcher struct {
	analyzer    ai.Analyzer
	lstm        Predictor
	transformer Predictor
	logger      *zap.Logger
}

// NewDispatcher wires the dispatcher once at process start. Any collaborator
// may be nil; the corresponding strategy then falls back to rule-based.
func NewDispatcher(analyzer ai.Analyzer, lstm, transformer Predictor, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		analyzer:    analyzer,
		lstm:        lstm,
		transformer: transformer,
		logger:      logger,
	}
}

// Match scores the resume against the job using the requested model. It never
// returns an error: failures are logged and resolved by the rule-based path.
func (d *Dispatcher) Match(ctx context.Context, resume *ResumeInput, job *JobInput, choice ModelChoice) *Result {
	lowered := loweredSkills(resume.Skills)
	ruleBased := func() *Result {
		return Score(lowered, job.RequiredSkills(), resume.YearsExperience, job.ExperienceLevel)
	}

	switch choice {
	case ModelGeminiPro:
		return d.withFallback(choice, func() (*Result, error) {
			return d.analyzeWithAI(ctx, resume, job)
		}, ruleBased)
	case ModelLSTMCustom:
		return d.withFallback(choice, func() (*Result, error) {
			return d.overlayPredictor(ctx, d.lstm, choice, resume, job, ruleBased)
		}, ruleBased)
	case ModelTransformerCustom:
		return d.withFallback(choice, func() (*Result, error) {
			return d.overlayPredictor(ctx, d.transformer, choice, resume, job, ruleBased)
		}, ruleBased)
	case ModelRuleBased:
		return ruleBased()
	default:
		d.logger.Warn("unrecognized model choice, using rule-based fallback",
			zap.String("model_choice", string(choice)),
		)
		return ruleBased()
	}
}

type strategy func() (*Result, error)

// withFallback is the combinator applied uniformly to the non-rule-based
// strategies: any error or nil result resolves to the rule-based scorer.
func (d *Dispatcher) withFallback(choice ModelChoice, fn strategy, fallback func() *Result) *Result {
	result, err := fn()
	if err != nil || result == nil {
		d.logger.Warn("strategy failed, using rule-based fallback",
			zap.String("model_choice", string(choice)),
			zap.Error(err),
		)
		return fallback()
	}
	return result
}

func (d *Dispatcher) analyzeWithAI(ctx context.Context, resume *ResumeInput, job *JobInput) (*Result, error) {
	if d.analyzer == nil {
		return nil, errors.New("ai analyzer is not configured")
	}

	analysis, err := d.analyzer.Analyze(ctx, resume.RawText, &ai.JobDetails{
		Title:           job.Title,
		Company:         job.Company,
		Description:     job.Description,
		Location:        job.Location,
		ExperienceLevel: job.ExperienceLevel,
		SkillsRequired:  job.SkillsRequired,
		Industry:        job.Industry,
		EmploymentMode:  job.EmploymentMode,
	})
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, errors.New("ai analyzer returned no analysis")
	}

	suggestions := analysis.Suggestions
	if suggestions == "" {
		suggestions = "Review job requirements for better alignment."
	}

	return &Result{
		MatchScore:         clamp(analysis.MatchScore, 0, 100),
		SkillMatch:         clamp(analysis.SkillMatch, 0, 100),
		ExperienceMatch:    clamp(analysis.ExperienceMatch, 0, 100),
		MatchedSkills:      analysis.MatchedSkills,
		MissingSkills:      analysis.MissingSkills,
		Suggestions:        suggestions,
		SuitabilitySummary: analysis.SuitabilitySummary,
		Model:              string(ModelGeminiPro),
	}, nil
}

// overlayPredictor runs a numeric predictor and overlays only the overall
// score on a rule-based result; skill and experience breakdowns stay
// rule-based.
func (d *Dispatcher) overlayPredictor(ctx context.Context, p Predictor, choice ModelChoice, resume *ResumeInput, job *JobInput, ruleBased func() *Result) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("%s predictor is not configured", choice)
	}

	score, err := p.Predict(ctx, resume.RawText, job.Description)
	if err != nil {
		return nil, err
	}

	result := ruleBased()
	result.MatchScore = clamp(round(score), 0, 100)
	result.Suggestions = fmt.Sprintf("Overall score provided by %s; detailed skill and experience match is rule-based.", choice)
	result.Model = string(choice)
	return result, nil
}

func loweredSkills(skills []string) []string {
	lowered := make([]string, 0, len(skills))
	for _, skill := range skills {
		lowered = append(lowered, strings.ToLower(skill))
	}
	return lowered
}

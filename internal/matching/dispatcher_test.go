package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hrtools/hrscan/internal/ai"

	"go.uber.org/zap"
)

type stubAnalyzer struct {
	analysis *ai.Analysis
	err      error
	calls    int
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string, _ *ai.JobDetails) (*ai.Analysis, error) {
	s.calls++
	return s.analysis, s.err
}

type stubPredictor struct {
	score float64
	err   error
}

func (s *stubPredictor) Predict(_ context.Context, _, _ string) (float64, error) {
	return s.score, s.err
}

func testInputs() (*ResumeInput, *JobInput) {
	resume := &ResumeInput{
		RawText:         "Python developer with 3 years of experience",
		Skills:          []string{"Python", "SQL"},
		YearsExperience: 3,
	}
	job := &JobInput{
		Title:           "Data Engineer",
		Description:     "Build pipelines",
		ExperienceLevel: "Mid-level",
		SkillsRequired:  "Python, SQL, AWS",
	}
	return resume, job
}

func TestMatchGeminiSuccess(t *testing.T) {
	stub := &stubAnalyzer{analysis: &ai.Analysis{
		MatchScore:      88,
		SkillMatch:      90,
		ExperienceMatch: 80,
		MatchedSkills:   []string{"python"},
		Suggestions:     "Learn AWS.",
	}}
	d := NewDispatcher(stub, nil, nil, zap.NewNop())

	resume, job := testInputs()
	result := d.Match(context.Background(), resume, job, ModelGeminiPro)

	if result.Model != string(ModelGeminiPro) {
		t.Fatalf("expected gemini model, got %s", result.Model)
	}
	if result.MatchScore != 88 {
		t.Fatalf("expected match score 88, got %d", result.MatchScore)
	}
	if result.Suggestions != "Learn AWS." {
		t.Fatalf("unexpected suggestions: %s", result.Suggestions)
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 analyzer call, got %d", stub.calls)
	}
}

func TestMatchGeminiFailureFallsBack(t *testing.T) {
	stub := &stubAnalyzer{err: errors.New("quota exceeded")}
	d := NewDispatcher(stub, nil, nil, zap.NewNop())

	resume, job := testInputs()
	result := d.Match(context.Background(), resume, job, ModelGeminiPro)

	if result.Model != string(ModelRuleBased) {
		t.Fatalf("expected rule-based fallback, got %s", result.Model)
	}
	if result.MatchScore != 77 {
		t.Fatalf("expected rule-based score 77, got %d", result.MatchScore)
	}
}

func TestMatchGeminiUnconfiguredFallsBack(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, zap.NewNop())

	resume, job := testInputs()
	result := d.Match(context.Background(), resume, job, ModelGeminiPro)

	if result.Model != string(ModelRuleBased) {
		t.Fatalf("expected rule-based fallback, got %s", result.Model)
	}
}

func TestMatchPredictorOverlaysScoreOnly(t *testing.T) {
	d := NewDispatcher(nil, &stubPredictor{score: 55}, nil, zap.NewNop())

	resume, job := testInputs()
	result := d.Match(context.Background(), resume, job, ModelLSTMCustom)

	if result.Model != string(ModelLSTMCustom) {
		t.Fatalf("expected lstm model, got %s", result.Model)
	}
	if result.MatchScore != 55 {
		t.Fatalf("expected overall score 55, got %d", result.MatchScore)
	}
	// The breakdown stays rule-based.
	if result.SkillMatch != 67 {
		t.Fatalf("expected rule-based skill match 67, got %d", result.SkillMatch)
	}
	if result.ExperienceMatch != 100 {
		t.Fatalf("expected rule-based experience match 100, got %d", result.ExperienceMatch)
	}
	if !strings.Contains(result.Suggestions, string(ModelLSTMCustom)) {
		t.Fatalf("expected suggestions to name the model, got %s", result.Suggestions)
	}
}

func TestMatchPredictorFailureFallsBack(t *testing.T) {
	d := NewDispatcher(nil, nil, &stubPredictor{err: errors.New("model not loaded")}, zap.NewNop())

	resume, job := testInputs()
	result := d.Match(context.Background(), resume, job, ModelTransformerCustom)

	if result.Model != string(ModelRuleBased) {
		t.Fatalf("expected rule-based fallback, got %s", result.Model)
	}
}

func TestMatchNeverReturnsNil(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, zap.NewNop())
	resume, job := testInputs()

	for _, choice := range append(ModelChoices(), ModelChoice("unknown")) {
		result := d.Match(context.Background(), resume, job, choice)
		if result == nil {
			t.Fatalf("Match returned nil for %q", choice)
		}
		if result.MatchScore < 0 || result.MatchScore > 100 {
			t.Fatalf("score out of range for %q: %d", choice, result.MatchScore)
		}
	}
}

func TestParseModelChoice(t *testing.T) {
	cases := []struct {
		input    string
		expected ModelChoice
	}{
		{"Gemini Pro", ModelGeminiPro},
		{"gemini pro", ModelGeminiPro},
		{" LSTM Model ", ModelLSTMCustom},
		{"Transformer Model", ModelTransformerCustom},
		{"Rule-Based Fallback", ModelRuleBased},
		{"", ModelRuleBased},
		{"something else", ModelRuleBased},
	}

	for _, tc := range cases {
		if got := ParseModelChoice(tc.input); got != tc.expected {
			t.Fatalf("ParseModelChoice(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestTokenOverlapPredictor(t *testing.T) {
	p := &TokenOverlapPredictor{Name: "lstm"}

	score, err := p.Predict(context.Background(), "go sql kafka", "go and sql")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "go" and "sql" of {"go","and","sql"} overlap.
	expected := 2.0 / 3.0 * 100
	if score != expected {
		t.Fatalf("expected score %.2f, got %.2f", expected, score)
	}

	empty, err := p.Predict(context.Background(), "anything", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty != 0 {
		t.Fatalf("expected 0 for empty job description, got %.2f", empty)
	}
}

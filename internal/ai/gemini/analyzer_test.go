package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hrtools/hrscan/internal/ai"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func testJob() *ai.JobDetails {
	return &ai.JobDetails{
		Title:           "Data Engineer",
		Company:         "Acme",
		Description:     "Build pipelines",
		ExperienceLevel: "Mid-level",
		SkillsRequired:  "Python, SQL",
	}
}

func TestAnalyzerParsesResponse(t *testing.T) {
	stub := &stubGenerator{response: `{
		"match_score": 82,
		"skill_match_score": 90,
		"experience_match_score": 70,
		"matched_skills": ["python", "sql"],
		"missing_skills_from_resume": ["aws"],
		"suggestions_for_candidate": "Learn AWS.",
		"suitability_summary": "Strong fit."
	}`}
	analyzer := NewAnalyzer(stub, 0, zap.NewNop())

	analysis, err := analyzer.Analyze(context.Background(), "Python developer resume", testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.MatchScore != 82 || analysis.SkillMatch != 90 || analysis.ExperienceMatch != 70 {
		t.Fatalf("unexpected scores: %+v", analysis)
	}
	if len(analysis.MatchedSkills) != 2 || analysis.MatchedSkills[0] != "python" {
		t.Fatalf("unexpected matched skills: %v", analysis.MatchedSkills)
	}
	if analysis.Suggestions != "Learn AWS." {
		t.Fatalf("unexpected suggestions: %s", analysis.Suggestions)
	}
	if analysis.Raw == "" {
		t.Fatalf("expected raw response to be kept")
	}

	if !strings.Contains(stub.lastPrompt, "Job Title: Data Engineer") {
		t.Fatalf("expected job details in prompt")
	}
	if !strings.Contains(stub.lastPrompt, "Python developer resume") {
		t.Fatalf("expected resume text in prompt")
	}
}

func TestAnalyzerResolvesAliasKeys(t *testing.T) {
	stub := &stubGenerator{response: `{
		"match_score": 60,
		"skill_match": 65,
		"experience_match": 50,
		"missing_skills": ["go"],
		"suggestions": "Practice Go."
	}`}
	analyzer := NewAnalyzer(stub, 0, zap.NewNop())

	analysis, err := analyzer.Analyze(context.Background(), "resume", testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.SkillMatch != 65 || analysis.ExperienceMatch != 50 {
		t.Fatalf("expected alias keys to resolve: %+v", analysis)
	}
	if len(analysis.MissingSkills) != 1 || analysis.MissingSkills[0] != "go" {
		t.Fatalf("unexpected missing skills: %v", analysis.MissingSkills)
	}
	if analysis.Suggestions != "Practice Go." {
		t.Fatalf("unexpected suggestions: %s", analysis.Suggestions)
	}
}

func TestAnalyzerFencedResponse(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"match_score\": 40}\n```"}
	analyzer := NewAnalyzer(stub, 0, zap.NewNop())

	analysis, err := analyzer.Analyze(context.Background(), "resume", testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.MatchScore != 40 {
		t.Fatalf("expected match score 40, got %d", analysis.MatchScore)
	}
}

func TestAnalyzerErrorKey(t *testing.T) {
	stub := &stubGenerator{response: `{"error": "quota exceeded"}`}
	analyzer := NewAnalyzer(stub, 0, zap.NewNop())

	if _, err := analyzer.Analyze(context.Background(), "resume", testJob()); err == nil {
		t.Fatalf("expected an error for the error key")
	}
}

func TestAnalyzerGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("network down")}
	analyzer := NewAnalyzer(stub, 0, zap.NewNop())

	if _, err := analyzer.Analyze(context.Background(), "resume", testJob()); err == nil {
		t.Fatalf("expected the generator error to propagate")
	}
}

func TestAnalyzerInputValidation(t *testing.T) {
	analyzer := NewAnalyzer(&stubGenerator{}, 0, zap.NewNop())

	if _, err := analyzer.Analyze(context.Background(), "  ", testJob()); err == nil {
		t.Fatalf("expected an error for empty resume text")
	}
	if _, err := analyzer.Analyze(context.Background(), "resume", nil); err == nil {
		t.Fatalf("expected an error for nil job details")
	}
}

func TestBuildPromptFillsMissingFields(t *testing.T) {
	prompt := buildPrompt("resume", &ai.JobDetails{Title: "Engineer"})

	if !strings.Contains(prompt, "Company: N/A") {
		t.Fatalf("expected N/A placeholder for the company")
	}
}

func TestExtractJSONFromProse(t *testing.T) {
	raw := "Here is the analysis you asked for: {\"match_score\": 12} Hope it helps."
	if got := extractJSON(raw); got != `{"match_score": 12}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

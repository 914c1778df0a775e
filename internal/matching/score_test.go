package matching

import (
	"reflect"
	"testing"
)

func TestScoreMidLevelPartialSkills(t *testing.T) {
	result := Score([]string{"python", "sql"}, []string{"python", "sql", "aws"}, 3, "Mid-level")

	if result.SkillMatch != 67 {
		t.Fatalf("expected skill match 67, got %d", result.SkillMatch)
	}
	if result.ExperienceMatch != 100 {
		t.Fatalf("expected experience match 100, got %d", result.ExperienceMatch)
	}
	if result.MatchScore != 77 {
		t.Fatalf("expected match score 77, got %d", result.MatchScore)
	}
	if !reflect.DeepEqual(result.MatchedSkills, []string{"python", "sql"}) {
		t.Fatalf("unexpected matched skills: %v", result.MatchedSkills)
	}
	if !reflect.DeepEqual(result.MissingSkills, []string{"aws"}) {
		t.Fatalf("unexpected missing skills: %v", result.MissingSkills)
	}
	if result.Model != string(ModelRuleBased) {
		t.Fatalf("unexpected model: %s", result.Model)
	}
}

func TestScoreNoJobSkills(t *testing.T) {
	result := Score([]string{"python"}, nil, 0, "")

	if result.SkillMatch != 0 {
		t.Fatalf("expected skill match 0, got %d", result.SkillMatch)
	}
	if result.ExperienceMatch != 100 {
		t.Fatalf("expected experience match 100 with zero threshold, got %d", result.ExperienceMatch)
	}
	if result.MatchScore != 30 {
		t.Fatalf("expected match score 30, got %d", result.MatchScore)
	}
}

func TestScoreNoExperienceAgainstSenior(t *testing.T) {
	result := Score(nil, []string{"go"}, 0, "Senior")

	if result.ExperienceMatch != 10 {
		t.Fatalf("expected experience match 10, got %d", result.ExperienceMatch)
	}
}

func TestScorePartialExperienceCredit(t *testing.T) {
	// 3 of 5 years: round(3/5 * 100 * 0.7) = 42.
	result := Score(nil, nil, 3, "Senior Engineer")

	if result.ExperienceMatch != 42 {
		t.Fatalf("expected experience match 42, got %d", result.ExperienceMatch)
	}
}

func TestScoreDeduplicatesSkills(t *testing.T) {
	result := Score([]string{"go", "go"}, []string{"go", "go", "sql"}, 1, "")

	if result.SkillMatch != 50 {
		t.Fatalf("expected skill match 50 after dedup, got %d", result.SkillMatch)
	}
}

func TestExperienceThreshold(t *testing.T) {
	cases := []struct {
		label    string
		expected int
	}{
		{"", 0},
		{"Entry level", 0},
		{"Mid-level", 2},
		{"Senior", 5},
		{"Mid-Senior", 5},
		{"senior / MID", 5},
	}

	for _, tc := range cases {
		if got := ExperienceThreshold(tc.label); got != tc.expected {
			t.Fatalf("threshold for %q: expected %d, got %d", tc.label, tc.expected, got)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	results := []*Result{
		Score(nil, nil, 0, ""),
		Score([]string{"a", "b"}, []string{"a", "b"}, 20, "senior"),
		Score(nil, []string{"a", "b", "c"}, 1, "senior"),
	}

	for _, r := range results {
		for name, v := range map[string]int{
			"match_score":      r.MatchScore,
			"skill_match":      r.SkillMatch,
			"experience_match": r.ExperienceMatch,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s out of range: %d", name, v)
			}
		}
	}
}

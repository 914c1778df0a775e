package matching

import (
	"math"
	"sort"
	"strings"
)

const (
	// Minimum years of experience implied by a job level label.
	midLevelYears    = 2
	seniorLevelYears = 5

	skillWeight      = 0.7
	experienceWeight = 0.3

	// Partial credit applied when the candidate has some, but not enough,
	// years of experience for the level.
	partialExperienceFactor = 0.7

	fallbackSuggestion = "Highlight transferable skills or gain experience in missing areas."
)

// Result is the outcome of scoring a resume against a job posting.
type Result struct {
	MatchScore         int      `json:"match_score"`
	SkillMatch         int      `json:"skill_match"`
	ExperienceMatch    int      `json:"experience_match"`
	MatchedSkills      []string `json:"matched_skills"`
	MissingSkills      []string `json:"missing_skills"`
	Suggestions        string   `json:"suggestions"`
	SuitabilitySummary string   `json:"suitability_summary,omitempty"`
	Model              string   `json:"model"`
}

// Score computes the rule-based match between a candidate and a job posting.
// Both skill slices must already be lower-cased; deduplication happens here.
func Score(resumeSkills, jobSkills []string, resumeYears int, jobLevel string) *Result {
	resumeSet := toSet(resumeSkills)
	jobSet := toSet(jobSkills)

	matched := make([]string, 0, len(jobSet))
	missing := make([]string, 0, len(jobSet))
	for skill := range jobSet {
		if _, ok := resumeSet[skill]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	skillPct := 0
	if len(jobSet) > 0 {
		skillPct = clamp(round(float64(len(matched))/float64(len(jobSet))*100), 0, 100)
	}

	expPct := experienceMatch(resumeYears, ExperienceThreshold(jobLevel))

	overall := clamp(round(skillWeight*float64(skillPct)+experienceWeight*float64(expPct)), 0, 100)

	return &Result{
		MatchScore:      overall,
		SkillMatch:      skillPct,
		ExperienceMatch: expPct,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Suggestions:     fallbackSuggestion,
		Model:           string(ModelRuleBased),
	}
}

// ExperienceThreshold maps a free-text job level label to a minimum number
// of years. Both substrings are checked unconditionally, so a label that
// contains "mid" and "senior" resolves to the senior threshold.
func ExperienceThreshold(jobLevel string) int {
	level := strings.ToLower(jobLevel)

	threshold := 0
	if strings.Contains(level, "mid") {
		threshold = midLevelYears
	}
	if strings.Contains(level, "senior") {
		threshold = seniorLevelYears
	}

	return threshold
}

func experienceMatch(resumeYears, threshold int) int {
	switch {
	case resumeYears >= threshold:
		// Also covers threshold == 0, since resumeYears is never negative.
		return 100
	case resumeYears > 0:
		partial := round(float64(resumeYears) / float64(threshold) * 100 * partialExperienceFactor)
		return clamp(partial, 0, 80)
	default:
		return 10
	}
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		set[skill] = struct{}{}
	}
	return set
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

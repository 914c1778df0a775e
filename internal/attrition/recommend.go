package attrition

import "strings"

const maxRecommendationLines = 8

var levelRecommendations = map[RiskLevel][]string{
	RiskHigh: {
		"URGENT: Schedule a one-on-one meeting within 48 hours",
		"Conduct a stay interview to understand concerns",
		"Review compensation and career growth opportunities",
		"Consider retention bonus or promotion discussion",
	},
	RiskMedium: {
		"ATTENTION: Schedule bi-weekly check-ins",
		"Discuss career development plans",
		"Monitor engagement levels closely",
		"Address any workplace concerns proactively",
	},
	RiskLow: {
		"MAINTAIN: Continue regular performance reviews",
		"Recognize good work and contributions",
		"Keep communication channels open",
		"Provide growth opportunities",
	},
}

// factorRecommendations appends one line per substring found in the joined
// factor text, in this order.
var factorRecommendations = []struct {
	substring string
	line      string
}{
	{"attendance", "Address attendance concerns - check for personal or health issues"},
	{"performance", "Provide additional training and mentorship"},
	{"leave", "Investigate reasons for high leave usage"},
	{"overtime", "Review workload distribution and work-life balance"},
	{"commute", "Explore remote work or flexible hours options"},
	{"promotion", "Discuss promotion timeline and career path"},
	{"compensation", "Review salary against market benchmarks"},
}

// Recommendations renders the advisory text for a risk evaluation. It is a
// pure function of the level and the already-derived factors so that the two
// outputs can never disagree about what triggered.
func Recommendations(level RiskLevel, factors []string) string {
	lines, ok := levelRecommendations[level]
	if !ok {
		lines = levelRecommendations[RiskLow]
	}

	recs := make([]string, 0, maxRecommendationLines)
	recs = append(recs, lines...)

	factorText := strings.ToLower(strings.Join(factors, " "))
	for _, fr := range factorRecommendations {
		if strings.Contains(factorText, fr.substring) {
			recs = append(recs, fr.line)
		}
	}

	if len(recs) > maxRecommendationLines {
		recs = recs[:maxRecommendationLines]
	}

	return strings.Join(recs, "\n")
}

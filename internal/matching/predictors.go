package matching

import (
	"context"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\b\w+\b`)

// TokenOverlapPredictor is a placeholder for the trained neural predictors.
// It scores the token overlap between the resume and the job description,
// which keeps the strategy deterministic until real models are plugged in.
type TokenOverlapPredictor struct {
	// Name distinguishes the two placeholder slots in logs.
	Name string
}

func (p *TokenOverlapPredictor) Predict(_ context.Context, resumeText, jobDescription string) (float64, error) {
	jobTokens := tokenize(jobDescription)
	if len(jobTokens) == 0 {
		return 0, nil
	}

	resumeTokens := tokenize(resumeText)
	matched := 0
	for token := range jobTokens {
		if _, ok := resumeTokens[token]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(jobTokens)) * 100, nil
}

func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		tokens[token] = struct{}{}
	}
	return tokens
}

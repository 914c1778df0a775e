package attrition

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Classifier is a trained attrition model. It returns the probability of the
// positive ("will attrite") class in [0,1].
type Classifier interface {
	PredictProbability(ctx context.Context, features map[string]any) (float64, error)
}

// Predictor evaluates attrition risk with the configured classifier when one
// is available and falls back to the rule scorer on any failure.
type Predictor struct {
	classifier Classifier
	rules      Ruleset
	logger     *zap.Logger
}

func NewPredictor(classifier Classifier, rules Ruleset, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Predictor{
		classifier: classifier,
		rules:      rules,
		logger:     logger,
	}
}

// Predict never returns an error: classifier failures resolve to the
// rule-based scorer.
func (p *Predictor) Predict(ctx context.Context, rec *Record) *Result {
	if p.classifier == nil {
		return Score(rec, p.rules)
	}

	prob, err := p.classifier.PredictProbability(ctx, Features(rec))
	if err != nil || prob < 0 || prob > 1 {
		p.logger.Warn("classifier prediction failed, using rule-based fallback",
			zap.Error(err),
			zap.Float64("probability", prob),
		)
		return Score(rec, p.rules)
	}

	score := prob * 100
	level := BucketRisk(score)
	factors := DescribeFactors(rec)

	return &Result{
		RiskScore:           score,
		RiskLevel:           level,
		ContributingFactors: factors,
		Recommendations:     Recommendations(level, factors),
		Model:               "classifier",
	}
}

// DescribeFactors lists descriptive risk indicators for a classifier-backed
// prediction. Thresholds are looser than the scoring rules because these
// strings explain the model output rather than drive the score.
func DescribeFactors(rec *Record) []string {
	factors := make([]string, 0, maxFactors)

	if rec.AttendanceRate < 85 {
		factors = append(factors, fmt.Sprintf("Below average attendance (%.1f%%)", rec.AttendanceRate))
	}
	if rec.LeaveDays > 15 {
		factors = append(factors, fmt.Sprintf("High leave usage (%d days/year)", rec.LeaveDays))
	}
	if rec.AvgPerformanceRating < 3.0 {
		factors = append(factors, fmt.Sprintf("Below average performance (%.1f/5)", rec.AvgPerformanceRating))
	}
	if rec.TenureMonths < 6 {
		factors = append(factors, "New employee - settling in period")
	} else if rec.TenureMonths > 60 {
		factors = append(factors, "Long tenure - may seek new challenges")
	}
	if rec.OvertimeFrequency > defaultOvertimeThreshold {
		factors = append(factors, fmt.Sprintf("Frequent overtime (%d times/3 months)", rec.OvertimeFrequency))
	}
	if rec.MonthlyIncome > 0 && rec.MonthlyIncome < defaultMarketMonthlyIncome {
		factors = append(factors, "Below average compensation")
	}

	if len(factors) == 0 {
		factors = append(factors, "Model-based prediction - multiple factors considered")
	}
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}

	return factors
}

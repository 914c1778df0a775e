package attrition

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubClassifier struct {
	prob float64
	err  error
}

func (s *stubClassifier) PredictProbability(_ context.Context, _ map[string]any) (float64, error) {
	return s.prob, s.err
}

func healthyRecord() *Record {
	return &Record{
		AttendanceRate:       92,
		LeaveDays:            5,
		AvgPerformanceRating: 4,
		TenureMonths:         24,
	}
}

func TestPredictWithoutClassifierUsesRules(t *testing.T) {
	p := NewPredictor(nil, Ruleset{}, zap.NewNop())

	result := p.Predict(context.Background(), healthyRecord())
	if result.Model != "rule-based" {
		t.Fatalf("expected rule-based model, got %s", result.Model)
	}
}

func TestPredictWithClassifier(t *testing.T) {
	p := NewPredictor(&stubClassifier{prob: 0.72}, Ruleset{}, zap.NewNop())

	result := p.Predict(context.Background(), healthyRecord())
	if result.Model != "classifier" {
		t.Fatalf("expected classifier model, got %s", result.Model)
	}
	if result.RiskScore != 72 {
		t.Fatalf("expected risk score 72, got %.1f", result.RiskScore)
	}
	if result.RiskLevel != RiskHigh {
		t.Fatalf("expected high risk, got %s", result.RiskLevel)
	}
	if len(result.ContributingFactors) == 0 {
		t.Fatalf("expected contributing factors")
	}
}

func TestPredictClassifierErrorFallsBack(t *testing.T) {
	p := NewPredictor(&stubClassifier{err: errors.New("model unavailable")}, Ruleset{}, zap.NewNop())

	result := p.Predict(context.Background(), healthyRecord())
	if result.Model != "rule-based" {
		t.Fatalf("expected rule-based fallback, got %s", result.Model)
	}
}

func TestPredictOutOfRangeProbabilityFallsBack(t *testing.T) {
	for _, prob := range []float64{-0.1, 1.5} {
		p := NewPredictor(&stubClassifier{prob: prob}, Ruleset{}, zap.NewNop())
		result := p.Predict(context.Background(), healthyRecord())
		if result.Model != "rule-based" {
			t.Fatalf("probability %.1f: expected rule-based fallback, got %s", prob, result.Model)
		}
	}
}

func TestDescribeFactorsPlaceholder(t *testing.T) {
	factors := DescribeFactors(healthyRecord())
	if len(factors) != 1 || factors[0] != "Model-based prediction - multiple factors considered" {
		t.Fatalf("expected the placeholder factor, got %v", factors)
	}
}

func TestFeaturesDefaults(t *testing.T) {
	features := Features(&Record{
		AttendanceRate:       92,
		AvgPerformanceRating: 3,
		TenureMonths:         36,
	})

	if features["Gender"] != "Male" || features["MaritalStatus"] != "Married" {
		t.Fatalf("unexpected demographic defaults: %v %v", features["Gender"], features["MaritalStatus"])
	}
	if features["Age"] != 35 {
		t.Fatalf("expected default age 35, got %v", features["Age"])
	}
	if features["Education"] != 3 {
		t.Fatalf("expected education 3, got %v", features["Education"])
	}
	if features["YearsAtCompany"] != 3 {
		t.Fatalf("expected 3 years at company, got %v", features["YearsAtCompany"])
	}
	if features["OverTime"] != "No" {
		t.Fatalf("expected no overtime, got %v", features["OverTime"])
	}
}

func TestFeaturesSatisfactionAdjustments(t *testing.T) {
	low := Features(&Record{AttendanceRate: 80, AvgPerformanceRating: 3, TenureMonths: 12})
	if low["JobSatisfaction"] != 2 || low["WorkLifeBalance"] != 2 {
		t.Fatalf("expected lowered satisfaction for poor attendance: %v %v",
			low["JobSatisfaction"], low["WorkLifeBalance"])
	}

	high := Features(&Record{AttendanceRate: 98, AvgPerformanceRating: 3, TenureMonths: 12})
	if high["JobSatisfaction"] != 4 {
		t.Fatalf("expected raised satisfaction for strong attendance: %v", high["JobSatisfaction"])
	}

	leave := Features(&Record{AttendanceRate: 92, AvgPerformanceRating: 3, TenureMonths: 12, LeaveDays: 25})
	if leave["WorkLifeBalance"] != 2 {
		t.Fatalf("expected lowered work-life balance for heavy leave: %v", leave["WorkLifeBalance"])
	}
}

func TestFeaturesRatingsClampedToSurveyScale(t *testing.T) {
	features := Features(&Record{AttendanceRate: 92, AvgPerformanceRating: 5, TenureMonths: 12})
	if features["PerformanceRating"] != 4 {
		t.Fatalf("expected performance rating clamped to 4, got %v", features["PerformanceRating"])
	}
	if features["JobInvolvement"] != 4 {
		t.Fatalf("expected job involvement clamped to 4, got %v", features["JobInvolvement"])
	}
}

func TestFeaturesExplicitValuesWin(t *testing.T) {
	features := Features(&Record{
		AttendanceRate:       80,
		AvgPerformanceRating: 3,
		TenureMonths:         12,
		JobSatisfaction:      4,
		YearsSincePromotion:  7,
	})

	if features["JobSatisfaction"] != 4 {
		t.Fatalf("expected explicit job satisfaction to win, got %v", features["JobSatisfaction"])
	}
	if features["YearsSinceLastPromotion"] != 7 {
		t.Fatalf("expected explicit promotion gap, got %v", features["YearsSinceLastPromotion"])
	}
}

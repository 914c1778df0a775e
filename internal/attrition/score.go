// Package attrition estimates employee attrition risk. A trained classifier
// can be plugged in; without one, a deterministic additive rule scorer runs.
package attrition

import "fmt"

// RiskLevel buckets a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"

	mediumRiskThreshold = 30
	highRiskThreshold   = 60

	maxFactors = 5

	noRiskFactorsPlaceholder = "No major risk factors identified"
)

// Record is a flat bag of employee attributes. Ratings use the 1-5 scale;
// satisfaction scores use the 1-4 scale of the HR survey forms.
type Record struct {
	AttendanceRate          float64 `json:"attendance_rate"`
	LeaveDays               int     `json:"leave_days"`
	AvgPerformanceRating    float64 `json:"avg_performance_rating"`
	TenureMonths            int     `json:"tenure_months"`
	OvertimeFrequency       int     `json:"overtime_frequency"`
	MonthlyIncome           float64 `json:"monthly_income"`
	JobSatisfaction         int     `json:"job_satisfaction"`
	EnvironmentSatisfaction int     `json:"environment_satisfaction"`
	WorkLifeBalance         int     `json:"work_life_balance"`
	JobInvolvement          int     `json:"job_involvement"`
	DistanceFromHome        int     `json:"distance_from_home"`
	CompaniesWorked         int     `json:"companies_worked"`
	YearsSincePromotion     int     `json:"years_since_promotion"`
	Age                     int     `json:"age"`
	Department              string  `json:"department"`
	JobRole                 string  `json:"job_role"`
}

// Result is the outcome of an attrition risk evaluation.
type Result struct {
	RiskScore           float64   `json:"risk_score"`
	RiskLevel           RiskLevel `json:"risk_level"`
	ContributingFactors []string  `json:"contributing_factors"`
	Recommendations     string    `json:"recommendations"`
	Model               string    `json:"model"`
}

// Ruleset selects the optional scoring rules. The four core rules
// (attendance, leave, performance, tenure) always run.
type Ruleset struct {
	LongTenure   bool
	Overtime     bool
	Compensation bool

	// OvertimeThreshold is the number of overtime occurrences per quarter
	// above which the overtime rule triggers. Zero means the default of 10.
	OvertimeThreshold int
	// MarketMonthlyIncome is the reference for the compensation rule.
	// Zero means the default of 5000.
	MarketMonthlyIncome float64
}

const (
	defaultOvertimeThreshold   = 10
	defaultMarketMonthlyIncome = 5000
)

// Score evaluates the rule-based risk model. Each rule is checked
// independently against the raw record; contributions add up and the sum is
// clamped to [0,100].
func Score(rec *Record, rules Ruleset) *Result {
	score := 0.0
	factors := make([]string, 0, maxFactors)

	switch {
	case rec.AttendanceRate < 70:
		score += 30
		factors = append(factors, fmt.Sprintf("Low attendance (%.1f%%)", rec.AttendanceRate))
	case rec.AttendanceRate < 85:
		score += 15
		factors = append(factors, fmt.Sprintf("Below average attendance (%.1f%%)", rec.AttendanceRate))
	}

	if rec.LeaveDays > 20 {
		score += 20
		factors = append(factors, fmt.Sprintf("High leave usage (%d days)", rec.LeaveDays))
	}

	if rec.AvgPerformanceRating < 2.5 {
		score += 25
		factors = append(factors, fmt.Sprintf("Low performance (%.1f/5)", rec.AvgPerformanceRating))
	}

	if rec.TenureMonths < 6 {
		score += 20
		factors = append(factors, "New employee settling in")
	} else if rules.LongTenure && rec.TenureMonths > 60 {
		score += 10
		factors = append(factors, "Long tenure - may seek new challenges")
	}

	if rules.Overtime {
		threshold := rules.OvertimeThreshold
		if threshold <= 0 {
			threshold = defaultOvertimeThreshold
		}
		if rec.OvertimeFrequency > threshold {
			score += 15
			factors = append(factors, fmt.Sprintf("Frequent overtime (%d times/3 months)", rec.OvertimeFrequency))
		}
	}

	if rules.Compensation {
		market := rules.MarketMonthlyIncome
		if market <= 0 {
			market = defaultMarketMonthlyIncome
		}
		if rec.MonthlyIncome > 0 && rec.MonthlyIncome < market {
			score += 10
			factors = append(factors, "Below average compensation")
		}
	}

	if score > 100 {
		score = 100
	}

	if len(factors) == 0 {
		factors = append(factors, noRiskFactorsPlaceholder)
	}
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}

	level := BucketRisk(score)

	return &Result{
		RiskScore:           score,
		RiskLevel:           level,
		ContributingFactors: factors,
		Recommendations:     Recommendations(level, factors),
		Model:               "rule-based",
	}
}

// BucketRisk maps a score in [0,100] to a risk level. Boundaries are exact:
// 30 is medium, 60 is high.
func BucketRisk(score float64) RiskLevel {
	switch {
	case score < mediumRiskThreshold:
		return RiskLow
	case score < highRiskThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

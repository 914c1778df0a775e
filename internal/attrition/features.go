package attrition

// Features maps a record onto the fixed-width feature schema the trained
// classifier was fitted on. Fields the simplified intake form does not
// collect are filled with the schema's assumed defaults; this is
// configuration data dictated by the model, not scoring logic. Ratings here
// use the classifier's 1-4 scale.
func Features(rec *Record) map[string]any {
	tenureYears := float64(rec.TenureMonths) / 12

	age := rec.Age
	if age <= 0 {
		age = 35
	}

	income := rec.MonthlyIncome
	if income <= 0 {
		income = 6500
	}

	department := rec.Department
	if department == "" {
		department = "Research & Development"
	}

	jobRole := rec.JobRole
	if jobRole == "" {
		jobRole = "Sales Executive"
	}

	companiesWorked := rec.CompaniesWorked
	if companiesWorked <= 0 {
		companiesWorked = max(1, int(tenureYears/3))
	}

	distance := rec.DistanceFromHome
	if distance <= 0 {
		distance = 10
	}

	overtime := "No"
	if rec.OvertimeFrequency > 5 {
		overtime = "Yes"
	}

	features := map[string]any{
		"Age":           age,
		"Gender":        "Male",
		"MaritalStatus": "Married",

		"BusinessTravel":   "Travel_Rarely",
		"DistanceFromHome": distance,

		"Education":      3, // Bachelor's degree
		"EducationField": "Life Sciences",

		"Department": department,
		"JobRole":    jobRole,
		"JobLevel":   2,

		"MonthlyIncome":     income,
		"DailyRate":         int(income / 22),
		"HourlyRate":        int(income / (8 * 22)),
		"MonthlyRate":       int(income * 3.5),
		"PercentSalaryHike": 15,
		"StockOptionLevel":  1,

		"EnvironmentSatisfaction":  3,
		"JobSatisfaction":          3,
		"RelationshipSatisfaction": 3,
		"WorkLifeBalance":          3,

		"JobInvolvement":    clampRating(int(rec.AvgPerformanceRating)),
		"PerformanceRating": clampRating(int(rec.AvgPerformanceRating) + 1),

		"OverTime":              overtime,
		"TrainingTimesLastYear": 2,

		"YearsAtCompany":          int(tenureYears),
		"YearsInCurrentRole":      int(tenureYears * 0.6),
		"YearsSinceLastPromotion": int(tenureYears * 0.4),
		"YearsWithCurrManager":    int(tenureYears * 0.5),
		"TotalWorkingYears":       int(tenureYears * 1.5),
		"NumCompaniesWorked":      companiesWorked,
	}

	// Attendance and leave patterns shift the assumed satisfaction scores.
	switch {
	case rec.AttendanceRate < 85:
		features["JobSatisfaction"] = 2
		features["EnvironmentSatisfaction"] = 2
		features["WorkLifeBalance"] = 2
	case rec.AttendanceRate > 95:
		features["JobSatisfaction"] = 4
		features["EnvironmentSatisfaction"] = 4
	}

	if rec.LeaveDays > 20 {
		features["WorkLifeBalance"] = 2
	}

	if rec.JobSatisfaction > 0 {
		features["JobSatisfaction"] = clampRating(rec.JobSatisfaction)
	}
	if rec.EnvironmentSatisfaction > 0 {
		features["EnvironmentSatisfaction"] = clampRating(rec.EnvironmentSatisfaction)
	}
	if rec.WorkLifeBalance > 0 {
		features["WorkLifeBalance"] = clampRating(rec.WorkLifeBalance)
	}
	if rec.JobInvolvement > 0 {
		features["JobInvolvement"] = clampRating(rec.JobInvolvement)
	}
	if rec.YearsSincePromotion > 0 {
		features["YearsSinceLastPromotion"] = rec.YearsSincePromotion
	}

	return features
}

func clampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 4 {
		return 4
	}
	return v
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/hrtools/hrscan/internal/attrition"
	"github.com/hrtools/hrscan/internal/history"
	"github.com/hrtools/hrscan/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var attritionCmd = &cobra.Command{
	Use:   "attrition",
	Short: "Estimate attrition risk for one employee record",
	Run: func(cmd *cobra.Command, _ []string) {
		attritionRisk(cmd)
	},
}

func init() {
	rootCmd.AddCommand(attritionCmd)

	attritionCmd.Flags().String("record", "", "path to a json employee record; flags below override its fields")
	attritionCmd.Flags().Float64("attendance", 100, "attendance rate in percent")
	attritionCmd.Flags().Int("leave-days", 0, "leave days taken this year")
	attritionCmd.Flags().Float64("rating", 3, "average performance rating on the 1-5 scale")
	attritionCmd.Flags().Int("tenure-months", 12, "months since hiring")
	attritionCmd.Flags().Int("overtime", 0, "overtime occurrences in the last quarter")
	attritionCmd.Flags().Float64("income", 0, "monthly income; zero skips the compensation rule")
	attritionCmd.Flags().String("role", "", "job role, recorded with the prediction")
}

func attritionRisk(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	rt, err := newRuntime(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the runtime", zap.Error(err))
	}
	defer rt.Close()

	rec, err := recordFromFlags(cmd)
	if err != nil {
		logger.Fatal("building the employee record", zap.Error(err))
	}

	result := rt.attrition.Predict(ctx, rec)

	if err := rt.history.Append(ctx, &history.Record{
		Kind:    history.KindAttrition,
		Subject: rec.JobRole,
		Model:   result.Model,
		Score:   result.RiskScore,
		Level:   string(result.RiskLevel),
	}); err != nil {
		logger.Warn("recording prediction history failed", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}

	fmt.Println(string(pretty))
}

func recordFromFlags(cmd *cobra.Command) (*attrition.Record, error) {
	rec := &attrition.Record{}

	if path, _ := cmd.Flags().GetString("record"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, rec); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("attendance") || rec.AttendanceRate == 0 {
		rec.AttendanceRate, _ = flags.GetFloat64("attendance")
	}
	if flags.Changed("leave-days") {
		rec.LeaveDays, _ = flags.GetInt("leave-days")
	}
	if flags.Changed("rating") || rec.AvgPerformanceRating == 0 {
		rec.AvgPerformanceRating, _ = flags.GetFloat64("rating")
	}
	if flags.Changed("tenure-months") || rec.TenureMonths == 0 {
		rec.TenureMonths, _ = flags.GetInt("tenure-months")
	}
	if flags.Changed("overtime") {
		rec.OvertimeFrequency, _ = flags.GetInt("overtime")
	}
	if flags.Changed("income") {
		rec.MonthlyIncome, _ = flags.GetFloat64("income")
	}
	if flags.Changed("role") {
		rec.JobRole, _ = flags.GetString("role")
	}

	return rec, nil
}

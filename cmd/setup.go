package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hrtools/hrscan/internal/ai"
	"github.com/hrtools/hrscan/internal/ai/gemini"
	"github.com/hrtools/hrscan/internal/attrition"
	"github.com/hrtools/hrscan/internal/history"
	"github.com/hrtools/hrscan/internal/jobs"
	"github.com/hrtools/hrscan/internal/logger"
	"github.com/hrtools/hrscan/internal/matching"
	"github.com/hrtools/hrscan/internal/secrets"
	"github.com/hrtools/hrscan/internal/storage"

	"go.uber.org/zap"
)

// runtime bundles the collaborators every command builds once at startup.
type runtime struct {
	db         *sql.DB
	jobs       *jobs.Store
	history    *history.Store
	dispatcher *matching.Dispatcher
	attrition  *attrition.Predictor
}

func newRuntime(ctx context.Context, config *Config, log *zap.Logger) (*runtime, error) {
	db, err := storage.Open(config.Database)
	if err != nil {
		return nil, err
	}

	jobStore, err := jobs.NewStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	historyStore, err := history.NewStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	analyzer, err := newAnalyzer(ctx, config.AI, log)
	if err != nil {
		// The rule-based path still works; the AI strategy falls back.
		log.Warn("ai analyzer unavailable", zap.Error(err))
	}

	dispatcher := matching.NewDispatcher(
		analyzer,
		&matching.TokenOverlapPredictor{Name: "lstm"},
		&matching.TokenOverlapPredictor{Name: "transformer"},
		logger.WithComponent(log, "matching"),
	)

	predictor := attrition.NewPredictor(nil, attritionRules(config.Attrition), logger.WithComponent(log, "attrition"))

	return &runtime{
		db:         db,
		jobs:       jobStore,
		history:    historyStore,
		dispatcher: dispatcher,
		attrition:  predictor,
	}, nil
}

func (rt *runtime) Close() error {
	return rt.db.Close()
}

func newAnalyzer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Analyzer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithComponent(log, "gemini").With(
		zap.String("model", cfg.Gemini.Model),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAnalyzer(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}

func attritionRules(cfg *AttritionConfig) attrition.Ruleset {
	if cfg == nil {
		return attrition.Ruleset{}
	}

	return attrition.Ruleset{
		LongTenure:          cfg.LongTenureRule,
		Overtime:            cfg.OvertimeRule,
		Compensation:        cfg.CompensationRule,
		OvertimeThreshold:   cfg.OvertimeThreshold,
		MarketMonthlyIncome: cfg.MarketMonthlyIncome,
	}
}

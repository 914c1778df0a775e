package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hrscan"

	defaultDatabase = "hrscan.db"
	defaultListen   = ":8080"
)

type Config struct {
	Database  string           `mapstructure:"database"`
	Listen    string           `mapstructure:"listen"`
	AI        *AIConfig        `mapstructure:"ai"`
	Attrition *AttritionConfig `mapstructure:"attrition"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// AttritionConfig toggles the optional scoring rules; the core rules always
// run.
type AttritionConfig struct {
	LongTenureRule      bool    `mapstructure:"long-tenure-rule"`
	OvertimeRule        bool    `mapstructure:"overtime-rule"`
	CompensationRule    bool    `mapstructure:"compensation-rule"`
	OvertimeThreshold   int     `mapstructure:"overtime-threshold"`
	MarketMonthlyIncome float64 `mapstructure:"market-monthly-income"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hrscan scores resumes against job postings and estimates employee attrition risk",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Optional .env file, mirrors the deployment setup.
	_ = godotenv.Load()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hrscan.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("database", defaultDatabase, "path to the sqlite database file")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The config file is optional; flags and env cover the defaults.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Database == "" {
		config.Database = defaultDatabase
	}
	if config.Listen == "" {
		config.Listen = defaultListen
	}

	return config, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Backend struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"backend"`

	Database struct {
		KB struct {
			DSN string `mapstructure:"dsn"` // Postgres DSN of the chatbot's KB database
		} `mapstructure:"kb"`
	} `mapstructure:"database"`

	Analysis struct {
		DelayMs    int    `mapstructure:"delay_ms"` // pause between document fetches
		ReportPath string `mapstructure:"report_path"`
	} `mapstructure:"analysis"`

	History struct {
		Path string `mapstructure:"path"` // sqlite file for run history
	} `mapstructure:"history"`

	Approve struct {
		PerCompany int `mapstructure:"per_company"`
	} `mapstructure:"approve"`

	Review struct {
		Enabled      bool   `mapstructure:"enabled"`
		Model        string `mapstructure:"model"`
		OpenaiApiKey string `mapstructure:"openai_api_key"`
	} `mapstructure:"review"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`
}

// Delay returns the inter-request pause of the batch runner.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Analysis.DelayMs) * time.Millisecond
}

// BackendTimeout returns the HTTP timeout for backend requests.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("backend.base_url", "http://localhost:3000")
	viper.SetDefault("backend.timeout_seconds", 30)
	viper.SetDefault("analysis.delay_ms", 500)
	viper.SetDefault("analysis.report_path", "kb-analysis-report.json")
	viper.SetDefault("history.path", "kbaudit-history.db")
	viper.SetDefault("approve.per_company", 10)
	viper.SetDefault("review.model", "gpt-4o-mini")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("worker.concurrency", 1)
	viper.SetDefault("worker.queues", map[string]int{"default": 1})

	viper.AutomaticEnv()
	// Common env overrides so the tool works against staging backends without
	// a config file.
	viper.BindEnv("backend.base_url", "KB_API_URL")
	viper.BindEnv("database.kb.dsn", "KB_DATABASE_DSN")
	viper.BindEnv("review.openai_api_key", "OPENAI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

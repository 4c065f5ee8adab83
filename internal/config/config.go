// Package config manages application configuration from config.yaml,
// BOT_-prefixed environment variables, and default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrConfiguration indicates invalid or missing configuration. It is fatal:
// the process fails fast before accepting any events.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration for all components.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the channel-bot credential.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
}

// GeminiConfig holds the vision provider settings.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"     validate:"required"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"required,min=1s,max=10m"`
}

// DatabaseConfig holds the delivery journal settings.
type DatabaseConfig struct {
	Path          string `mapstructure:"path"           validate:"required"`
	RetentionDays int    `mapstructure:"retention_days" validate:"min=1"`
}

// SchedulerConfig holds the scheduled task definitions keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables and schedules one registered task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Load reads configuration from defaults, an optional config.yaml, and
// BOT_* environment variables, then validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Secrets have no defaults, so bind them explicitly for env-only runs.
	_ = v.BindEnv("telegram.token")
	_ = v.BindEnv("gemini.api_key")

	// A missing config file is fine: defaults and environment variables
	// are enough to run.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.timeout", 2*time.Minute)

	v.SetDefault("database.path", "storage.db")
	v.SetDefault("database.retention_days", 30)

	v.SetDefault("scheduler.tasks", map[string]TaskConfig{
		"journal_maintenance": {Enabled: true, Schedule: "0 4 * * *"},
	})
}

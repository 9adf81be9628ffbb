package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Workers   WorkersConfig   `mapstructure:"workers"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type QueueConfig struct {
	URL         string        `mapstructure:"url"`
	Key         string        `mapstructure:"key"`
	DeadLetter  string        `mapstructure:"dead_letter"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

// ProvidersConfig carries per-provider webhook settings plus the environment
// flag that selects sandbox vs production integration credentials.
type ProvidersConfig struct {
	Environment string                `mapstructure:"environment"`
	Square      ProviderWebhookConfig `mapstructure:"square"`
	Clover      ProviderWebhookConfig `mapstructure:"clover"`
}

type ProviderWebhookConfig struct {
	SignatureKey    string `mapstructure:"signature_key"`
	NotificationURL string `mapstructure:"notification_url"`
}

type WorkersConfig struct {
	Count        int           `mapstructure:"count"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Providers.Environment == "" {
		config.Providers.Environment = "production"
	}
	if config.Providers.Environment != "production" && config.Providers.Environment != "sandbox" {
		return nil, fmt.Errorf("invalid providers.environment %q", config.Providers.Environment)
	}
	if config.Workers.Count <= 0 {
		config.Workers.Count = 4
	}
	if config.Workers.MaxAttempts <= 0 {
		config.Workers.MaxAttempts = 10
	}
	if config.Queue.Key == "" {
		config.Queue.Key = "posflow:webhook_events"
	}
	if config.Queue.DeadLetter == "" {
		config.Queue.DeadLetter = config.Queue.Key + ":dead"
	}
	if config.Queue.PollTimeout <= 0 {
		config.Queue.PollTimeout = 5 * time.Second
	}

	return &config, nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// SlackModeWebhook receives events over the HTTP events endpoint.
	SlackModeWebhook = "webhook"
	// SlackModeSocket receives events over a Socket Mode connection.
	SlackModeSocket = "socket"
)

type SlackConfig struct {
	BotToken      string
	SigningSecret string
	AppToken      string
	Mode          string
}

// IsConfigured returns true if all required Slack configuration is present
// for the selected transport mode
func (c SlackConfig) IsConfigured() bool {
	if c.BotToken == "" {
		return false
	}
	if c.Mode == SlackModeSocket {
		return c.AppToken != ""
	}
	return c.SigningSecret != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string

	// File processing limits
	MaxFileSize     int64         // Optional with default 50 MiB
	PipelineTimeout time.Duration // Optional with default 60s

	SlackConfig SlackConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	maxFileSize, err := getEnvInt64WithDefault("MAX_FILE_SIZE", 52428800) // 50 MiB
	if err != nil {
		return nil, err
	}

	pipelineTimeoutSecs, err := getEnvInt64WithDefault("PIPELINE_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		MaxFileSize:        maxFileSize,
		PipelineTimeout:    time.Duration(pipelineTimeoutSecs) * time.Second,

		SlackConfig: SlackConfig{
			BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
			AppToken:      os.Getenv("SLACK_APP_TOKEN"),
			Mode:          getEnvWithDefault("SLACK_MODE", SlackModeWebhook),
		},
	}

	if config.SlackConfig.Mode != SlackModeWebhook && config.SlackConfig.Mode != SlackModeSocket {
		return nil, fmt.Errorf("SLACK_MODE must be %q or %q, got %q", SlackModeWebhook, SlackModeSocket, config.SlackConfig.Mode)
	}

	if config.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack integration configured (%s mode)", config.SlackConfig.Mode)
	} else {
		return nil, fmt.Errorf("slack integration is not fully configured for %s mode", config.SlackConfig.Mode)
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

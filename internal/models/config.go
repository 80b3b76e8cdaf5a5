package models

import "time"

type LoggingConfig struct {
	Level  string `mapstructure:"level" default:"warn"`
	Format string `mapstructure:"format" default:"text"`
}

// NotionConfig is passed explicitly to the task store client.
type NotionConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	DatabaseID string        `mapstructure:"database_id"`
	BaseURL    string        `mapstructure:"base_url" default:"https://api.notion.com"`
	Version    string        `mapstructure:"version" default:"2022-06-28"`
	Timeout    time.Duration `mapstructure:"timeout" default:"30s"`
}

type LargeLanguageModelProvider string

const (
	LargeLanguageModelProviderOpenAI LargeLanguageModelProvider = "openai"
	LargeLanguageModelProviderGemini LargeLanguageModelProvider = "gemini"
)

type LargeLanguageModelConfig struct {
	Provider    LargeLanguageModelProvider `mapstructure:"provider" default:"openai"`
	APIKey      string                     `mapstructure:"api_key"`
	BaseURL     string                     `mapstructure:"base_url" default:"https://api.groq.com/openai/v1"`
	Model       string                     `mapstructure:"model" default:"llama3-8b-8192"`
	Temperature float32                    `mapstructure:"temperature" default:"0"`
	Timeout     time.Duration              `mapstructure:"timeout" default:"60s"`
}

type AgentConfig struct {
	// Zero lets the model decide when to stop, up to a ceiling of 15 steps
	MaxIterations int `mapstructure:"max_iterations" default:"3"`
}

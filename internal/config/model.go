package config

import (
	"fmt"
	"strings"

	"github.com/artemis-io/agent/internal/common"
	"github.com/artemis-io/agent/internal/models"
)

// Config represents the application configuration structure
type Config struct {
	Notion  models.NotionConfig             `mapstructure:"notion"`
	LLM     models.LargeLanguageModelConfig `mapstructure:"llm"`
	Agent   models.AgentConfig              `mapstructure:"agent"`
	Logging models.LoggingConfig            `mapstructure:"logging"`

	// Path of the config file that was read, if any
	file string
}

func (c *Config) GetNotionConfig() *models.NotionConfig {
	return &c.Notion
}

func (c *Config) GetLargeLanguageModelConfig() *models.LargeLanguageModelConfig {
	return &c.LLM
}

func (c *Config) GetMaxIterations() int {
	return c.Agent.MaxIterations
}

func (c *Config) GetConfigFile() string {
	return c.file
}

// Validate reports every missing value at once.
func (c *Config) Validate() error {

	var missing []string

	if len(c.Notion.APIKey) == 0 {
		missing = append(missing, "NOTION_API_KEY")
	}

	if len(c.Notion.DatabaseID) == 0 {
		missing = append(missing, "NOTION_DATABASE_ID")
	}

	if len(c.LLM.APIKey) == 0 {
		missing = append(missing, apiKeyEnvironmentVariable(c.LLM.Provider))
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", models.ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	switch normalizeProvider(c.LLM.Provider) {
	case models.LargeLanguageModelProviderOpenAI, models.LargeLanguageModelProviderGemini:
	default:
		return fmt.Errorf("%w: unsupported llm provider '%s'", models.ErrInvalidInput, c.LLM.Provider)
	}

	for key, value := range map[string]string{
		"notion.base_url": c.Notion.BaseURL,
		"llm.base_url":    c.LLM.BaseURL,
	} {
		if len(value) > 0 && !common.IsValidURL(value) {
			return fmt.Errorf("%w: %s '%s' is not a valid url", models.ErrInvalidInput, key, value)
		}
	}

	if c.Agent.MaxIterations < 0 {
		return fmt.Errorf("%w: agent.max_iterations must not be negative", models.ErrInvalidInput)
	}

	return nil
}

func normalizeProvider(provider models.LargeLanguageModelProvider) models.LargeLanguageModelProvider {
	return models.LargeLanguageModelProvider(strings.ToLower(strings.TrimSpace(string(provider))))
}

// apiKeyEnvironmentVariable names the variable a user is expected to set
// for the given provider.
func apiKeyEnvironmentVariable(provider models.LargeLanguageModelProvider) string {
	switch normalizeProvider(provider) {
	case models.LargeLanguageModelProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}

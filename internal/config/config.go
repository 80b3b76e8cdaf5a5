package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/artemis-io/agent/internal/models"
)

const EnvironmentPrefix = "ARTEMIS"

// DefaultConfig returns the built-in defaults. Load layers the config file
// and environment on top of it.
func DefaultConfig() *Config {

	v := viper.New()

	// Set default values
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logrus.Fatalf("error unmarshaling default config: %v", err)
	}

	return &config
}

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	if err := setupViperConfig(v, configFile); err != nil {
		return nil, err
	}

	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() error {
	if err := gotenv.Load(); err != nil {
		// .env file not found, that's okay - continue with other sources
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Error loading .env file")
		}
	}
	return nil
}

// setupViperConfig configures viper with file paths and defaults
func setupViperConfig(v *viper.Viper, configFile string) error {
	// Set configuration file details
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if home, err := os.UserHomeDir(); err == nil && len(home) > 0 {
		v.AddConfigPath(filepath.Join(home, ".config", "artemis"))
	}

	if len(configFile) > 0 {
		if _, err := os.Stat(configFile); err != nil {
			return fmt.Errorf("config file %s: %w", configFile, err)
		}
		v.SetConfigFile(configFile)
	}

	// Set default values
	setDefaults(v)

	// Set environment variable settings
	v.SetEnvPrefix(EnvironmentPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// bindEnvironmentVariables binds all environment variables to viper. The
// unprefixed names are accepted as well since most users already export them.
func bindEnvironmentVariables(v *viper.Viper) {

	// Notion
	v.BindEnv("notion.api_key", "ARTEMIS_NOTION_API_KEY", "NOTION_API_KEY")
	v.BindEnv("notion.database_id", "ARTEMIS_NOTION_DATABASE_ID", "NOTION_DATABASE_ID")
	v.BindEnv("notion.base_url", "ARTEMIS_NOTION_BASE_URL")
	v.BindEnv("notion.version", "ARTEMIS_NOTION_VERSION")
	v.BindEnv("notion.timeout", "ARTEMIS_NOTION_TIMEOUT")

	// Language model
	v.BindEnv("llm.provider", "ARTEMIS_LLM_PROVIDER")
	v.BindEnv("llm.api_key", "ARTEMIS_LLM_API_KEY")
	v.BindEnv("llm.base_url", "ARTEMIS_LLM_BASE_URL")
	v.BindEnv("llm.model", "ARTEMIS_LLM_MODEL")
	v.BindEnv("llm.temperature", "ARTEMIS_LLM_TEMPERATURE")
	v.BindEnv("llm.timeout", "ARTEMIS_LLM_TIMEOUT")

	// Provider specific keys, used when llm.api_key is unset
	v.BindEnv("keys.groq", "GROQ_API_KEY")
	v.BindEnv("keys.gemini", "GEMINI_API_KEY", "GOOGLE_API_KEY")

	// Agent
	v.BindEnv("agent.max_iterations", "ARTEMIS_AGENT_MAX_ITERATIONS")

	// Logging
	v.BindEnv("logging.level", "ARTEMIS_LOGGING_LEVEL")
	v.BindEnv("logging.format", "ARTEMIS_LOGGING_FORMAT")
}

// readAndUnmarshalConfig reads the configuration file and unmarshals it
func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and environment variables
	}

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.file = v.ConfigFileUsed()

	if len(config.LLM.APIKey) == 0 {
		config.LLM.APIKey = providerAPIKey(v, config.LLM.Provider)
	}

	return config, nil
}

func providerAPIKey(v *viper.Viper, provider models.LargeLanguageModelProvider) string {
	switch normalizeProvider(provider) {
	case models.LargeLanguageModelProviderGemini:
		return v.GetString("keys.gemini")
	default:
		return v.GetString("keys.groq")
	}
}

// setupLogging configures the logging system based on the config
func setupLogging(config *Config) error {
	// Set logging level
	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)

	// Set logging format
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format": config.Logging.Format,
		}).Warn("Unknown log format")
	}

	logrus.WithFields(logrus.Fields{
		"file":     config.file,
		"provider": config.LLM.Provider,
		"model":    config.LLM.Model,
		"database": config.Notion.DatabaseID,
	}).Debug("Configuration loaded")

	return nil
}

func setDefaults(v *viper.Viper) {

	// Notion defaults
	v.SetDefault("notion.api_key", "")
	v.SetDefault("notion.database_id", "")
	v.SetDefault("notion.base_url", "https://api.notion.com")
	v.SetDefault("notion.version", "2022-06-28")
	v.SetDefault("notion.timeout", "30s")

	// Language model defaults
	v.SetDefault("llm.provider", string(models.LargeLanguageModelProviderOpenAI))
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", "60s")

	// Provider keys
	v.SetDefault("keys.groq", "")
	v.SetDefault("keys.gemini", "")

	// Agent defaults
	v.SetDefault("agent.max_iterations", 3)

	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/artemis-io/agent/internal/config"
	"github.com/artemis-io/agent/internal/models"
)

// Global configuration instance
var cfg *config.Config

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	// Load configuration before any command runs
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return nil
}

var rootCmd = &cobra.Command{
	Use:   "artemis",
	Short: "Artemis - a conversational task planner backed by Notion",
	Long: `Artemis turns plain sentences into tasks in a Notion database.

Ask it to add, list or complete tasks; type 'exit' or 'quit' to leave.

If no config file is specified, the following locations are searched:
  - ./config.yaml
  - ./config/config.yaml
  - ~/.config/artemis/config.yaml

NOTION_API_KEY, NOTION_DATABASE_ID and GROQ_API_KEY (or GEMINI_API_KEY)
may also be supplied through the environment or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE:       preRunConfigE,
	RunE:          runShell,
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default is $HOME/.config/artemis/config.yaml)")

}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(models.Failure("%v", err)))
		return 1
	}
	return 0
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/artemis-io/agent/internal/agent"
	"github.com/artemis-io/agent/internal/config"
	"github.com/artemis-io/agent/internal/llm"
	"github.com/artemis-io/agent/internal/notion"
	"github.com/artemis-io/agent/internal/shell"
	"github.com/artemis-io/agent/internal/tools"
)

// newAgent wires the task store, the tools and the language model together.
func newAgent(ctx context.Context, cfg *config.Config) (*agent.Agent, error) {

	store, err := notion.NewClient(cfg.GetNotionConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create notion client: %w", err)
	}

	model, err := llm.NewModel(ctx, cfg.GetLargeLanguageModelConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create language model: %w", err)
	}

	registry := tools.NewRegistry(store, time.Now)

	logrus.WithFields(logrus.Fields{
		"model":          model.GetModelName(),
		"database":       store.GetDatabaseID(),
		"tools":          registry.Names(),
		"max_iterations": cfg.GetMaxIterations(),
	}).Debug("Agent ready")

	return agent.New(model, registry, agent.WithMaxIterations(cfg.GetMaxIterations())), nil
}

func runShell(cmd *cobra.Command, _ []string) error {

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	artemis, err := newAgent(ctx, cfg)
	if err != nil {
		return err
	}

	return shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), artemis).Run(ctx)
}

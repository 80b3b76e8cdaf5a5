package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artemis-io/agent/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			titleStyle.Render("Artemis"),
			infoStyle.Render(common.GetVersion()),
		)
	},
}

func init() {

	rootCmd.AddCommand(versionCmd)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/loglens/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "loglens %s\n", version.Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

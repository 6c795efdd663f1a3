package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/livp123/loglens/internal/daemon"
)

var (
	watchPosition string
	watchFilter   string
	watchNoColor  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [file...]",
	Short: "Tail files live with classified, colorized output",
	Long: `Watch tails the given files (plus the configured auto-tail files),
emitting only newly appended content. Each complete line is classified and
printed with its primary level tag. Truncation resets the file's offset; a
file deleted mid-session stops only that session. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchPosition, "position", "", "Start position: start, end or resume (default from config)")
	watchCmd.Flags().StringVar(&watchFilter, "filter", "", `Filter expression, e.g. '"ERROR" in Levels'`)
	watchCmd.Flags().BoolVar(&watchNoColor, "no-color", false, "Disable ANSI colors")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx, manager.Get(), daemon.Options{
		Paths:    args,
		Position: watchPosition,
		Filter:   watchFilter,
		Out:      cmd.OutOrStdout(),
		Color:    !watchNoColor,
	})
}

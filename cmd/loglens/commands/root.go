package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/loglens/internal/config"
	"github.com/livp123/loglens/internal/utils/logger"
)

var (
	configPath string
	manager    *config.Manager
)

var RootCmd = &cobra.Command{
	Use:   "loglens",
	Short: "Classify log lines by severity and tail files incrementally",
	Long: `loglens classifies lines of text logs into severity levels (ERROR,
WARN, INFO, DEBUG) using a fixed rule table, and tails growing files by
tracking byte offsets, emitting only newly appended content and detecting
truncation.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = config.DefaultConfigPath
		}
		manager = config.NewManager(path)
		if err := manager.Load(); err != nil {
			// Fall back to defaults; a broken config file must not block
			// read-only commands.
			logger.Init(logger.Config{Enabled: false, Level: "info"})
			logger.Get(nil).Warnf("failed to load config %s: %v", path, err)
		} else {
			logger.Init(manager.Get().Logging)
		}

		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logger.Sync() }()
	return RootCmd.Execute()
}

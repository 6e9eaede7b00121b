package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/logging"
)

// newSyncCmd creates the sync command.
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the document knowledge base with the source directory",
		Long: `Synchronize the vector store with the configured source directory.

New and modified files are ingested, files removed from the directory are
deleted from the store, and unchanged files are skipped. Running sync twice
in a row performs no work the second time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cfg.Knowledge.Enabled {
				return fmt.Errorf("knowledge base is disabled; set knowledge.enabled: true in %s", config.DefaultConfigFile)
			}

			logger, cleanup, err := logging.Setup(logging.Config{
				Level:         cfg.Server.LogLevel,
				FilePath:      logFilePath(cfg),
				MaxSizeMB:     10,
				MaxFiles:      5,
				WriteToStderr: true,
			})
			if err != nil {
				return err
			}
			defer cleanup()
			slog.SetDefault(logger)

			stack, err := buildKnowledge(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = stack.Store.Close() }()

			summary, err := stack.Orchestrator.Run(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.String())
			return err
		},
	}
}

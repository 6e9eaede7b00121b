package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/index"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show knowledge base state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !cfg.Knowledge.Enabled {
				_, err := fmt.Fprintln(out, "knowledge base: disabled")
				return err
			}

			ix, err := index.NewStore(cfg.IndexPath()).Load()
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "knowledge base: enabled")
			fmt.Fprintf(out, "source directory: %s\n", cfg.Knowledge.SourceDir)
			fmt.Fprintf(out, "index: %s\n", cfg.IndexPath())
			fmt.Fprintf(out, "tracked files: %d\n", ix.Len())

			totalChunks := 0
			for _, entry := range ix.Entries {
				totalChunks += entry.ChunksCreated
			}
			fmt.Fprintf(out, "total chunks: %d\n", totalChunks)
			return nil
		},
	}
}

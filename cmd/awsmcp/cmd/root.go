// Package cmd provides the CLI commands for awsmcp.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opskit/awsmcp/pkg/version"
)

// configPath is the --config persistent flag, shared by all commands.
var configPath string

// NewRootCmd creates the root command for the awsmcp CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "awsmcp",
		Short: "AWS MCP server with a local document knowledge base",
		Long: `awsmcp is an MCP server exposing AWS account tools and semantic search
over a locally ingested document collection.

Documents placed in the configured source directory are synchronized into
a vector store at startup: new and modified files are ingested, removed
files are deleted, unchanged files are skipped.

Running 'awsmcp' with no arguments starts the server on stdio.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runServe(cmd.Context())
		},
	}

	cmd.SetVersionTemplate("awsmcp version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default .awsmcp.yaml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

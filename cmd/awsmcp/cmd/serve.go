package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opskit/awsmcp/internal/awstools"
	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/embed"
	"github.com/opskit/awsmcp/internal/index"
	"github.com/opskit/awsmcp/internal/logging"
	"github.com/opskit/awsmcp/internal/mcp"
	syncpkg "github.com/opskit/awsmcp/internal/sync"
	"github.com/opskit/awsmcp/internal/vectorstore"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP server on the stdio transport.

When the knowledge base is enabled, a document sync runs first so search
reflects the current contents of the source directory. A failed sync is
logged and reported by sync_status; documents indexed by earlier runs
stay searchable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe starts the MCP server. stdout carries JSON-RPC exclusively, so
// all diagnostics go to the log file and stderr.
func runServe(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.Setup(logging.Config{
		Level:         cfg.Server.LogLevel,
		FilePath:      logFilePath(cfg),
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: false,
	})
	if err != nil {
		return err
	}
	defer cleanup()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store      vectorstore.Store
		indexStore *index.Store
		embedder   embed.Embedder
	)
	var (
		lastSync *syncpkg.Summary
		syncErr  string
	)

	if cfg.Knowledge.Enabled {
		stack, err := buildKnowledge(cfg, logger)
		if err != nil {
			logger.Error("knowledge base unavailable", slog.String("error", err.Error()))
		} else {
			// The store is loaded from disk at this point, so documents
			// indexed by earlier runs stay searchable even when the sync
			// itself fails.
			store = stack.Store
			indexStore = stack.IndexStore
			embedder = stack.Embedder

			summary, err := stack.Orchestrator.Run(ctx)
			if err != nil {
				logger.Error("document sync failed, serving previously indexed documents",
					slog.String("error", err.Error()))
				syncErr = err.Error()
			} else {
				lastSync = summary
			}
		}
	}

	client, err := awstools.New(ctx, cfg.AWS)
	if err != nil {
		logger.Warn("AWS tools unavailable", slog.String("error", err.Error()))
		client = nil
	}

	server := mcp.NewServer(store, indexStore, embedder, client, cfg)
	if lastSync != nil {
		server.SetLastSync(lastSync)
	}
	if syncErr != "" {
		server.SetSyncError(syncErr)
	}
	defer func() { _ = server.Close() }()

	return server.Serve(ctx)
}

// logFilePath resolves the log file location from configuration.
func logFilePath(cfg *config.Config) string {
	if cfg.Server.LogFile != "" {
		return cfg.Server.LogFile
	}
	return logging.DefaultLogPath()
}

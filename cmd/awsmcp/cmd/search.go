package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/vectorstore"
)

// newSearchCmd creates the search command.
func newSearchCmd() *cobra.Command {
	var limit int
	var category string
	var docType string
	var tags []string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the document knowledge base from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query must not be empty")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cfg.Knowledge.Enabled {
				return fmt.Errorf("knowledge base is disabled; set knowledge.enabled: true in %s", config.DefaultConfigFile)
			}

			stack, err := buildKnowledge(cfg, nil)
			if err != nil {
				return err
			}
			defer func() { _ = stack.Store.Close() }()

			matches, err := stack.Store.Query(cmd.Context(), query, vectorstore.Filters{
				Category: category,
				DocType:  docType,
				Tags:     tags,
			}, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				_, err := fmt.Fprintln(out, "no results")
				return err
			}
			for i, m := range matches {
				fmt.Fprintf(out, "%d. %s [%s/%s] chunk %d (score %.3f)\n",
					i+1, m.Meta.Title, m.Meta.Category, m.Meta.DocType, m.ChunkIndex, m.Score)
				fmt.Fprintf(out, "   %s\n", snippet(m.Text, 200))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of results")
	cmd.Flags().StringVar(&category, "category", "", "Filter by document category")
	cmd.Flags().StringVar(&docType, "doc-type", "", "Filter by document type")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Filter by tag (repeatable, any match)")

	return cmd
}

// snippet truncates s for single-line display.
func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

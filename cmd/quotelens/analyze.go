package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fireproofed/quotelens/internal/config"
	"github.com/fireproofed/quotelens/internal/intelligence"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <project-id>",
		Short: "Compare every quote in a project",
		Long: `Run the cross-quote intelligence analysis over a project's stored
quotes: pricing red flags, scope coverage gaps, detected systems and
supplier quality insights.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().Bool("json", false, "emit the raw analysis as JSON instead of the report")
	cmd.Flags().StringP("output", "o", "", "write JSON output to this file (implies --json)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	projectID := args[0]

	asJSON, _ := cmd.Flags().GetBool("json")
	output, _ := cmd.Flags().GetString("output")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	quotes, err := store.QuotesForProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load quotes: %w", err)
	}

	slog.Info("Analyzing project", "project", projectID, "quotes", len(quotes))

	analyzer := intelligence.New(config.LoadIntelligenceConfig())
	analysis := analyzer.Analyze(projectID, quotes)

	if asJSON || output != "" {
		return writeJSON(output, analysis)
	}

	formatter := intelligence.NewCLIFormatter()
	fmt.Println(formatter.FormatSummary(&analysis))
	return nil
}

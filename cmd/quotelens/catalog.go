package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fireproofed/quotelens/internal/model"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the reference item catalog",
		Long: `The reference catalog backs the similarity matcher's fuzzy fallback.
Items are partitioned by scope so different projects or trades can carry
independent catalogs.`,
	}

	cmd.AddCommand(catalogImportCmd())
	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogCountCmd())

	return cmd
}

func catalogImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <items.json>",
		Short: "Import reference items into a scope",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogImport,
	}

	cmd.Flags().String("scope", "", "catalog scope to import into (required)")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	scopeID, _ := cmd.Flags().GetString("scope")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var items []model.ReferenceItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	inserted, err := store.AddReferenceItems(ctx, scopeID, items)
	if err != nil {
		return fmt.Errorf("failed to import reference items: %w", err)
	}

	slog.Info("✅ Reference items imported", "scope", scopeID, "inserted", inserted, "skipped", len(items)-inserted)
	return nil
}

func catalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reference items in a scope",
		RunE:  runCatalogList,
	}

	cmd.Flags().String("scope", "", "catalog scope to list (required)")
	cmd.Flags().StringP("output", "o", "", "write the items to this file (default: stdout)")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	scopeID, _ := cmd.Flags().GetString("scope")
	output, _ := cmd.Flags().GetString("output")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	items, err := store.ReferenceItems(ctx, scopeID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.ReferenceItem{}
	}

	return writeJSON(output, items)
}

func catalogCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count reference items in a scope",
		RunE:  runCatalogCount,
	}

	cmd.Flags().String("scope", "", "catalog scope to count (required)")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func runCatalogCount(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	scopeID, _ := cmd.Flags().GetString("scope")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	count, err := store.CountReferenceItems(ctx, scopeID)
	if err != nil {
		return err
	}

	slog.Info("Reference catalog", "scope", scopeID, "items", count)
	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fireproofed/quotelens/internal/config"
	"github.com/fireproofed/quotelens/internal/extract"
	"github.com/fireproofed/quotelens/internal/provider"
	"github.com/fireproofed/quotelens/internal/validator"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <document.txt>",
		Short: "Extract structured quote data from a document",
		Long: `Run the two-pass extraction pipeline over a quote document's text.

The primary provider extracts a structured quote, the validator scores it,
and a corrective pass (and, when configured, a second provider consensus
pass) repairs low-confidence extractions.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringP("output", "o", "", "write the extraction result to this file (default: stdout)")
	cmd.Flags().String("project", "", "save the extracted quote under this project ID")
	cmd.Flags().Int("pages", 0, "page count of the source document")
	cmd.Flags().Bool("ocr", false, "mark the document text as OCR output")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	projectID, _ := cmd.Flags().GetString("project")
	pages, _ := cmd.Flags().GetInt("pages")
	ocr, _ := cmd.Flags().GetBool("ocr")

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	v := validator.New(config.LoadValidatorConfig())
	orchestrator := extract.New(v, config.LoadExtractConfig())

	primaryCfg, err := config.LoadProviderConfig("primary")
	if err != nil {
		return err
	}
	primary, err := provider.New(primaryCfg)
	if err != nil {
		return fmt.Errorf("failed to create primary provider: %w", err)
	}
	orchestrator.RegisterProvider(primary)

	if config.SecondaryProviderConfigured() {
		secondaryCfg, err := config.LoadProviderConfig("secondary")
		if err != nil {
			return err
		}
		secondary, err := provider.New(secondaryCfg)
		if err != nil {
			return fmt.Errorf("failed to create secondary provider: %w", err)
		}
		orchestrator.RegisterProvider(secondary)
	}

	slog.Info("Starting extraction", "document", args[0], "pages", pages, "ocr", ocr)

	result, err := orchestrator.Extract(ctx, string(text), extract.Metadata{
		PageCount: pages,
		OCRUsed:   ocr,
	})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	final := result.Final()
	slog.Info("Extraction complete",
		"supplier", final.Metadata.SupplierName,
		"line_items", len(final.LineItems),
		"method", result.ExtractionMetadata.Method,
		"confidence", result.ConfidenceBreakdown.Overall)

	if projectID != "" {
		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		quoteID, err := store.SaveQuote(ctx, projectID, &result, itemRecords(final))
		if err != nil {
			return fmt.Errorf("failed to save quote: %w", err)
		}
		slog.Info("Quote saved", "quote_id", quoteID, "project", projectID)
	}

	return writeJSON(output, result)
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/fireproofed/quotelens/internal/config"
	"github.com/fireproofed/quotelens/internal/match"
	"github.com/fireproofed/quotelens/internal/model"
	"github.com/fireproofed/quotelens/internal/normalise"
	"github.com/fireproofed/quotelens/internal/similarity"
)

// EnrichedItem is one line item with every derived facet attached.
type EnrichedItem struct {
	Item         model.LineItem            `json:"item"`
	Attributes   model.ExtractedAttributes `json:"attributes"`
	Unit         model.NormalizedUnit      `json:"unit"`
	SystemMatch  model.MatchResult         `json:"system_match"`
	SimilarItems []model.SimilarityMatch   `json:"similar_items,omitempty"`
	Completeness int                       `json:"completeness"`
}

// EnrichedQuote is the enrich command's output document.
type EnrichedQuote struct {
	Metadata   model.QuoteMetadata `json:"metadata"`
	Items      []EnrichedItem      `json:"items"`
	Financials model.Financials    `json:"financials"`
}

func enrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich <quote.json>",
		Short: "Enrich quote line items with attributes and system matches",
		Long: `Mine each line item's description for size, fire rating, service and
material attributes, normalize its unit, and match it against the system
template catalog. With --similarity, also look up the closest reference
catalog items for unmatched descriptions.`,
		Args: cobra.ExactArgs(1),
		RunE: runEnrich,
	}

	cmd.Flags().StringP("output", "o", "", "write the enriched quote to this file (default: stdout)")
	cmd.Flags().Bool("similarity", false, "query the similarity services for reference matches")
	cmd.Flags().String("scope", "", "reference catalog scope for similarity lookups")

	return cmd
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	useSimilarity, _ := cmd.Flags().GetBool("similarity")
	scopeID, _ := cmd.Flags().GetString("scope")

	schema, err := loadQuoteSchema(args[0])
	if err != nil {
		return err
	}

	var simMatcher *similarity.Matcher
	if useSimilarity {
		simCfg, err := config.LoadSimilarityConfig()
		if err != nil {
			return err
		}

		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		simMatcher, err = config.NewSimilarityMatcher(simCfg, store)
		if err != nil {
			return err
		}
	}

	matcher := match.New(match.DefaultTemplates, config.LoadMatchConfig())

	bar := progressbar.NewOptions(len(schema.LineItems),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Enriching line items...[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	enriched := EnrichedQuote{
		Metadata:   schema.Metadata,
		Financials: schema.Financials,
		Items:      make([]EnrichedItem, 0, len(schema.LineItems)),
	}

	reviewCount := 0
	for _, li := range schema.LineItems {
		attrs := normalise.ExtractAttributes(li.Description)
		unit := normalise.Unit(li.Unit)

		result := matcher.Match(match.Input{
			Service:  attrs.Service,
			Size:     attrs.Size,
			FRR:      attrs.FRR,
			Subclass: attrs.Subclass,
		})
		if result.NeedsReview {
			reviewCount++
		}

		item := EnrichedItem{
			Item:        li,
			Attributes:  attrs,
			Unit:        unit,
			SystemMatch: result,
			Completeness: normalise.ItemCompleteness(
				li.Quantity, li.UnitRate, li.Unit, li.Description, result.SystemID),
		}

		if simMatcher != nil && !result.Matched() {
			item.SimilarItems = simMatcher.FindSimilarItems(ctx, li.Description, scopeID,
				similarity.DefaultThreshold, similarity.DefaultLimit)
		}

		enriched.Items = append(enriched.Items, item)
		_ = bar.Add(1)
	}

	slog.Info("Enrichment complete",
		"items", len(enriched.Items),
		"needs_review", reviewCount)

	return writeJSON(output, enriched)
}

// Package extract orchestrates one or two pluggable extraction providers
// over a quote document: a primary pass, a validator-feedback corrective
// pass, and an optional consensus reconciliation between two independent
// extractions.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/model"
	"github.com/fireproofed/quotelens/internal/provider"
	"github.com/fireproofed/quotelens/internal/validator"
)

// Config holds the orchestrator's confidence thresholds.
type Config struct {
	// EarlyExitConfidence short-circuits further passes when the primary
	// extraction already validates this well.
	EarlyExitConfidence float64
	// ConsensusThreshold triggers the secondary provider when the first
	// pass validates below it.
	ConsensusThreshold float64
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		EarlyExitConfidence: 0.9,
		ConsensusThreshold:  0.7,
	}
}

// Metadata describes the document being extracted.
type Metadata struct {
	PageCount int
	OCRUsed   bool
}

// Orchestrator coordinates providers and the validator. Its four stages
// run strictly sequentially; no two provider calls ever overlap within one
// Extract invocation.
type Orchestrator struct {
	providers []provider.Extractor
	validator *validator.Validator
	cfg       Config
}

// New creates an orchestrator with no providers registered.
func New(v *validator.Validator, cfg Config) *Orchestrator {
	if cfg.EarlyExitConfidence <= 0 {
		cfg.EarlyExitConfidence = DefaultConfig().EarlyExitConfidence
	}
	if cfg.ConsensusThreshold <= 0 {
		cfg.ConsensusThreshold = DefaultConfig().ConsensusThreshold
	}
	return &Orchestrator{validator: v, cfg: cfg}
}

// RegisterProvider appends a provider. The first registered provider is
// primary; a second enables the consensus pass.
func (o *Orchestrator) RegisterProvider(p provider.Extractor) {
	o.providers = append(o.providers, p)
}

// Extract runs the full pipeline over the document text. The only
// unrecoverable condition is having no registered providers; every other
// failure mode degrades to the best record produced so far, except a
// primary-pass failure which propagates to the caller.
func (o *Orchestrator) Extract(ctx context.Context, text string, meta Metadata) (model.ExtractionResult, error) {
	started := time.Now()

	if len(o.providers) == 0 {
		return model.ExtractionResult{}, common.ErrNoProviders
	}

	schema := provider.QuoteSchema()
	primaryProvider := o.providers[0]

	primary, err := primaryProvider.Extract(ctx, text, schema)
	if err != nil {
		return model.ExtractionResult{}, fmt.Errorf("primary extraction failed: %w", err)
	}

	firstPass := o.validator.Validate(&primary)
	primary.Validation = &firstPass

	if firstPass.ConfidenceScore >= o.cfg.EarlyExitConfidence && firstPass.IsValid {
		return o.buildResult(&primary, nil, nil, started, meta,
			[]string{primaryProvider.Name()}, false, ""), nil
	}

	validated, correctiveRan, fallbackReason := o.runCorrectivePass(ctx, &primary, text, schema)

	if len(o.providers) > 1 && firstPass.ConfidenceScore < o.cfg.ConsensusThreshold {
		secondaryProvider := o.providers[1]

		secondary, secErr := secondaryProvider.Extract(ctx, text, schema)
		if secErr != nil {
			return model.ExtractionResult{}, fmt.Errorf("secondary extraction failed: %w", secErr)
		}

		secondPass := o.validator.Validate(&secondary)
		secondary.Validation = &secondPass

		consensus := buildConsensus(validated, &secondary)
		consensusPass := o.validator.Validate(consensus)
		consensus.Validation = &consensusPass

		return o.buildResult(validated, &secondary, consensus, started, meta,
			[]string{primaryProvider.Name(), secondaryProvider.Name()}, correctiveRan, fallbackReason), nil
	}

	return o.buildResult(validated, nil, nil, started, meta,
		[]string{primaryProvider.Name()}, correctiveRan, fallbackReason), nil
}

// runCorrectivePass re-invokes the primary provider with the validator's
// findings appended to the document. The corrected record is kept only when
// its confidence improves; any exception here falls back silently to the
// pre-correction record, with the reason preserved for observability.
func (o *Orchestrator) runCorrectivePass(ctx context.Context, initial *model.QuoteSchema, originalText string, schema provider.Schema) (result *model.QuoteSchema, ran bool, fallbackReason string) {
	validation := initial.Validation
	if validation == nil || len(validation.Errors) == 0 {
		return initial, false, ""
	}

	feedback := buildValidatorFeedback(validation)

	corrected, err := o.providers[0].Extract(ctx,
		originalText+"\n\n---VALIDATION FEEDBACK---\n"+feedback, schema)
	if err != nil {
		slog.Error("Corrective pass failed, keeping initial extraction", "error", err)
		return initial, true, fmt.Sprintf("corrective pass failed: %v", err)
	}

	revalidation := o.validator.Validate(&corrected)
	corrected.Validation = &revalidation

	if revalidation.ConfidenceScore > validation.ConfidenceScore {
		return &corrected, true, ""
	}

	return initial, true, "corrective pass did not improve confidence"
}

// buildResult assembles the final extraction result and its confidence
// breakdown.
func (o *Orchestrator) buildResult(
	primary, secondary, consensus *model.QuoteSchema,
	started time.Time,
	meta Metadata,
	modelsUsed []string,
	correctiveRan bool,
	fallbackReason string,
) model.ExtractionResult {
	final := primary
	if consensus != nil {
		final = consensus
	}

	method := model.MethodPrimary
	switch {
	case consensus != nil:
		method = model.MethodConsensus
	case correctiveRan:
		method = model.MethodFallback
	}

	breakdown := model.ConfidenceBreakdown{
		Overall:               final.Validation.ConfidenceScore,
		Metadata:              metadataConfidence(&final.Metadata),
		LineItems:             lineItemsConfidence(final.LineItems),
		Financials:            financialsConfidence(&final.Financials),
		CrossModelAgreement:   1.0,
		ArithmeticConsistency: arithmeticScore(final.Validation),
		FormatValidity:        formatScore(final.Validation),
	}
	if secondary != nil {
		breakdown.CrossModelAgreement = crossModelAgreement(primary, secondary)
	}

	return model.ExtractionResult{
		Primary:             primary,
		Secondary:           secondary,
		Consensus:           consensus,
		ConfidenceBreakdown: breakdown,
		ExtractionMetadata: model.ExtractionMetadata{
			ModelsUsed:       modelsUsed,
			Method:           method,
			ProcessingTimeMS: time.Since(started).Milliseconds(),
			PageCount:        meta.PageCount,
			OCRUsed:          meta.OCRUsed,
			FallbackReason:   fallbackReason,
		},
	}
}

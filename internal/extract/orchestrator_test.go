package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fireproofed/quotelens/internal/model"
	"github.com/fireproofed/quotelens/internal/provider"
	"github.com/fireproofed/quotelens/internal/validator"
)

// mockExtractor replays scripted extractions and records the text each
// call received.
type mockExtractor struct {
	name    string
	results []model.QuoteSchema
	errs    []error
	texts   []string
}

func (m *mockExtractor) Name() string { return m.name }

func (m *mockExtractor) Extract(_ context.Context, text string, _ provider.Schema) (model.QuoteSchema, error) {
	i := len(m.texts)
	m.texts = append(m.texts, text)

	if i < len(m.errs) && m.errs[i] != nil {
		return model.QuoteSchema{}, m.errs[i]
	}
	if i >= len(m.results) {
		i = len(m.results) - 1
	}
	return m.results[i], nil
}

func goodQuote() model.QuoteSchema {
	return model.QuoteSchema{
		Metadata: model.QuoteMetadata{
			SupplierName: "Apex Passive Fire",
			QuoteNumber:  "Q-1001",
			QuoteDate:    time.Now().AddDate(0, -1, 0).Format("2006-01-02"),
			Currency:     "NZD",
		},
		LineItems: []model.LineItem{
			{Description: "Fire collar to 100mm PVC pipe", Quantity: 10, Unit: "ea", UnitRate: 5.00, LineTotal: 50.00},
		},
		Financials: model.Financials{
			Subtotal: 50.00, TaxRate: 0.15, TaxAmount: 7.50, GrandTotal: 57.50, Currency: "NZD",
		},
	}
}

// arithmeticallyOffQuote carries one high-severity arithmetic error.
func arithmeticallyOffQuote() model.QuoteSchema {
	q := goodQuote()
	q.LineItems[0].LineTotal = 75.00
	q.Financials.Subtotal = 75.00
	q.Financials.TaxAmount = 11.25
	q.Financials.GrandTotal = 86.25
	return q
}

// unattributedQuote is missing its supplier, a critical failure.
func unattributedQuote() model.QuoteSchema {
	q := goodQuote()
	q.Metadata.SupplierName = ""
	return q
}

func newOrchestrator(providers ...provider.Extractor) *Orchestrator {
	o := New(validator.New(validator.DefaultConfig()), DefaultConfig())
	for _, p := range providers {
		o.RegisterProvider(p)
	}
	return o
}

func TestExtract_NoProviders(t *testing.T) {
	o := newOrchestrator()
	_, err := o.Extract(context.Background(), "doc", Metadata{})
	assert.Error(t, err)
}

func TestExtract_PrimaryFailurePropagates(t *testing.T) {
	primary := &mockExtractor{name: "openai/gpt-4o", errs: []error{errors.New("rate limited")}}
	o := newOrchestrator(primary)

	_, err := o.Extract(context.Background(), "doc", Metadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary extraction failed")
}

func TestExtract_EarlyExit(t *testing.T) {
	primary := &mockExtractor{name: "openai/gpt-4o", results: []model.QuoteSchema{goodQuote()}}
	o := newOrchestrator(primary)

	result, err := o.Extract(context.Background(), "doc", Metadata{PageCount: 3})
	require.NoError(t, err)

	assert.Equal(t, model.MethodPrimary, result.ExtractionMetadata.Method)
	assert.Nil(t, result.Secondary)
	assert.Nil(t, result.Consensus)
	assert.Len(t, primary.texts, 1, "a clean first pass should skip correction")
	assert.Equal(t, []string{"openai/gpt-4o"}, result.ExtractionMetadata.ModelsUsed)
	assert.Equal(t, 3, result.ExtractionMetadata.PageCount)
	assert.InDelta(t, 1.0, result.ConfidenceBreakdown.Overall, 0.001)
	assert.InDelta(t, 1.0, result.ConfidenceBreakdown.CrossModelAgreement, 0.001)
}

func TestExtract_CorrectivePassKeepsImprovement(t *testing.T) {
	primary := &mockExtractor{
		name:    "openai/gpt-4o",
		results: []model.QuoteSchema{arithmeticallyOffQuote(), goodQuote()},
	}
	o := newOrchestrator(primary)

	result, err := o.Extract(context.Background(), "doc", Metadata{})
	require.NoError(t, err)

	require.Len(t, primary.texts, 2)
	assert.Contains(t, primary.texts[1], "---VALIDATION FEEDBACK---")
	assert.Contains(t, primary.texts[1], "doc")

	assert.Equal(t, model.MethodFallback, result.ExtractionMetadata.Method)
	assert.Empty(t, result.ExtractionMetadata.FallbackReason)
	assert.InDelta(t, 1.0, result.Final().Validation.ConfidenceScore, 0.001)
	assert.InDelta(t, 50.00, result.Final().LineItems[0].LineTotal, 0.001)
}

func TestExtract_CorrectivePassDiscardsNonImprovement(t *testing.T) {
	primary := &mockExtractor{
		name:    "openai/gpt-4o",
		results: []model.QuoteSchema{arithmeticallyOffQuote(), arithmeticallyOffQuote()},
	}
	o := newOrchestrator(primary)

	result, err := o.Extract(context.Background(), "doc", Metadata{})
	require.NoError(t, err)

	assert.Equal(t, model.MethodFallback, result.ExtractionMetadata.Method)
	assert.Equal(t, "corrective pass did not improve confidence", result.ExtractionMetadata.FallbackReason)
	assert.InDelta(t, 75.00, result.Final().LineItems[0].LineTotal, 0.001)
}

func TestExtract_CorrectiveErrorKeepsInitial(t *testing.T) {
	primary := &mockExtractor{
		name:    "openai/gpt-4o",
		results: []model.QuoteSchema{arithmeticallyOffQuote()},
		errs:    []error{nil, errors.New("timeout")},
	}
	o := newOrchestrator(primary)

	result, err := o.Extract(context.Background(), "doc", Metadata{})
	require.NoError(t, err)

	assert.Equal(t, model.MethodFallback, result.ExtractionMetadata.Method)
	assert.True(t, strings.HasPrefix(result.ExtractionMetadata.FallbackReason, "corrective pass failed"))
	assert.InDelta(t, 75.00, result.Final().LineItems[0].LineTotal, 0.001)
}

func TestExtract_ConsensusPass(t *testing.T) {
	primary := &mockExtractor{
		name:    "openai/gpt-4o",
		results: []model.QuoteSchema{unattributedQuote(), unattributedQuote()},
	}
	secondary := &mockExtractor{
		name:    "anthropic/claude",
		results: []model.QuoteSchema{goodQuote()},
	}
	o := newOrchestrator(primary, secondary)

	result, err := o.Extract(context.Background(), "doc", Metadata{})
	require.NoError(t, err)

	assert.Equal(t, model.MethodConsensus, result.ExtractionMetadata.Method)
	require.NotNil(t, result.Consensus)
	require.NotNil(t, result.Secondary)
	assert.Equal(t, []string{"openai/gpt-4o", "anthropic/claude"}, result.ExtractionMetadata.ModelsUsed)

	// The merge recovers the supplier from the secondary extraction
	assert.Equal(t, "Apex Passive Fire", result.Final().Metadata.SupplierName)
	assert.True(t, result.Final().Validation.IsValid)

	// Suppliers disagreed; item counts and totals agreed
	assert.InDelta(t, 2.0/3.0, result.ConfidenceBreakdown.CrossModelAgreement, 0.001)
}

func TestExtract_SecondaryFailurePropagates(t *testing.T) {
	primary := &mockExtractor{
		name:    "openai/gpt-4o",
		results: []model.QuoteSchema{unattributedQuote(), unattributedQuote()},
	}
	secondary := &mockExtractor{
		name: "anthropic/claude",
		errs: []error{errors.New("overloaded")},
	}
	o := newOrchestrator(primary, secondary)

	_, err := o.Extract(context.Background(), "doc", Metadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secondary extraction failed")
}

func TestExtract_HighConfidenceSkipsConsensus(t *testing.T) {
	// One high-severity error leaves confidence at 0.85: below early
	// exit, above the consensus threshold.
	primary := &mockExtractor{
		name:    "openai/gpt-4o",
		results: []model.QuoteSchema{arithmeticallyOffQuote(), arithmeticallyOffQuote()},
	}
	secondary := &mockExtractor{
		name:    "anthropic/claude",
		results: []model.QuoteSchema{goodQuote()},
	}
	o := newOrchestrator(primary, secondary)

	result, err := o.Extract(context.Background(), "doc", Metadata{})
	require.NoError(t, err)

	assert.Nil(t, result.Consensus)
	assert.Empty(t, secondary.texts, "secondary provider should not run")
	assert.Equal(t, model.MethodFallback, result.ExtractionMetadata.Method)
}

func TestBuildValidatorFeedback(t *testing.T) {
	validation := &model.ValidationResult{
		Errors: []model.ValidationError{
			{Message: "Line item 1: Qty × Rate ≠ Total", Expected: "50.00", Actual: "75.00"},
			{Message: "Grand total must be greater than zero"},
		},
		Warnings: []model.ValidationWarning{
			{Message: "Non-standard unit", Suggestion: "m²"},
		},
	}

	feedback := buildValidatorFeedback(validation)

	assert.Contains(t, feedback, "1. Line item 1")
	assert.Contains(t, feedback, "Expected: 50.00, Got: 75.00")
	assert.Contains(t, feedback, "2. Grand total")
	assert.Contains(t, feedback, "Suggestion: m²")
	assert.Contains(t, feedback, "quantity × unit_rate = line_total")
}

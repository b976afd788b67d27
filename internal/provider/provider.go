// Package provider implements the pluggable extraction providers that turn
// raw quote text into structured schemas via hosted language models.
package provider

import (
	"context"

	"github.com/fireproofed/quotelens/internal/model"
)

// Extractor is the capability interface every extraction provider
// implements. Providers are registered with the orchestrator in priority
// order; index 0 is primary.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, text string, schema Schema) (model.QuoteSchema, error)
}

// Config holds provider construction options.
type Config struct {
	Provider          string
	APIKey            string
	Model             string
	Temperature       float64
	MaxTokens         int
	RequestsPerMinute int
}

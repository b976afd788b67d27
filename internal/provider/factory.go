package provider

import (
	"fmt"
	"strings"

	"github.com/fireproofed/quotelens/internal/common"
)

// New creates an extraction provider based on the provided configuration.
func New(cfg Config) (Extractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIExtractor(cfg)
	case "anthropic":
		return newAnthropicExtractor(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported extraction provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}

package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/extract"
	"github.com/fireproofed/quotelens/internal/intelligence"
	"github.com/fireproofed/quotelens/internal/match"
	"github.com/fireproofed/quotelens/internal/similarity"
	"github.com/fireproofed/quotelens/internal/validator"
)

// LoadValidatorConfig reads validation thresholds, falling back to defaults
// for anything unset.
func LoadValidatorConfig() validator.Config {
	cfg := validator.DefaultConfig()
	if v := viper.GetFloat64("validation.rounding_tolerance"); v > 0 {
		cfg.RoundingTolerance = v
	}
	if v := viper.GetFloat64("validation.suspicious_quantity"); v > 0 {
		cfg.SuspiciousQty = v
	}
	if v := viper.GetFloat64("validation.min_unit_rate"); v > 0 {
		cfg.MinUnitRate = v
	}
	if v := viper.GetFloat64("validation.max_unit_rate"); v > 0 {
		cfg.MaxUnitRate = v
	}
	return cfg
}

// LoadExtractConfig reads orchestrator thresholds.
func LoadExtractConfig() extract.Config {
	cfg := extract.DefaultConfig()
	if v := viper.GetFloat64("extraction.early_exit_confidence"); v > 0 {
		cfg.EarlyExitConfidence = v
	}
	if v := viper.GetFloat64("extraction.consensus_threshold"); v > 0 {
		cfg.ConsensusThreshold = v
	}
	return cfg
}

// LoadMatchConfig reads system matcher thresholds.
func LoadMatchConfig() match.Config {
	cfg := match.DefaultConfig()
	if v := viper.GetFloat64("matching.review_threshold"); v > 0 {
		cfg.ReviewThreshold = v
	}
	return cfg
}

// LoadIntelligenceConfig reads analyzer thresholds.
func LoadIntelligenceConfig() intelligence.Config {
	cfg := intelligence.DefaultConfig()
	if v := viper.GetFloat64("intelligence.low_confidence"); v > 0 {
		cfg.LowConfidence = v
	}
	return cfg
}

// SimilarityConfig holds the endpoints backing the similarity matcher.
type SimilarityConfig struct {
	EmbeddingURL    string
	EmbeddingAPIKey string
	SearchURL       string
	SearchAPIKey    string
}

// LoadSimilarityConfig loads the embedding and vector search endpoints.
// Both services are required for semantic matching; the caller decides
// whether missing configuration is fatal or degrades to fuzzy matching.
func LoadSimilarityConfig() (SimilarityConfig, error) {
	cfg := SimilarityConfig{
		EmbeddingURL:    viper.GetString("similarity.embedding_url"),
		EmbeddingAPIKey: viper.GetString("similarity.embedding_api_key"),
		SearchURL:       viper.GetString("similarity.search_url"),
		SearchAPIKey:    viper.GetString("similarity.search_api_key"),
	}

	if cfg.EmbeddingURL == "" {
		return cfg, fmt.Errorf("similarity.embedding_url: %w", common.ErrMissingConfig)
	}
	if cfg.SearchURL == "" {
		return cfg, fmt.Errorf("similarity.search_url: %w", common.ErrMissingConfig)
	}
	return cfg, nil
}

// NewSimilarityMatcher wires a matcher from configuration. A nil catalog is
// allowed; the fuzzy fallback is then limited to vector search results.
func NewSimilarityMatcher(cfg SimilarityConfig, catalog similarity.CatalogReader) (*similarity.Matcher, error) {
	embedder, err := similarity.NewHTTPEmbeddingClient(cfg.EmbeddingURL, cfg.EmbeddingAPIKey)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}
	searcher, err := similarity.NewRPCVectorSearcher(cfg.SearchURL, cfg.SearchAPIKey)
	if err != nil {
		return nil, fmt.Errorf("creating vector searcher: %w", err)
	}
	return similarity.NewMatcher(embedder, searcher, catalog), nil
}

// DatabasePath returns the configured database location.
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	return DefaultDatabasePath()
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/provider"
)

// LoadProviderConfig loads extraction provider configuration from Viper and
// environment variables. It follows this precedence:
// 1. Viper configuration (from config file or QUOTELENS_ env vars)
// 2. Direct environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY)
// 3. Default values
//
// name selects which provider block to read ("primary" or "secondary"); an
// empty name reads "primary".
func LoadProviderConfig(name string) (provider.Config, error) {
	if name == "" {
		name = "primary"
	}
	prefix := "providers." + name

	cfg := provider.Config{
		Provider:          viper.GetString(prefix + ".name"),
		APIKey:            viper.GetString(prefix + ".api_key"),
		Model:             viper.GetString(prefix + ".model"),
		Temperature:       viper.GetFloat64(prefix + ".temperature"),
		MaxTokens:         viper.GetInt(prefix + ".max_tokens"),
		RequestsPerMinute: viper.GetInt(prefix + ".requests_per_minute"),
	}

	if cfg.Provider == "" && name == "primary" {
		cfg.Provider = "openai"
	}

	if cfg.APIKey == "" {
		cfg.APIKey = apiKeyFromEnv(cfg.Provider)
	}

	if cfg.Provider == "" {
		return provider.Config{}, fmt.Errorf("provider %q: %w", name, common.ErrMissingConfig)
	}
	if cfg.APIKey == "" {
		return provider.Config{}, fmt.Errorf("provider %q has no API key: %w", name, common.ErrMissingConfig)
	}

	return cfg, nil
}

// SecondaryProviderConfigured reports whether a secondary extraction
// provider is available for consensus passes.
func SecondaryProviderConfigured() bool {
	name := viper.GetString("providers.secondary.name")
	if name == "" {
		return false
	}
	if viper.GetString("providers.secondary.api_key") != "" {
		return true
	}
	return apiKeyFromEnv(name) != ""
}

func apiKeyFromEnv(providerName string) string {
	switch strings.ToLower(providerName) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

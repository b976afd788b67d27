package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/model"
)

// anthropicExtractor implements Extractor against the Anthropic messages API.
type anthropicExtractor struct {
	httpClient  *http.Client
	limiter     *rateLimiter
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

func newAnthropicExtractor(cfg Config) (Extractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "claude-sonnet-4-20250514"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	return &anthropicExtractor{
		apiKey:      cfg.APIKey,
		model:       modelName,
		temperature: temperature,
		maxTokens:   maxTokens,
		limiter:     newRateLimiter(cfg.RequestsPerMinute),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

func (c *anthropicExtractor) Name() string {
	return "anthropic/" + c.model
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Extract sends the document text and schema to Anthropic and parses the
// returned quote record.
func (c *anthropicExtractor) Extract(ctx context.Context, text string, schema Schema) (model.QuoteSchema, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return model.QuoteSchema{}, err
	}

	prompt, err := extractionPrompt(text, schema)
	if err != nil {
		return model.QuoteSchema{}, err
	}

	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
		"system":      systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return model.QuoteSchema{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := postWithRetry(ctx, c.httpClient, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", strings.NewReader(string(jsonBody)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", "2023-06-01")
		return req, nil
	})
	if err != nil {
		return model.QuoteSchema{}, fmt.Errorf("anthropic request failed: %w", err)
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return model.QuoteSchema{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Content) == 0 {
		return model.QuoteSchema{}, fmt.Errorf("%w: no content in response", common.ErrExtractionFailed)
	}

	return parseQuoteJSON(response.Content[0].Text)
}

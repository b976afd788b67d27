package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fireproofed/quotelens/internal/common"
)

// EmbeddingClient obtains a vector embedding for a piece of text.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// HTTPEmbeddingClient calls an external embedding function endpoint with
// bearer auth: POST {text} -> {embedding: [...]}.
type HTTPEmbeddingClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewHTTPEmbeddingClient creates an embedding client for the given endpoint.
func NewHTTPEmbeddingClient(endpoint, apiKey string) (*HTTPEmbeddingClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("embedding endpoint is required")
	}
	return &HTTPEmbeddingClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Embed requests an embedding for the text.
func (c *HTTPEmbeddingClient) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEmbeddingUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d): %s", common.ErrEmbeddingUnavailable, resp.StatusCode, respBody)
	}

	var parsed struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("embedding API returned empty vector")
	}

	return parsed.Embedding, nil
}

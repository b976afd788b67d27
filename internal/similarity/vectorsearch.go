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
	"github.com/fireproofed/quotelens/internal/model"
)

// SearchQuery is one vector-similarity search request, scoped to the
// caller's catalog partition.
type SearchQuery struct {
	QueryEmbedding []float64 `json:"query_embedding"`
	MatchThreshold float64   `json:"match_threshold"`
	MatchCount     int       `json:"match_count"`
	ScopeID        string    `json:"scope_id"`
}

// VectorSearcher finds catalog items near an embedding.
type VectorSearcher interface {
	Search(ctx context.Context, query SearchQuery) ([]model.SimilarityMatch, error)
}

// CatalogReader provides the scope-keyed reference-item rows used by the
// fuzzy fallback when the remote search is unavailable.
type CatalogReader interface {
	ReferenceItems(ctx context.Context, scopeID string) ([]model.ReferenceItem, error)
}

// RPCVectorSearcher calls a remote similarity-search procedure over HTTP.
type RPCVectorSearcher struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewRPCVectorSearcher creates a vector search client for the given endpoint.
func NewRPCVectorSearcher(endpoint, apiKey string) (*RPCVectorSearcher, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("vector search endpoint is required")
	}
	return &RPCVectorSearcher{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type searchRow struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
	SystemCode  string  `json:"system_code"`
	Trade       string  `json:"trade"`
	Unit        string  `json:"unit"`
}

// Search issues one similarity query.
func (s *RPCVectorSearcher) Search(ctx context.Context, query SearchQuery) ([]model.SimilarityMatch, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSearchUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d): %s", common.ErrSearchUnavailable, resp.StatusCode, respBody)
	}

	var rows []searchRow
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	matches := make([]model.SimilarityMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, model.SimilarityMatch{
			Description:         row.Description,
			SimilarityScore:     row.Similarity,
			SuggestedSystemCode: row.SystemCode,
			SuggestedTrade:      row.Trade,
			SuggestedUnit:       row.Unit,
			ReferenceItemID:     row.ID,
		})
	}

	return matches, nil
}

// Package similarity finds catalog items similar to free-text descriptions
// via an external embedding and vector-search service, degrading to an
// in-process fuzzy match whenever the remote path is unavailable.
package similarity

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/model"
)

// Default query parameters.
const (
	DefaultThreshold  = 0.7
	DefaultLimit      = 5
	batchMatchCount   = 3
	embeddingCacheCap = 100
)

// Matcher resolves similar catalog items for line-item descriptions.
// Caches are process-local; concurrent fetches for the same key may
// duplicate an upstream call but never corrupt cached state.
type Matcher struct {
	embedder EmbeddingClient
	searcher VectorSearcher
	catalog  CatalogReader

	embeddings *boundedCache[[]float64]
	references *boundedCache[[]model.ReferenceItem]
}

// NewMatcher creates a similarity matcher over the given collaborators.
func NewMatcher(embedder EmbeddingClient, searcher VectorSearcher, catalog CatalogReader) *Matcher {
	return &Matcher{
		embedder:   embedder,
		searcher:   searcher,
		catalog:    catalog,
		embeddings: newBoundedCache[[]float64](embeddingCacheCap),
		references: newBoundedCache[[]model.ReferenceItem](embeddingCacheCap),
	}
}

// FindSimilarItems returns catalog items similar to the description within
// the caller's scope. Any failure in the embedding or search step falls
// back to deterministic fuzzy matching over the cached reference list.
func (m *Matcher) FindSimilarItems(ctx context.Context, description, scopeID string, threshold float64, limit int) []model.SimilarityMatch {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	embedding, err := m.getEmbedding(ctx, description)
	if err == nil {
		matches, searchErr := m.searcher.Search(ctx, SearchQuery{
			QueryEmbedding: embedding,
			MatchThreshold: threshold,
			MatchCount:     limit,
			ScopeID:        scopeID,
		})
		if searchErr == nil {
			return matches
		}
		err = searchErr
	}

	slog.Warn("Similarity search failed, falling back to fuzzy matching",
		"scope_id", scopeID, "error", err)

	return m.fallbackFuzzyMatch(ctx, description, scopeID, limit)
}

// BatchMatchLineItems matches many descriptions at once. Embeddings are
// computed concurrently; the similarity queries then run one at a time.
// Descriptions whose embedding failed are skipped, not fatal.
func (m *Matcher) BatchMatchLineItems(ctx context.Context, descriptions []string, scopeID string) map[int][]model.SimilarityMatch {
	embeddings := make([][]float64, len(descriptions))

	g, gctx := errgroup.WithContext(ctx)
	for i, description := range descriptions {
		g.Go(func() error {
			embedding, err := m.getEmbedding(gctx, description)
			if err != nil {
				slog.Warn("Embedding failed for batch item", "index", i, "error", err)
				return nil
			}
			embeddings[i] = embedding
			return nil
		})
	}
	// Workers only log failures, so the group error is always nil.
	_ = g.Wait()

	results := make(map[int][]model.SimilarityMatch)
	for i := range descriptions {
		if len(embeddings[i]) == 0 {
			continue
		}

		matches, err := m.searcher.Search(ctx, SearchQuery{
			QueryEmbedding: embeddings[i],
			MatchThreshold: DefaultThreshold,
			MatchCount:     batchMatchCount,
			ScopeID:        scopeID,
		})
		if err != nil {
			slog.Warn("Batch similarity query failed", "index", i, "error", err)
			continue
		}
		if len(matches) > 0 {
			results[i] = matches
		}
	}

	return results
}

// getEmbedding returns the embedding for the exact text, consulting the
// bounded insertion-ordered cache first.
func (m *Matcher) getEmbedding(ctx context.Context, text string) ([]float64, error) {
	if cached, ok := m.embeddings.get(text); ok {
		return cached, nil
	}

	embedding, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	m.embeddings.set(text, embedding)
	return embedding, nil
}

// fallbackFuzzyMatch runs the deterministic token heuristic over the
// scope's reference items.
func (m *Matcher) fallbackFuzzyMatch(ctx context.Context, description, scopeID string, limit int) []model.SimilarityMatch {
	items, err := m.getReferenceItems(ctx, scopeID)
	if err != nil {
		common.LogError(err, "Failed to load reference items for fuzzy fallback",
			common.Fields{"scope_id": scopeID})
		return nil
	}
	return fuzzyMatch(description, items, limit)
}

func (m *Matcher) getReferenceItems(ctx context.Context, scopeID string) ([]model.ReferenceItem, error) {
	if cached, ok := m.references.get(scopeID); ok {
		return cached, nil
	}

	items, err := m.catalog.ReferenceItems(ctx, scopeID)
	if err != nil {
		return nil, err
	}

	m.references.set(scopeID, items)
	return items, nil
}

// ClearCache drops both the embedding and reference-item caches.
func (m *Matcher) ClearCache() {
	m.embeddings.clear()
	m.references.clear()
}

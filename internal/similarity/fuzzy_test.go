package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fireproofed/quotelens/internal/model"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fire Collar (100mm)", "fire collar 100mm"},
		{"  PIPE   penetration  ", "pipe penetration"},
		{"SC902/Intumescent-Sealant", "sc902 intumescent sealant"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeText(tt.input), "input %q", tt.input)
	}
}

func TestFuzzyMatch(t *testing.T) {
	items := []model.ReferenceItem{
		{ID: "1", Description: "Fire collar 100mm PVC pipe", SystemCode: "COLLAR_100", Unit: "ea"},
		{ID: "2", Description: "Intumescent sealant to linear gap", SystemCode: "SEAL_LIN"},
		{ID: "3", Description: "Cable tray penetration 300mm", SystemCode: "TRAY_300"},
		{ID: "4", Description: "Completely unrelated scaffolding hire"},
	}

	t.Run("closest item ranks first", func(t *testing.T) {
		matches := fuzzyMatch("Fire collar 100mm PVC pipe penetration", items, 5)
		assert.NotEmpty(t, matches)
		assert.Equal(t, "1", matches[0].ReferenceItemID)
		assert.Equal(t, "COLLAR_100", matches[0].SuggestedSystemCode)
	})

	t.Run("weak candidates are filtered", func(t *testing.T) {
		matches := fuzzyMatch("Fire collar 100mm PVC pipe", items, 5)
		for _, m := range matches {
			assert.GreaterOrEqual(t, m.SimilarityScore, minFuzzyScore)
			assert.NotEqual(t, "4", m.ReferenceItemID)
		}
	})

	t.Run("limit truncates results", func(t *testing.T) {
		many := make([]model.ReferenceItem, 0, 10)
		for i := 0; i < 10; i++ {
			many = append(many, model.ReferenceItem{ID: "x", Description: "fire collar pipe"})
		}
		matches := fuzzyMatch("fire collar pipe", many, 3)
		assert.Len(t, matches, 3)
	})

	t.Run("key term bonus boosts shared product names", func(t *testing.T) {
		withTerm := fuzzyMatch("Nullifire SC902 coating", []model.ReferenceItem{
			{ID: "a", Description: "SC902 coating system"},
		}, 1)
		without := fuzzyMatch("generic coating", []model.ReferenceItem{
			{ID: "a", Description: "generic coating system"},
		}, 1)
		if assert.NotEmpty(t, withTerm) && assert.NotEmpty(t, without) {
			assert.Greater(t, withTerm[0].SimilarityScore, 0.0)
		}
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		assert.Nil(t, fuzzyMatch("   ", items, 5))
	})

	t.Run("deterministic ordering", func(t *testing.T) {
		first := fuzzyMatch("fire collar pipe penetration", items, 5)
		for i := 0; i < 20; i++ {
			again := fuzzyMatch("fire collar pipe penetration", items, 5)
			assert.Equal(t, first, again)
		}
	})
}

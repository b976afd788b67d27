package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain json untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.content))
		})
	}
}

func TestParseQuoteJSON(t *testing.T) {
	payload := `{
		"metadata": {"supplier_name": "Apex Passive Fire", "currency": "NZD"},
		"line_items": [
			{"description": "Fire collar to 100mm PVC pipe", "quantity": 10, "unit": "ea", "unit_rate": 5, "line_total": 50}
		],
		"financials": {"subtotal": 50, "grand_total": 57.5}
	}`

	t.Run("direct parse", func(t *testing.T) {
		quote, err := parseQuoteJSON(payload)
		require.NoError(t, err)
		assert.Equal(t, "Apex Passive Fire", quote.Metadata.SupplierName)
		require.Len(t, quote.LineItems, 1)
		assert.InDelta(t, 50, quote.LineItems[0].LineTotal, 0.001)
		assert.InDelta(t, 57.5, quote.Financials.GrandTotal, 0.001)
	})

	t.Run("fenced response", func(t *testing.T) {
		quote, err := parseQuoteJSON("```json\n" + payload + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Apex Passive Fire", quote.Metadata.SupplierName)
	})

	t.Run("leading prose", func(t *testing.T) {
		quote, err := parseQuoteJSON("Here is the extracted quote:\n" + payload)
		require.NoError(t, err)
		assert.Equal(t, "Apex Passive Fire", quote.Metadata.SupplierName)
	})

	t.Run("no json object", func(t *testing.T) {
		_, err := parseQuoteJSON("the document contains no quote")
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := parseQuoteJSON(`prose {"metadata": {"supplier_name": } more`)
		assert.Error(t, err)
	})
}

func TestExtractionPrompt(t *testing.T) {
	prompt, err := extractionPrompt("QUOTE Q-1001 from Apex", QuoteSchema())
	require.NoError(t, err)

	assert.Contains(t, prompt, "quantity × unit_rate = line_total")
	assert.Contains(t, prompt, "DOCUMENT:")
	assert.Contains(t, prompt, "QUOTE Q-1001 from Apex")
	assert.Contains(t, prompt, "supplier_name")
}

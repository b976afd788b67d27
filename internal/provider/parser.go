package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// cleanMarkdownWrapper strips markdown code fences that models sometimes
// wrap around JSON despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}

// parseQuoteJSON decodes a provider's text response into a quote schema.
// It tolerates leading prose by scanning to the first '{' when a direct
// parse fails.
func parseQuoteJSON(content string) (model.QuoteSchema, error) {
	content = cleanMarkdownWrapper(content)

	var quote model.QuoteSchema
	if err := json.Unmarshal([]byte(content), &quote); err == nil {
		return quote, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return model.QuoteSchema{}, fmt.Errorf("no JSON object found in response")
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), &quote); err != nil {
		return model.QuoteSchema{}, fmt.Errorf("failed to parse quote JSON: %w", err)
	}

	return quote, nil
}

// extractionPrompt builds the user message sent to a provider.
func extractionPrompt(text string, schema Schema) (string, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	var b strings.Builder
	b.WriteString("Extract the supplier price quote below into JSON matching this schema:\n\n")
	b.Write(schemaJSON)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Every line item must satisfy quantity × unit_rate = line_total.\n")
	b.WriteString("- Use numeric values for all money and quantity fields, no currency symbols.\n")
	b.WriteString("- Set each line item's confidence to your certainty in that row, 0 to 1.\n")
	b.WriteString("- Leave fields you cannot find empty rather than guessing.\n")
	b.WriteString("\nDOCUMENT:\n")
	b.WriteString(text)

	return b.String(), nil
}

const systemPrompt = "You are a construction quote extraction engine. You MUST respond with ONLY a valid JSON object matching the provided schema. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."

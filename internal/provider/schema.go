package provider

// Schema is the JSON schema advertised to providers describing the quote
// structure they must return.
type Schema map[string]any

// QuoteSchema builds the advertised extraction schema: supplier name and
// currency are mandatory metadata, every line item must carry its pricing
// fields, and the financials block must include a grand total.
func QuoteSchema() Schema {
	return Schema{
		"type": "object",
		"properties": map[string]any{
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"supplier_name":   map[string]any{"type": "string"},
					"quote_number":    map[string]any{"type": "string"},
					"quote_date":      map[string]any{"type": "string"},
					"quote_reference": map[string]any{"type": "string"},
					"project_name":    map[string]any{"type": "string"},
					"customer_name":   map[string]any{"type": "string"},
					"currency":        map[string]any{"type": "string"},
					"payment_terms":   map[string]any{"type": "string"},
					"validity_period": map[string]any{"type": "string"},
				},
				"required": []string{"supplier_name", "currency"},
			},
			"line_items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"line_number": map[string]any{"type": "number"},
						"item_code":   map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"quantity":    map[string]any{"type": "number"},
						"unit":        map[string]any{"type": "string"},
						"unit_rate":   map[string]any{"type": "number"},
						"line_total":  map[string]any{"type": "number"},
						"trade":       map[string]any{"type": "string"},
						"system_code": map[string]any{"type": "string"},
						"fire_rating": map[string]any{"type": "string"},
						"notes":       map[string]any{"type": "string"},
						"confidence":  map[string]any{"type": "number"},
					},
					"required": []string{"description", "quantity", "unit", "unit_rate", "line_total"},
				},
			},
			"financials": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subtotal":    map[string]any{"type": "number"},
					"tax_rate":    map[string]any{"type": "number"},
					"tax_amount":  map[string]any{"type": "number"},
					"discount":    map[string]any{"type": "number"},
					"grand_total": map[string]any{"type": "number"},
					"currency":    map[string]any{"type": "string"},
				},
				"required": []string{"grand_total", "currency"},
			},
		},
		"required": []string{"metadata", "line_items", "financials"},
	}
}

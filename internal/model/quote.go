// Package model defines the core domain models used throughout the application.
package model

// QuoteSchema represents one structured extraction of a supplier quote document.
// Instances are ephemeral: created per extraction attempt, validated, optionally
// merged into a consensus instance, then handed back to the caller.
type QuoteSchema struct {
	Metadata   QuoteMetadata     `json:"metadata"`
	LineItems  []LineItem        `json:"line_items"`
	Financials Financials        `json:"financials"`
	Validation *ValidationResult `json:"validation,omitempty"`
}

// QuoteMetadata holds the document-level fields of a quote.
type QuoteMetadata struct {
	SupplierName   string `json:"supplier_name"`
	QuoteNumber    string `json:"quote_number"`
	QuoteDate      string `json:"quote_date"`
	QuoteReference string `json:"quote_reference,omitempty"`
	ProjectName    string `json:"project_name,omitempty"`
	CustomerName   string `json:"customer_name,omitempty"`
	Currency       string `json:"currency"`
	PaymentTerms   string `json:"payment_terms,omitempty"`
	ValidityPeriod string `json:"validity_period,omitempty"`
}

// LineItem is one priced scope item on a quote.
type LineItem struct {
	LineNumber  int     `json:"line_number,omitempty"`
	ItemCode    string  `json:"item_code,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitRate    float64 `json:"unit_rate"`
	LineTotal   float64 `json:"line_total"`
	Trade       string  `json:"trade,omitempty"`
	SystemCode  string  `json:"system_code,omitempty"`
	FireRating  string  `json:"fire_rating,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Financials holds the quote-level money fields.
type Financials struct {
	Subtotal   float64 `json:"subtotal"`
	TaxRate    float64 `json:"tax_rate,omitempty"`
	TaxAmount  float64 `json:"tax_amount,omitempty"`
	Discount   float64 `json:"discount,omitempty"`
	GrandTotal float64 `json:"grand_total"`
	Currency   string  `json:"currency"`
}

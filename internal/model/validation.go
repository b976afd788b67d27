package model

// ErrorType classifies a validation error.
type ErrorType string

// Validation error types.
const (
	ErrorArithmetic      ErrorType = "arithmetic"
	ErrorFormat          ErrorType = "format"
	ErrorMissingRequired ErrorType = "missing_required"
	ErrorInconsistent    ErrorType = "inconsistent"
)

// Severity ranks how serious a validation error is.
type Severity string

// Validation error severities.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// WarningType classifies a validation warning.
type WarningType string

// Validation warning types.
const (
	WarningSuspiciousValue   WarningType = "suspicious_value"
	WarningUnusualFormat     WarningType = "unusual_format"
	WarningPotentialOCRError WarningType = "potential_ocr_error"
	WarningDuplicate         WarningType = "duplicate"
)

// ValidationError is a rule violation found in an extracted quote.
type ValidationError struct {
	Type     ErrorType `json:"type"`
	Field    string    `json:"field"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Expected string    `json:"expected,omitempty"`
	Actual   string    `json:"actual,omitempty"`
}

// ValidationWarning flags a value that is plausible but worth review.
type ValidationWarning struct {
	Type       WarningType `json:"type"`
	Field      string      `json:"field"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// ValidationCheck records the outcome of one named consistency check.
type ValidationCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of one validation pass over a quote.
type ValidationResult struct {
	IsValid         bool                `json:"is_valid"`
	ConfidenceScore float64             `json:"confidence_score"`
	Errors          []ValidationError   `json:"errors"`
	Warnings        []ValidationWarning `json:"warnings"`
	Checks          []ValidationCheck   `json:"checks"`
}

// CountErrors returns the number of errors with the given severity.
func (r *ValidationResult) CountErrors(severity Severity) int {
	count := 0
	for _, e := range r.Errors {
		if e.Severity == severity {
			count++
		}
	}
	return count
}

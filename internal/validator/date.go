package validator

import (
	"regexp"
	"time"
)

// Accepted quote date shapes. Anything else is flagged as unusual, never
// as an error: OCR mangles dates often enough that rejecting outright
// would throw away otherwise sound extractions.
var dateLayouts = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "02/01/2006"},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "02-01-2006"},
}

// checkDate validates the format and plausibility of a quote date string.
func checkDate(dateStr string) (bool, string) {
	var parsed time.Time
	matched := false

	for _, dl := range dateLayouts {
		if !dl.pattern.MatchString(dateStr) {
			continue
		}
		matched = true
		t, err := time.Parse(dl.layout, dateStr)
		if err != nil {
			return false, "Invalid date value"
		}
		parsed = t
		break
	}

	if !matched {
		return false, "Date format not recognized"
	}

	now := time.Now()
	twoYearsAgo := now.AddDate(-2, 0, 0)
	oneYearAhead := now.AddDate(1, 0, 0)

	if parsed.Before(twoYearsAgo) || parsed.After(oneYearAhead) {
		return false, "Date is outside reasonable range (2 years ago to 1 year ahead)"
	}

	return true, "Valid date format"
}

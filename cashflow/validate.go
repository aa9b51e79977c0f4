package cashflow

import (
	"regexp"
	"strings"
)

// purelyNumeric matches names made of nothing but digits and numeric
// separators, e.g. "1234" or "1,234.56".
var purelyNumeric = regexp.MustCompile(`^[\d,.\s-]+$`)

// ValidName reports whether an item name is acceptable. Purely numeric
// names are rejected (they are almost always an amount typed into the
// wrong field); empty names are allowed and handled elsewhere.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return true
	}
	return !purelyNumeric.MatchString(trimmed)
}

package analytics

import (
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// NormalizeDescription lowercases a transaction description using Unicode
// case folding and collapses all whitespace runs into single spaces.
//
// The normalized form is the natural key for recurring transactions and the
// grouping key for uncategorized spend, so it must be stable across bank
// syncs that differ only in casing or spacing.
func NormalizeDescription(description string) string {
	return strings.Join(strings.Fields(foldCaser.String(description)), " ")
}

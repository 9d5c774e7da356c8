// Package format renders correlative display codes. Pure functions only; no
// store or clock access.
package format

import "fmt"

// DefaultWidth is the zero-padding width for issued numbers.
const DefaultWidth = 3

// Format renders "{sigla}-{number}" with the number zero-padded to width.
// Numbers wider than the padding are printed in full, never truncated:
// Format("INF", 1000) is "INF-1000".
//
// Panics on non-positive numbers; allocated numbers start at 1, so a
// non-positive value is a programmer error rather than a runtime condition.
func Format(sigla string, number int) string {
	return FormatWidth(sigla, number, DefaultWidth)
}

// FormatWidth is Format with an explicit padding width.
func FormatWidth(sigla string, number, width int) string {
	if number <= 0 {
		panic(fmt.Sprintf("format: non-positive correlative number %d", number))
	}
	return fmt.Sprintf("%s-%0*d", sigla, width, number)
}

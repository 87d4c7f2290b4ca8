// Package cli provides status formatting helpers.
package cli

import (
	"fmt"

	"github.com/folio-dev/folio/internal/colors"
)

func formatCheck(pass bool) string {
	label, color := statusLabelForCheck(pass)
	return colorize(label, color)
}

func statusLabelForCheck(pass bool) (string, string) {
	if pass {
		return "PASS", colorGreen
	}
	return "FAIL", colorRed
}

func formatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f:1", ratio)
}

// formatLevel names the best level a ratio reaches.
func formatLevel(c colors.Compliance) string {
	switch {
	case c.AAA:
		return colorize("AAA", colorGreen)
	case c.AA:
		return colorize("AA", colorGreen)
	case c.AALarge:
		return colorize("AA large", colorYellow)
	default:
		return colorize("none", colorRed)
	}
}

// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-dev/folio/internal/colors"
	"github.com/folio-dev/folio/internal/tui/styles"
)

// RenderCheckBadge renders a pass/fail badge for one WCAG level.
func RenderCheckBadge(styleSet styles.Styles, level string, pass bool) string {
	icon, style := checkDescriptor(styleSet, pass)
	return style.Render(fmt.Sprintf("%s %s", icon, level))
}

// RenderComplianceBadges renders AA, AAA and the large text levels.
func RenderComplianceBadges(styleSet styles.Styles, c colors.Compliance) string {
	return strings.Join([]string{
		RenderCheckBadge(styleSet, "AA", c.AA),
		RenderCheckBadge(styleSet, "AAA", c.AAA),
		RenderCheckBadge(styleSet, "AA Large", c.AALarge),
		RenderCheckBadge(styleSet, "AAA Large", c.AAALarge),
	}, "  ")
}

func checkDescriptor(styleSet styles.Styles, pass bool) (string, lipgloss.Style) {
	if pass {
		return "✓", styleSet.Pass
	}
	return "✗", styleSet.Fail
}

// LevelLabel names the best level a pair reaches.
func LevelLabel(c colors.Compliance) string {
	switch {
	case c.AAA:
		return "AAA"
	case c.AA:
		return "AA"
	case c.AALarge:
		return "AA Large"
	default:
		return "Fail"
	}
}

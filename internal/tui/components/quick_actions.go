package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/tui/styles"
)

// QuickAction represents a keyboard-triggered action.
type QuickAction struct {
	Key     string // Keyboard key (e.g., "t", "d")
	Label   string // Display label (e.g., "Toggle", "Dark")
	Enabled bool   // Whether the action is available
}

// RenderQuickActionBar renders a horizontal bar of available quick actions.
// Format: "t:Toggle  l:Light  d:Dark  s:System"
func RenderQuickActionBar(styleSet styles.Styles, actions []QuickAction) string {
	if len(actions) == 0 {
		return ""
	}

	var parts []string
	for _, action := range actions {
		if !action.Enabled {
			continue
		}
		keyStyle := styleSet.Accent.Copy().Bold(true)
		labelStyle := styleSet.Muted
		part := fmt.Sprintf("%s:%s", keyStyle.Render(action.Key), labelStyle.Render(action.Label))
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "  ")
}

// ThemeQuickActions returns the theme actions; the active choice is disabled.
func ThemeQuickActions(current models.ThemeChoice, enableSystem bool) []QuickAction {
	return []QuickAction{
		{Key: "t", Label: "Toggle", Enabled: true},
		{Key: "l", Label: "Light", Enabled: current != models.ThemeLight},
		{Key: "d", Label: "Dark", Enabled: current != models.ThemeDark},
		{Key: "s", Label: "System", Enabled: enableSystem && current != models.ThemeSystem},
	}
}

// RenderFooter renders the action bar centered in width.
func RenderFooter(styleSet styles.Styles, actions []QuickAction, width int) string {
	bar := RenderQuickActionBar(styleSet, actions)
	if bar == "" || width <= 0 {
		return bar
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center)

	return containerStyle.Render(bar)
}

// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/folio-dev/folio/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display (e.g., "📭", "🔍", "🚀").
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	// Command is the CLI command or key to use (e.g., "folio init").
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	// Icon + Title
	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	// Subtitle
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	// Suggestions
	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// Common empty states for reuse across views.

// EmptyResults returns an empty state for before the first inspection.
func EmptyResults() EmptyState {
	return EmptyState{
		Icon:     "🎨",
		Title:    "No contrast results yet",
		Subtitle: "Results are computed from the active palette.",
		Suggestions: []Suggestion{
			{Command: "r", Description: "re-run the inspection"},
			{Command: "folio contrast inspect", Description: "inspect from the command line"},
		},
	}
}

// AllPassing returns an empty state for when no pair fails AA.
func AllPassing() EmptyState {
	return EmptyState{
		Icon:     "✅",
		Title:    "Every pair meets WCAG AA",
		Subtitle: "Nothing needs adjusting in this palette.",
	}
}

// StoreOffline returns an empty state for when preferences cannot be synced.
func StoreOffline(reason string) EmptyState {
	return EmptyState{
		Icon:     "📡",
		Title:    "Preferences are saved locally only",
		Subtitle: reason,
		Suggestions: []Suggestion{
			{Command: "folio init", Description: "configure a preferences store"},
			{Command: "FOLIO_STORE_BACKEND=sqlite folio ui", Description: "use the local sqlite store"},
		},
	}
}

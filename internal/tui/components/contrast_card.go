package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-dev/folio/internal/inspector"
	"github.com/folio-dev/folio/internal/tui/styles"
)

const maxSuggestionWidth = 56

// RenderContrastCard renders one inspected pair: a live sample rendered in
// the pair's own colors, the ratio, the badges and any suggestion.
func RenderContrastCard(styleSet styles.Styles, result inspector.Result) string {
	header := styleSet.Accent.Render(defaultIfEmpty(result.Pair.Label, "Pair"))

	if result.Err != "" {
		content := strings.Join([]string{
			header,
			styleSet.Fail.Render("Unable to sample: " + truncate(result.Err, maxSuggestionWidth)),
		}, "\n")
		return cardStyle(styleSet).Render(content)
	}

	sample := lipgloss.NewStyle().
		Background(lipgloss.Color(result.Background.Hex)).
		Foreground(lipgloss.Color(result.Foreground.Hex)).
		Padding(0, 1).
		Render("The quick brown fox")

	colorsLine := styleSet.Muted.Render(fmt.Sprintf("%s on %s", result.Foreground.String(), result.Background.String()))
	ratioLine := styleSet.Text.Render(fmt.Sprintf("Ratio: %.2f:1  Level: %s", result.Ratio, LevelLabel(result.Compliance)))

	lines := []string{
		header,
		sample,
		colorsLine,
		ratioLine,
		RenderComplianceBadges(styleSet, result.Compliance),
	}
	if result.Suggestion != "" {
		lines = append(lines, styleSet.Warning.Render(wrap(result.Suggestion, maxSuggestionWidth)))
	}

	return cardStyle(styleSet).Render(strings.Join(lines, "\n"))
}

func cardStyle(styleSet styles.Styles) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Color(styleSet.Theme.Tokens.Border)).
		Padding(0, 1)
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// wrap breaks text on spaces so no line exceeds width runes where possible.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

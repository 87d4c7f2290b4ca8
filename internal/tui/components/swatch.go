package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-dev/folio/internal/colors"
	"github.com/folio-dev/folio/internal/tui/styles"
)

// RenderSwatch renders a color block followed by the role name and value.
func RenderSwatch(styleSet styles.Styles, role, value string) string {
	block := lipgloss.NewStyle().Background(styles.Color(value)).Render("    ")
	display := value
	if sample, err := colors.ParseCSSColor(value); err == nil {
		display = sample.String()
		if hsl, err := colors.HexToHSL(sample.Hex); err == nil {
			display = fmt.Sprintf("%-9s %s", display, styleSet.Muted.Render(hsl.CSS()))
		}
	}
	return fmt.Sprintf("%s %-24s %s", block, styleSet.Text.Render(role), display)
}

// RenderPalette renders every role of the theme, sorted by name.
func RenderPalette(styleSet styles.Styles) string {
	roles := styleSet.Theme.Tokens.Roles()
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, RenderSwatch(styleSet, name, roles[name]))
	}
	return strings.Join(lines, "\n")
}

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/folio-dev/folio/internal/colors"
	"github.com/folio-dev/folio/internal/models"
)

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Header    lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Link      lipgloss.Style
	Accent    lipgloss.Style
	Panel     lipgloss.Style
	Border    lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Pass      lipgloss.Style
	Fail      lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Notice    lipgloss.Style
}

// DefaultStyles builds styles from the light theme.
func DefaultStyles() Styles {
	return BuildStyles(LightTheme)
}

// StylesFor builds styles for an effective theme.
func StylesFor(effective models.EffectiveTheme) Styles {
	return BuildStyles(ForEffective(effective))
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:     theme,
		Title:     lipgloss.NewStyle().Foreground(Color(tokens.Header)).Bold(true),
		Header:    lipgloss.NewStyle().Foreground(Color(tokens.Header)),
		Text:      lipgloss.NewStyle().Foreground(Color(tokens.Body)),
		Muted:     lipgloss.NewStyle().Foreground(Color(tokens.MutedForeground)),
		Link:      lipgloss.NewStyle().Foreground(Color(tokens.Link)).Underline(true),
		Accent:    lipgloss.NewStyle().Foreground(Color(tokens.Primary)),
		Panel:     lipgloss.NewStyle().Foreground(Color(tokens.CardForeground)).Background(Color(tokens.Card)).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(Color(tokens.Border)).Padding(0, 1),
		Border:    lipgloss.NewStyle().Foreground(Color(tokens.Border)),
		TabActive: lipgloss.NewStyle().Foreground(Color(tokens.PrimaryForeground)).Background(Color(tokens.Primary)).Bold(true).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(Color(tokens.SecondaryForeground)).Background(Color(tokens.Secondary)).Padding(0, 1),
		Pass:      lipgloss.NewStyle().Foreground(Color(tokens.Success)).Bold(true),
		Fail:      lipgloss.NewStyle().Foreground(Color(tokens.Danger)).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(Color(tokens.CautionForeground)).Background(Color(tokens.Caution)),
		Info:      lipgloss.NewStyle().Foreground(Color(tokens.Info)),
		Notice:    lipgloss.NewStyle().Foreground(Color(tokens.DangerForeground)).Background(Color(tokens.Danger)).Padding(0, 1),
	}
}

// Color converts a CSS color token into a lipgloss color. Alpha is dropped;
// unparseable values become the terminal default.
func Color(value string) lipgloss.TerminalColor {
	sample, err := colors.ParseCSSColor(value)
	if err != nil {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(sample.Hex)
}

// Package styles holds the site's color tokens for each effective theme and
// the lipgloss styles the terminal demo renders with.
package styles

import (
	"strings"

	"github.com/folio-dev/folio/internal/models"
)

// ThemeTokens defines the semantic color roles of the stylesheet.
// Values are CSS colors: hex, rgb() or rgba().
type ThemeTokens struct {
	Background            string
	Foreground            string
	Card                  string
	CardForeground        string
	Primary               string
	PrimaryForeground     string
	Secondary             string
	SecondaryForeground   string
	Muted                 string
	MutedForeground       string
	Accent                string
	AccentForeground      string
	Destructive           string
	DestructiveForeground string
	Success               string
	SuccessForeground     string
	Caution               string
	CautionForeground     string
	Danger                string
	DangerForeground      string
	Info                  string
	InfoForeground        string
	Header                string
	Body                  string
	Link                  string
	Border                string
}

// Roles maps CSS role names ("card-foreground") to values.
func (t ThemeTokens) Roles() map[string]string {
	return map[string]string{
		"background":             t.Background,
		"foreground":             t.Foreground,
		"card":                   t.Card,
		"card-foreground":        t.CardForeground,
		"primary":                t.Primary,
		"primary-foreground":     t.PrimaryForeground,
		"secondary":              t.Secondary,
		"secondary-foreground":   t.SecondaryForeground,
		"muted":                  t.Muted,
		"muted-foreground":       t.MutedForeground,
		"accent":                 t.Accent,
		"accent-foreground":      t.AccentForeground,
		"destructive":            t.Destructive,
		"destructive-foreground": t.DestructiveForeground,
		"success":                t.Success,
		"success-foreground":     t.SuccessForeground,
		"caution":                t.Caution,
		"caution-foreground":     t.CautionForeground,
		"danger":                 t.Danger,
		"danger-foreground":      t.DangerForeground,
		"info":                   t.Info,
		"info-foreground":        t.InfoForeground,
		"header":                 t.Header,
		"body":                   t.Body,
		"link":                   t.Link,
		"border":                 t.Border,
	}
}

// Lookup returns the value of a role.
func (t ThemeTokens) Lookup(role string) (string, bool) {
	value, ok := t.Roles()[strings.ToLower(strings.TrimSpace(role))]
	return value, ok
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by effective theme.
var Themes = map[models.EffectiveTheme]Theme{
	models.EffectiveLight: LightTheme,
	models.EffectiveDark:  DarkTheme,
}

// ForEffective returns the palette for an effective theme, light when unknown.
func ForEffective(effective models.EffectiveTheme) Theme {
	if theme, ok := Themes[effective]; ok {
		return theme
	}
	return LightTheme
}

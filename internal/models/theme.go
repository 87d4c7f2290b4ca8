package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidThemeChoice is returned for values outside light, dark and system.
var ErrInvalidThemeChoice = errors.New("invalid theme choice")

// ThemeChoice is the theme the user asked for.
type ThemeChoice string

const (
	ThemeLight  ThemeChoice = "light"
	ThemeDark   ThemeChoice = "dark"
	ThemeSystem ThemeChoice = "system" // Follows the OS color scheme
)

// AllThemeChoices returns the choices in toggle order.
func AllThemeChoices() []ThemeChoice {
	return []ThemeChoice{ThemeLight, ThemeDark, ThemeSystem}
}

// ParseThemeChoice converts a string into a ThemeChoice.
func ParseThemeChoice(value string) (ThemeChoice, error) {
	choice := ThemeChoice(strings.ToLower(strings.TrimSpace(value)))
	if !choice.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidThemeChoice, value)
	}
	return choice, nil
}

// Valid reports whether the choice is one of the enumerated values.
func (c ThemeChoice) Valid() bool {
	switch c {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// Next returns the choice after c in toggle order.
func (c ThemeChoice) Next() ThemeChoice {
	switch c {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

func (c ThemeChoice) String() string {
	return string(c)
}

// EffectiveTheme is the theme actually applied after resolving system.
type EffectiveTheme string

const (
	EffectiveLight EffectiveTheme = "light"
	EffectiveDark  EffectiveTheme = "dark"
)

func (t EffectiveTheme) String() string {
	return string(t)
}

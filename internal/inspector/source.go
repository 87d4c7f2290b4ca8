// Package inspector samples theme colors for named role pairs and checks
// their WCAG contrast, recomputing whenever the effective theme changes.
package inspector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/folio-dev/folio/internal/colors"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/tui/styles"
)

// ErrUnknownRole is returned when a class names no palette role.
var ErrUnknownRole = errors.New("unknown color role")

// Property is the computed style property being read.
type Property string

const (
	PropertyColor           Property = "color"
	PropertyBackgroundColor Property = "background-color"
)

// ColorSource resolves a class name to a computed CSS color value.
type ColorSource interface {
	ComputedColor(className string, prop Property) (string, error)
}

// EffectiveSource reports which theme is currently applied.
type EffectiveSource interface {
	EffectiveTheme() models.EffectiveTheme
}

// PaletteSource reads colors from the palette of the current effective theme.
type PaletteSource struct {
	theme EffectiveSource
}

// NewPaletteSource follows the effective theme reported by src.
func NewPaletteSource(src EffectiveSource) *PaletteSource {
	return &PaletteSource{theme: src}
}

// ComputedColor returns the role's value as the stylesheet would compute it.
func (s *PaletteSource) ComputedColor(className string, prop Property) (string, error) {
	role := roleName(className)
	tokens := styles.ForEffective(s.theme.EffectiveTheme()).Tokens
	value, ok := tokens.Lookup(role)
	if !ok {
		return "", fmt.Errorf("%w: %q (%s)", ErrUnknownRole, className, prop)
	}
	return value, nil
}

// FixedTheme is an EffectiveSource that never changes.
type FixedTheme models.EffectiveTheme

func (f FixedTheme) EffectiveTheme() models.EffectiveTheme {
	return models.EffectiveTheme(f)
}

// Sample reads one class through src. "text-" classes read the color
// property; everything else reads background-color, with bare role names
// treated as "bg-" classes.
func Sample(src ColorSource, className string) (colors.Sample, error) {
	className = normalizeClass(className)
	prop := PropertyBackgroundColor
	if strings.HasPrefix(className, "text-") {
		prop = PropertyColor
	}

	value, err := src.ComputedColor(className, prop)
	if err != nil {
		return colors.Sample{}, err
	}
	sample, err := colors.ParseCSSColor(value)
	if err != nil {
		return colors.Sample{}, fmt.Errorf("sample %s: %w", className, err)
	}
	return sample, nil
}

func normalizeClass(className string) string {
	className = strings.TrimSpace(className)
	if strings.HasPrefix(className, "bg-") || strings.HasPrefix(className, "text-") {
		return className
	}
	return "bg-" + className
}

func roleName(className string) string {
	className = strings.TrimSpace(className)
	for _, prefix := range []string{"bg-", "text-"} {
		if strings.HasPrefix(className, prefix) {
			return strings.TrimPrefix(className, prefix)
		}
	}
	return className
}

// Package colors implements the color math behind the contrast inspector:
// WCAG relative luminance and contrast ratio, hex/RGB/HSL conversion,
// CSS color parsing and lightness suggestions for failing pairs.
package colors

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned for input that is not a 6 or 8 digit hex color.
var ErrInvalidColorFormat = errors.New("invalid color format")

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{6})([0-9a-fA-F]{2})?$`)

// RGB holds 8-bit channel values.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex renders the color as lowercase #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

type parsedHex struct {
	rgb      RGB
	digits   string
	alpha    uint8
	hasAlpha bool
}

func parseHex(hex string) (parsedHex, error) {
	m := hexPattern.FindStringSubmatch(strings.TrimSpace(hex))
	if m == nil {
		return parsedHex{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}

	c, err := colorful.Hex("#" + strings.ToLower(m[1]))
	if err != nil {
		return parsedHex{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}
	r, g, b := c.RGB255()

	out := parsedHex{rgb: RGB{R: r, G: g, B: b}, digits: m[1]}
	if m[2] != "" {
		alpha, err := strconv.ParseUint(m[2], 16, 8)
		if err != nil {
			return parsedHex{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
		}
		out.alpha = uint8(alpha)
		out.hasAlpha = true
	}
	return out, nil
}

// IsValidHex reports whether hex is a 6 or 8 digit hex color.
func IsValidHex(hex string) bool {
	return hexPattern.MatchString(strings.TrimSpace(hex))
}

// HexToRGB decodes a hex color. An 8 digit alpha suffix is ignored.
func HexToRGB(hex string) (RGB, error) {
	p, err := parseHex(hex)
	if err != nil {
		return RGB{}, err
	}
	return p.rgb, nil
}

// StripAlpha returns the #RRGGBB part of a hex color.
func StripAlpha(hex string) (string, error) {
	p, err := parseHex(hex)
	if err != nil {
		return "", err
	}
	return "#" + p.digits, nil
}

// FormatHexDisplay renders an 8 digit color as "#RRGGBB (P% opacity)".
// Colors without alpha are returned unchanged.
func FormatHexDisplay(hex string) (string, error) {
	p, err := parseHex(hex)
	if err != nil {
		return "", err
	}
	if !p.hasAlpha {
		return hex, nil
	}
	percent := roundHalfUp(float64(p.alpha) / 255 * 100)
	return fmt.Sprintf("#%s (%d%% opacity)", p.digits, percent), nil
}

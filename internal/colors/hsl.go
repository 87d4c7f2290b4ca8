package colors

import (
	"fmt"
	"math"
)

// HSL is a color in integer hue degrees and saturation/lightness percent.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// CSS renders the triple in the space-separated hsl() syntax used by the stylesheet.
func (c HSL) CSS() string {
	return fmt.Sprintf("hsl(%d %d%% %d%%)", c.H, c.S, c.L)
}

// RGBToHSL decomposes 8-bit channels into rounded HSL.
// Achromatic colors yield hue 0 and saturation 0.
func RGBToHSL(r, g, b uint8) HSL {
	h, s, l := RGB{R: r, G: g, B: b}.colorful().Hsl()
	if s == 0 {
		h = 0
	}
	return HSL{
		H: roundHalfUp(h) % 360,
		S: roundHalfUp(s * 100),
		L: roundHalfUp(l * 100),
	}
}

// HexToHSL decodes a hex color straight to HSL.
func HexToHSL(hex string) (HSL, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(c.R, c.G, c.B), nil
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

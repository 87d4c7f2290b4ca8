package colors

import (
	"fmt"
	"math"
	"strings"
)

const (
	suggestRatioScale    = 15
	suggestMaxAdjustment = 40
	suggestMinLightness  = 5
	suggestMaxLightness  = 95
	darkBackgroundCutoff = 0.5
)

// SuggestFix proposes a foreground lightness change for a pair failing AA.
// Dark backgrounds get a lighter foreground, light backgrounds a darker one.
// The result is a heuristic; it is not re-verified against the threshold.
func SuggestFix(bgHex, fgHex, label string) (string, error) {
	bg, err := parseHex(bgHex)
	if err != nil {
		return "", err
	}
	fg, err := parseHex(fgHex)
	if err != nil {
		return "", err
	}

	bgLum := relativeLuminance(bg.rgb)
	current := ratio(bgLum, relativeLuminance(fg.rgb))
	adjustment := int(math.Ceil((ThresholdAA - current) * suggestRatioScale))
	adjustment = clamp(adjustment, 0, suggestMaxAdjustment)

	fgHSL := RGBToHSL(fg.rgb.R, fg.rgb.G, fg.rgb.B)
	name := foregroundName(label)
	cssVar := cssVariable(name)

	verb := "darkening"
	suggested := fgHSL.L - adjustment
	if bgLum < darkBackgroundCutoff {
		verb = "lightening"
		suggested = fgHSL.L + adjustment
	}
	suggested = clamp(suggested, suggestMinLightness, suggestMaxLightness)

	target := HSL{H: fgHSL.H, S: fgHSL.S, L: suggested}
	return fmt.Sprintf(
		"Consider %s the %s color. Current HSL lightness: %d%%, suggested: %d%%. Try setting %s to %s.",
		verb, name, fgHSL.L, suggested, cssVar, target.CSS(),
	), nil
}

// foregroundName extracts "primary-foreground" from "Primary / Primary Foreground".
func foregroundName(label string) string {
	parts := strings.SplitN(label, " / ", 2)
	if len(parts) < 2 {
		return "foreground"
	}
	name := strings.Join(strings.Fields(strings.ToLower(parts[1])), "-")
	if name == "" {
		return "foreground"
	}
	return name
}

func cssVariable(name string) string {
	if strings.HasSuffix(name, "foreground") {
		return "--" + name
	}
	return "--" + name + "-foreground"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

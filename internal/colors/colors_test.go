package colors

import (
	"errors"
	"math"
	"testing"
)

func TestContrastRatioBlackWhite(t *testing.T) {
	got, err := ContrastRatio("#000000", "#FFFFFF")
	if err != nil {
		t.Fatalf("ContrastRatio() error = %v", err)
	}
	if math.Abs(got-21.0) > 0.5 {
		t.Fatalf("ContrastRatio(black, white) = %v, want ~21", got)
	}
}

func TestContrastRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"#000000", "#ffffff"},
		{"1a2b3c", "#fefefe"},
		{"#5B8DEF", "#0B0F14"},
		{"#777777", "#888888"},
		{"#ff0000", "00ff00"},
	}
	for _, p := range pairs {
		ab, err := ContrastRatio(p[0], p[1])
		if err != nil {
			t.Fatalf("ContrastRatio(%s, %s) error = %v", p[0], p[1], err)
		}
		ba, err := ContrastRatio(p[1], p[0])
		if err != nil {
			t.Fatalf("ContrastRatio(%s, %s) error = %v", p[1], p[0], err)
		}
		if ab != ba {
			t.Errorf("ContrastRatio not symmetric for %v: %v vs %v", p, ab, ba)
		}
		if ab < 1 {
			t.Errorf("ContrastRatio(%v) = %v, want >= 1", p, ab)
		}
	}
}

func TestLuminanceBounds(t *testing.T) {
	black, err := Luminance("#000000")
	if err != nil {
		t.Fatalf("Luminance(black) error = %v", err)
	}
	white, err := Luminance("ffffff")
	if err != nil {
		t.Fatalf("Luminance(white) error = %v", err)
	}
	if black != 0 {
		t.Errorf("Luminance(black) = %v, want 0", black)
	}
	if math.Abs(white-1) > 1e-9 {
		t.Errorf("Luminance(white) = %v, want 1", white)
	}
}

func TestInvalidColorFormat(t *testing.T) {
	inputs := []string{"", "#fff", "#12345", "#GGGGGG", "rgb(0,0,0)", "#1234567", "blue"}
	for _, in := range inputs {
		if _, err := Luminance(in); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("Luminance(%q) error = %v, want ErrInvalidColorFormat", in, err)
		}
		if _, err := HexToRGB(in); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("HexToRGB(%q) error = %v, want ErrInvalidColorFormat", in, err)
		}
	}
	if _, err := ContrastRatio("#000000", "nope"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("ContrastRatio() error = %v, want ErrInvalidColorFormat", err)
	}
	if _, err := SuggestFix("zzz", "#000000", "A / B"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("SuggestFix() error = %v, want ErrInvalidColorFormat", err)
	}
}

func TestWCAGCompliance(t *testing.T) {
	tests := []struct {
		ratio float64
		want  Compliance
	}{
		{21, Compliance{AA: true, AAA: true, AALarge: true, AAALarge: true}},
		{2, Compliance{}},
		{4, Compliance{AALarge: true}},
		{4.5, Compliance{AA: true, AALarge: true, AAALarge: true}},
		{7, Compliance{AA: true, AAA: true, AALarge: true, AAALarge: true}},
		{3, Compliance{AALarge: true}},
	}
	for _, tt := range tests {
		if got := WCAGCompliance(tt.ratio); got != tt.want {
			t.Errorf("WCAGCompliance(%v) = %+v, want %+v", tt.ratio, got, tt.want)
		}
	}
}

func TestHexToRGB(t *testing.T) {
	got, err := HexToRGB("#1A2b3C")
	if err != nil {
		t.Fatalf("HexToRGB() error = %v", err)
	}
	if got != (RGB{R: 0x1a, G: 0x2b, B: 0x3c}) {
		t.Fatalf("HexToRGB() = %+v", got)
	}
	if got.Hex() != "#1a2b3c" {
		t.Fatalf("Hex() = %q", got.Hex())
	}

	withAlpha, err := HexToRGB("ffffff80")
	if err != nil {
		t.Fatalf("HexToRGB(alpha) error = %v", err)
	}
	if withAlpha != (RGB{R: 255, G: 255, B: 255}) {
		t.Fatalf("HexToRGB(alpha) = %+v", withAlpha)
	}
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    HSL
	}{
		{255, 0, 0, HSL{H: 0, S: 100, L: 50}},
		{0, 255, 0, HSL{H: 120, S: 100, L: 50}},
		{0, 0, 255, HSL{H: 240, S: 100, L: 50}},
		{0, 0, 0, HSL{H: 0, S: 0, L: 0}},
		{255, 255, 255, HSL{H: 0, S: 0, L: 100}},
		{128, 128, 128, HSL{H: 0, S: 0, L: 50}},
	}
	for _, tt := range tests {
		if got := RGBToHSL(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("RGBToHSL(%d,%d,%d) = %+v, want %+v", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestRGBToHSLHueRange(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				got := RGBToHSL(uint8(r), uint8(g), uint8(b))
				if got.H < 0 || got.H >= 360 {
					t.Fatalf("hue out of range for (%d,%d,%d): %d", r, g, b, got.H)
				}
				if got.S < 0 || got.S > 100 || got.L < 0 || got.L > 100 {
					t.Fatalf("s/l out of range for (%d,%d,%d): %+v", r, g, b, got)
				}
			}
		}
	}
}

func TestFormatHexDisplay(t *testing.T) {
	tests := map[string]string{
		"#FFFFFF80": "#FFFFFF (50% opacity)",
		"#FFFFFF":   "#FFFFFF",
		"#000000ff": "#000000 (100% opacity)",
		"#12345600": "#123456 (0% opacity)",
	}
	for in, want := range tests {
		got, err := FormatHexDisplay(in)
		if err != nil {
			t.Fatalf("FormatHexDisplay(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("FormatHexDisplay(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := FormatHexDisplay("#abc"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("FormatHexDisplay(short) error = %v", err)
	}
}

func TestSuggestFixLightBackground(t *testing.T) {
	got, err := SuggestFix("#ffffff", "#999999", "Muted / Muted Foreground")
	if err != nil {
		t.Fatalf("SuggestFix() error = %v", err)
	}
	want := "Consider darkening the muted-foreground color. Current HSL lightness: 60%, suggested: 35%. " +
		"Try setting --muted-foreground to hsl(0 0% 35%)."
	if got != want {
		t.Fatalf("SuggestFix() =\n%q\nwant\n%q", got, want)
	}
}

func TestSuggestFixDarkBackgroundCapsAdjustment(t *testing.T) {
	got, err := SuggestFix("#000000", "#333333", "Background / Foreground")
	if err != nil {
		t.Fatalf("SuggestFix() error = %v", err)
	}
	want := "Consider lightening the foreground color. Current HSL lightness: 20%, suggested: 60%. " +
		"Try setting --foreground to hsl(0 0% 60%)."
	if got != want {
		t.Fatalf("SuggestFix() =\n%q\nwant\n%q", got, want)
	}
}

func TestSuggestFixClampsLightness(t *testing.T) {
	got, err := SuggestFix("#000000", "#f2f2f2", "Card / Card Foreground")
	if err != nil {
		t.Fatalf("SuggestFix() error = %v", err)
	}
	// Passing pairs get a zero adjustment; the lightness is still capped at 95.
	want := "Consider lightening the card-foreground color. Current HSL lightness: 95%, suggested: 95%. " +
		"Try setting --card-foreground to hsl(0 0% 95%)."
	if got != want {
		t.Fatalf("SuggestFix() =\n%q\nwant\n%q", got, want)
	}
}

func TestParseCSSColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rgb(255, 255, 255)", "#ffffff"},
		{"rgb(0 128 255)", "#0080ff"},
		{"rgba(255, 255, 255, 0.5)", "#ffffff80"},
		{"rgba(10, 20, 30, 1)", "#0a141e"},
		{"rgb(10 20 30 / 50%)", "#0a141e80"},
		{"#ABCDEF", "#abcdef"},
		{"#abcdef80", "#abcdef80"},
	}
	for _, tt := range tests {
		got, err := ParseCSSColor(tt.in)
		if err != nil {
			t.Fatalf("ParseCSSColor(%q) error = %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Errorf("ParseCSSColor(%q) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}

	for _, bad := range []string{"transparent", "rgb(1,2)", "rgb(300,0,0)", "hsl(0 0% 0%)", "rgba(0,0,0,2)"} {
		if _, err := ParseCSSColor(bad); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("ParseCSSColor(%q) error = %v, want ErrInvalidColorFormat", bad, err)
		}
	}
}

func TestStripAlpha(t *testing.T) {
	got, err := StripAlpha("#12345680")
	if err != nil {
		t.Fatalf("StripAlpha() error = %v", err)
	}
	if got != "#123456" {
		t.Fatalf("StripAlpha() = %q", got)
	}
}

func TestSuggestedVariableName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Background / Foreground", "--foreground"},
		{"Card / Card Foreground", "--card-foreground"},
		{"Muted / Muted  Foreground", "--muted-foreground"},
		{"Primary / Accent", "--accent-foreground"},
		{"Unlabelled", "--foreground"},
	}
	for _, tt := range tests {
		if got := cssVariable(foregroundName(tt.label)); got != tt.want {
			t.Errorf("cssVariable(foregroundName(%q)) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

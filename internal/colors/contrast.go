package colors

import "math"

// WCAG 2.1 thresholds.
const (
	ThresholdAA       = 4.5
	ThresholdAAA      = 7.0
	ThresholdAALarge  = 3.0
	ThresholdAAALarge = 4.5
)

// Luminance weights and the sRGB linear segment cutoff.
const (
	redWeight     = 0.2126
	greenWeight   = 0.7152
	blueWeight    = 0.0722
	linearCutoff  = 0.03928
	linearDivisor = 12.92
)

// Compliance holds pass/fail for each WCAG level.
type Compliance struct {
	AA       bool `json:"aa"`
	AAA      bool `json:"aaa"`
	AALarge  bool `json:"aa_large"`
	AAALarge bool `json:"aaa_large"`
}

// Luminance returns the WCAG relative luminance of a hex color, in [0,1].
func Luminance(hex string) (float64, error) {
	p, err := parseHex(hex)
	if err != nil {
		return 0, err
	}
	return relativeLuminance(p.rgb), nil
}

func relativeLuminance(c RGB) float64 {
	col := c.colorful()
	return redWeight*linearize(col.R) + greenWeight*linearize(col.G) + blueWeight*linearize(col.B)
}

func linearize(v float64) float64 {
	if v <= linearCutoff {
		return v / linearDivisor
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns (lighter+0.05)/(darker+0.05); argument order does not matter.
func ContrastRatio(a, b string) (float64, error) {
	la, err := Luminance(a)
	if err != nil {
		return 0, err
	}
	lb, err := Luminance(b)
	if err != nil {
		return 0, err
	}
	return ratio(la, lb), nil
}

func ratio(la, lb float64) float64 {
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// WCAGCompliance evaluates a ratio against the fixed thresholds.
func WCAGCompliance(ratio float64) Compliance {
	return Compliance{
		AA:       ratio >= ThresholdAA,
		AAA:      ratio >= ThresholdAAA,
		AALarge:  ratio >= ThresholdAALarge,
		AAALarge: ratio >= ThresholdAAALarge,
	}
}

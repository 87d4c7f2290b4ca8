package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sample is a color read from a computed style: a #rrggbb hex plus an
// optional alpha channel.
type Sample struct {
	Hex      string `json:"hex"`
	Alpha    uint8  `json:"alpha,omitempty"`
	HasAlpha bool   `json:"has_alpha,omitempty"`
}

// String renders the sample as #rrggbb or #rrggbbaa.
func (s Sample) String() string {
	if s.HasAlpha {
		return fmt.Sprintf("%s%02x", s.Hex, s.Alpha)
	}
	return s.Hex
}

// ParseCSSColor converts rgb(), rgba() or hex syntax into a Sample.
// An alpha of 1 is treated as opaque.
func ParseCSSColor(value string) (Sample, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if IsValidHex(v) {
		p, err := parseHex(v)
		if err != nil {
			return Sample{}, err
		}
		return Sample{Hex: p.rgb.Hex(), Alpha: p.alpha, HasAlpha: p.hasAlpha && p.alpha != 0xff}, nil
	}

	var body string
	switch {
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		body = v[len("rgba(") : len(v)-1]
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		body = v[len("rgb(") : len(v)-1]
	default:
		return Sample{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, value)
	}

	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return Sample{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, value)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || n < 0 || n > 255 {
			return Sample{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, value)
		}
		channels[i] = uint8(math.Round(n))
	}
	sample := Sample{Hex: RGB{R: channels[0], G: channels[1], B: channels[2]}.Hex()}

	if len(fields) == 4 {
		alpha, err := parseAlpha(fields[3])
		if err != nil {
			return Sample{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, value)
		}
		if alpha < 1 {
			sample.Alpha = uint8(math.Round(alpha * 255))
			sample.HasAlpha = true
		}
	}
	return sample, nil
}

func parseAlpha(field string) (float64, error) {
	if strings.HasSuffix(field, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
		if err != nil {
			return 0, err
		}
		field = strconv.FormatFloat(n/100, 'f', -1, 64)
	}
	a, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if a < 0 || a > 1 {
		return 0, fmt.Errorf("alpha out of range: %v", a)
	}
	return a, nil
}

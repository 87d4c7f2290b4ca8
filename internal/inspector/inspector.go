package inspector

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/folio-dev/folio/internal/colors"
	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/theme"
)

// Pair names a background class, a foreground class and a display label.
type Pair struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Label      string `json:"label"`
}

// DefaultPairs lists the role pairs shown on the contrast tab.
func DefaultPairs() []Pair {
	return []Pair{
		{Background: "bg-background", Foreground: "text-foreground", Label: "Background / Foreground"},
		{Background: "bg-card", Foreground: "text-card-foreground", Label: "Card / Card Foreground"},
		{Background: "bg-primary", Foreground: "text-primary-foreground", Label: "Primary / Primary Foreground"},
		{Background: "bg-secondary", Foreground: "text-secondary-foreground", Label: "Secondary / Secondary Foreground"},
		{Background: "bg-muted", Foreground: "text-muted-foreground", Label: "Muted / Muted Foreground"},
		{Background: "bg-accent", Foreground: "text-accent-foreground", Label: "Accent / Accent Foreground"},
		{Background: "bg-destructive", Foreground: "text-destructive-foreground", Label: "Destructive / Destructive Foreground"},
		{Background: "bg-success", Foreground: "text-success-foreground", Label: "Success / Success Foreground"},
		{Background: "bg-caution", Foreground: "text-caution-foreground", Label: "Caution / Caution Foreground"},
		{Background: "bg-danger", Foreground: "text-danger-foreground", Label: "Danger / Danger Foreground"},
		{Background: "bg-info", Foreground: "text-info-foreground", Label: "Info / Info Foreground"},
		{Background: "bg-background", Foreground: "text-header", Label: "Background / Header"},
		{Background: "bg-background", Foreground: "text-body", Label: "Background / Body"},
		{Background: "bg-background", Foreground: "text-link", Label: "Background / Link"},
	}
}

// Result is the contrast check for one pair.
type Result struct {
	Pair       Pair                  `json:"pair"`
	Theme      models.EffectiveTheme `json:"theme,omitempty"`
	Background colors.Sample         `json:"background"`
	Foreground colors.Sample         `json:"foreground"`
	Ratio      float64               `json:"ratio"`
	Compliance colors.Compliance     `json:"compliance"`
	Suggestion string                `json:"suggestion,omitempty"`
	Err        string                `json:"error,omitempty"`
}

// BackgroundName is the role name without its bg- prefix.
func (r Result) BackgroundName() string {
	return strings.TrimPrefix(r.Pair.Background, "bg-")
}

// ForegroundName is the role name without its text- prefix.
func (r Result) ForegroundName() string {
	return strings.TrimPrefix(r.Pair.Foreground, "text-")
}

// Inspect samples both classes and computes ratio, compliance and, only
// when AA fails, a suggestion. Alpha is ignored for the math.
func Inspect(src ColorSource, pair Pair) (Result, error) {
	result := Result{Pair: pair}

	bg, err := Sample(src, pair.Background)
	if err != nil {
		return result, err
	}
	fg, err := Sample(src, pair.Foreground)
	if err != nil {
		return result, err
	}
	result.Background = bg
	result.Foreground = fg

	ratio, err := colors.ContrastRatio(bg.Hex, fg.Hex)
	if err != nil {
		return result, err
	}
	result.Ratio = ratio
	result.Compliance = colors.WCAGCompliance(ratio)

	if !result.Compliance.AA {
		suggestion, err := colors.SuggestFix(bg.Hex, fg.Hex, pair.Label)
		if err != nil {
			return result, err
		}
		result.Suggestion = suggestion
	}
	return result, nil
}

// Inspector keeps the latest results for a set of pairs.
type Inspector struct {
	src    ColorSource
	pairs  []Pair
	logger zerolog.Logger

	mu      sync.RWMutex
	theme   models.EffectiveTheme
	results []Result
	cancel  func()
}

// New builds an Inspector over pairs; nil pairs means DefaultPairs.
func New(src ColorSource, pairs []Pair) *Inspector {
	if pairs == nil {
		pairs = DefaultPairs()
	}
	return &Inspector{
		src:    src,
		pairs:  append([]Pair(nil), pairs...),
		logger: logging.Component("inspector"),
	}
}

// Attach recomputes now and again, synchronously, whenever the runtime's
// effective theme changes. It returns a function that detaches.
func (i *Inspector) Attach(rt *theme.Runtime) func() {
	i.mu.Lock()
	i.theme = rt.EffectiveTheme()
	i.mu.Unlock()
	i.Refresh()

	cancel := rt.Subscribe(func(state theme.State) {
		i.mu.Lock()
		changed := state.EffectiveTheme != i.theme
		i.theme = state.EffectiveTheme
		i.mu.Unlock()
		if changed {
			i.Refresh()
		}
	})

	i.mu.Lock()
	i.cancel = cancel
	i.mu.Unlock()
	return cancel
}

// Detach stops following the runtime.
func (i *Inspector) Detach() {
	i.mu.Lock()
	cancel := i.cancel
	i.cancel = nil
	i.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Refresh re-samples every pair. Per-pair failures are kept on the result.
func (i *Inspector) Refresh() []Result {
	i.mu.RLock()
	current := i.theme
	i.mu.RUnlock()

	results := make([]Result, 0, len(i.pairs))
	for _, pair := range i.pairs {
		result, err := Inspect(i.src, pair)
		result.Theme = current
		if err != nil {
			result.Err = err.Error()
			i.logger.Warn().Err(err).Str("pair", pair.Label).Msg("contrast check failed")
		}
		results = append(results, result)
	}

	i.mu.Lock()
	i.results = results
	i.mu.Unlock()
	return results
}

// Results returns the latest results.
func (i *Inspector) Results() []Result {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]Result(nil), i.results...)
}

// Theme returns the effective theme the latest results were computed for.
func (i *Inspector) Theme() models.EffectiveTheme {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.theme
}

// Failing returns the latest results that miss AA.
func (i *Inspector) Failing() []Result {
	var out []Result
	for _, r := range i.Results() {
		if r.Err == "" && !r.Compliance.AA {
			out = append(out, r)
		}
	}
	return out
}

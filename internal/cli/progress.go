package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/folio-dev/folio/internal/logging"
)

// progressOut receives progress lines; stdout stays clean for results.
var progressOut io.Writer = os.Stderr

// progressStep reports one remote call as "label... done (12ms)".
type progressStep struct {
	label   string
	started time.Time
	enabled bool
}

func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(progressOut, "%s... ", label)
	return &progressStep{
		label:   label,
		started: time.Now(),
		enabled: true,
	}
}

func (p *progressStep) Done() {
	if p == nil || !p.enabled {
		return
	}
	elapsed := time.Since(p.started)
	fmt.Fprintf(progressOut, "done (%s)\n", formatDuration(elapsed))
	logger := logging.Component("cli")
	logger.Debug().Str("step", p.label).Dur("elapsed", elapsed).Msg("step finished")
}

func (p *progressStep) Fail(err error) {
	if p == nil || !p.enabled {
		return
	}
	if err != nil {
		fmt.Fprintf(progressOut, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(progressOut, "failed")
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if noProgress {
		return false
	}
	if _, ok := os.LookupEnv("FOLIO_NO_PROGRESS"); ok {
		return false
	}
	if _, ok := os.LookupEnv("NO_PROGRESS"); ok {
		return false
	}
	return true
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	if d < time.Second {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
)

// PreflightError is a user-facing failure with a hint and a next step.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	return e.Message
}

// WriteOutput writes v as indented JSON, or one JSON object per line for
// slices when --jsonl is set.
func WriteOutput(out io.Writer, v any) error {
	if IsJSONLOutput() {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			enc := json.NewEncoder(out)
			for i := 0; i < rv.Len(); i++ {
				if err := enc.Encode(rv.Index(i).Interface()); err != nil {
					return fmt.Errorf("failed to encode output: %w", err)
				}
			}
			return nil
		}
		if err := json.NewEncoder(out).Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func printError(out io.Writer, err error) {
	if IsJSONOutput() || IsJSONLOutput() {
		payload := map[string]string{"error": err.Error()}
		if pf, ok := err.(*PreflightError); ok {
			payload["hint"] = pf.Hint
			payload["next_step"] = pf.NextStep
		}
		_ = json.NewEncoder(out).Encode(payload)
		return
	}

	fmt.Fprintf(out, "Error: %v\n", err)
	if pf, ok := err.(*PreflightError); ok {
		if pf.Hint != "" {
			fmt.Fprintf(out, "Hint: %s\n", pf.Hint)
		}
		if pf.NextStep != "" {
			fmt.Fprintf(out, "Next: %s\n", pf.NextStep)
		}
	}
}

func colorEnabled() bool {
	if noColor || IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return hasTTY()
}

func colorize(text, color string) string {
	if color == "" || !colorEnabled() {
		return text
	}
	return color + text + colorReset
}

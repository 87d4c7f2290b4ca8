package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/colors"
	"github.com/folio-dev/folio/internal/events"
	"github.com/folio-dev/folio/internal/inspector"
	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/models"
)

var (
	contrastLabel  string
	contrastTrack  bool
	inspectTheme   string
	inspectFailing bool
)

func init() {
	rootCmd.AddCommand(contrastCmd)
	contrastCmd.AddCommand(contrastCheckCmd)
	contrastCmd.AddCommand(contrastInspectCmd)

	contrastCheckCmd.Flags().StringVar(&contrastLabel, "label", "Background / Foreground", "pair label used in the suggestion")
	contrastCheckCmd.Flags().BoolVar(&contrastTrack, "track", false, "record a contrast_checked event")

	contrastInspectCmd.Flags().StringVar(&inspectTheme, "theme", "", "palette to inspect (light, dark); default is the effective theme")
	contrastInspectCmd.Flags().BoolVar(&inspectFailing, "failing", false, "only show pairs that fail AA")
}

var contrastCmd = &cobra.Command{
	Use:   "contrast",
	Short: "Check WCAG contrast",
}

// contrastCheckResult is the JSON shape of contrast check.
type contrastCheckResult struct {
	Background string            `json:"background"`
	Foreground string            `json:"foreground"`
	Ratio      float64           `json:"ratio"`
	Compliance colors.Compliance `json:"compliance"`
	Suggestion string            `json:"suggestion,omitempty"`
}

var contrastCheckCmd = &cobra.Command{
	Use:   "check <background> <foreground>",
	Short: "Contrast ratio of two hex colors",
	Example: `  folio contrast check "#ffffff" "#767676"
  folio contrast check 000000 333333 --label "Card / Card Foreground"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := checkContrast(args[0], args[1], contrastLabel)
		if err != nil {
			return err
		}

		if contrastTrack {
			trackContrast(cmd.Context(), contrastLabel, result.Ratio, result.Compliance.AA)
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, result)
		}

		rows := [][]string{
			{"Background", displayHex(result.Background)},
			{"Foreground", displayHex(result.Foreground)},
			{"Ratio", formatRatio(result.Ratio)},
			{"Level", formatLevel(result.Compliance)},
			{"AA", formatCheck(result.Compliance.AA)},
			{"AAA", formatCheck(result.Compliance.AAA)},
			{"AA large", formatCheck(result.Compliance.AALarge)},
			{"AAA large", formatCheck(result.Compliance.AAALarge)},
		}
		if err := writeTable(out, nil, rows); err != nil {
			return err
		}
		if result.Suggestion != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, result.Suggestion)
		}
		return nil
	},
}

func checkContrast(bg, fg, label string) (*contrastCheckResult, error) {
	ratio, err := colors.ContrastRatio(bg, fg)
	if err != nil {
		return nil, err
	}
	result := &contrastCheckResult{
		Background: bg,
		Foreground: fg,
		Ratio:      ratio,
		Compliance: colors.WCAGCompliance(ratio),
	}
	if !result.Compliance.AA {
		suggestion, err := colors.SuggestFix(bg, fg, label)
		if err != nil {
			return nil, err
		}
		result.Suggestion = suggestion
	}
	return result, nil
}

func displayHex(hex string) string {
	display, err := colors.FormatHexDisplay(hex)
	if err != nil {
		return hex
	}
	return display
}

func trackContrast(ctx context.Context, label string, ratio float64, aa bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := currentConfig()
	logger := logging.Component("cli")

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("preferences store unavailable; contrast check not tracked")
		return
	}
	defer st.Close()

	callCtx, cancel := withTimeout(ctx, cfg)
	defer cancel()
	if err := events.LogContrastChecked(callCtx, newPrefsClient(st.Backend), label, ratio, aa); err != nil {
		logger.Warn().Err(err).Msg("failed to track contrast check")
	}
}

var contrastInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Check every palette role pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		effective, err := inspectEffectiveTheme(inspectTheme)
		if err != nil {
			return err
		}

		insp := inspector.New(inspector.NewPaletteSource(inspector.FixedTheme(effective)), nil)
		insp.Refresh()
		results := insp.Results()
		if inspectFailing {
			results = insp.Failing()
		}
		return writeInspectResults(cmd.OutOrStdout(), results)
	},
}

func inspectEffectiveTheme(value string) (models.EffectiveTheme, error) {
	switch value {
	case "":
		session := openThemeSession(currentConfig())
		defer session.Close()
		return session.Runtime.EffectiveTheme(), nil
	case string(models.EffectiveLight):
		return models.EffectiveLight, nil
	case string(models.EffectiveDark):
		return models.EffectiveDark, nil
	default:
		return "", &PreflightError{
			Message:  fmt.Sprintf("unknown palette %q", value),
			Hint:     "Use --theme light or --theme dark",
			NextStep: "folio contrast inspect --theme dark",
		}
	}
}

func writeInspectResults(out io.Writer, results []inspector.Result) error {
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(out, results)
	}

	rows := make([][]string, 0, len(results))
	var suggestions []string
	for _, r := range results {
		if r.Err != "" {
			rows = append(rows, []string{r.Pair.Label, "-", "-", "-", colorize("ERR", colorRed), r.Err})
			continue
		}
		rows = append(rows, []string{
			r.Pair.Label,
			r.Background.String(),
			r.Foreground.String(),
			formatRatio(r.Ratio),
			formatCheck(r.Compliance.AA),
			formatLevel(r.Compliance),
		})
		if r.Suggestion != "" {
			suggestions = append(suggestions, fmt.Sprintf("%s: %s", r.Pair.Label, r.Suggestion))
		}
	}

	if err := writeTable(out, []string{"PAIR", "BACKGROUND", "FOREGROUND", "RATIO", "AA", "LEVEL"}, rows); err != nil {
		return err
	}
	if len(suggestions) > 0 {
		fmt.Fprintln(out)
		for _, s := range suggestions {
			fmt.Fprintln(out, s)
		}
	}
	return nil
}

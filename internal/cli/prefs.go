package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/events"
	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/prefs"
	"github.com/folio-dev/folio/internal/theme"
)

var (
	prefsUserID string
	prefsApply  bool

	prefsSetTheme string
	prefsSetX     float64
	prefsSetY     float64
)

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)

	prefsCmd.PersistentFlags().StringVar(&prefsUserID, "user", "", "preferences id (default store.user_id or a generated id)")
	prefsGetCmd.Flags().BoolVar(&prefsApply, "apply", false, "apply the stored theme locally")
	prefsSetCmd.Flags().StringVar(&prefsSetTheme, "theme", "", "theme choice (light, dark, system)")
	prefsSetCmd.Flags().Float64Var(&prefsSetX, "x", 0, "widget x position")
	prefsSetCmd.Flags().Float64Var(&prefsSetY, "y", 0, "widget y position")
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Read and write stored preferences",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch stored preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		cfg := currentConfig()
		session := openThemeSession(cfg)
		defer session.Close()

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		userID := prefsUserID
		if userID == "" {
			userID = resolveUserID(cfg, session.Storage)
		}

		callCtx, cancel := withTimeout(ctx, cfg)
		defer cancel()

		progress := startProgress("Fetching preferences")
		row, err := newPrefsClient(st.Backend).GetPreferences(callCtx, userID)
		if err != nil {
			progress.Fail(err)
			if errors.Is(err, prefs.ErrNotFound) {
				return &PreflightError{
					Message:  fmt.Sprintf("no preferences stored for %s", userID),
					Hint:     "Preferences are created on the first write",
					NextStep: "folio prefs set --theme system",
				}
			}
			return err
		}
		progress.Done()

		if prefsApply && row.Theme.Valid() {
			if err := session.Runtime.SetTheme(row.Theme); err != nil {
				return err
			}
		}

		return writePreferences(cmd.OutOrStdout(), row)
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update stored preferences",
	Long: `Update stored preferences. Only the supplied fields change; the row is
created if it does not exist.`,
	Example: `  folio prefs set --theme dark
  folio prefs set --x 120 --y 48`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := buildPatch(cmd)
		if err != nil {
			return err
		}

		ctx := commandContext(cmd)
		cfg := currentConfig()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		userID := prefsUserID
		if userID == "" {
			userID = resolveUserID(cfg, theme.NewFileStorage(cfg.StorageFile()))
		}

		callCtx, cancel := withTimeout(ctx, cfg)
		defer cancel()

		client := newPrefsClient(st.Backend)
		progress := startProgress("Updating preferences")
		if err := client.UpdatePreferences(callCtx, userID, patch); err != nil {
			progress.Fail(err)
			return err
		}
		progress.Done()

		if patch.WidgetPosition != nil {
			if err := events.LogWidgetMoved(callCtx, client, *patch.WidgetPosition); err != nil {
				logger := logging.Component("cli")
				logger.Warn().Err(err).Msg("failed to track widget move")
			}
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, map[string]any{
				"updated": true,
				"id":      userID,
				"patch":   patch,
			})
		}
		fmt.Fprintf(out, "Preferences updated for %s\n", userID)
		return nil
	},
}

func buildPatch(cmd *cobra.Command) (models.PreferencesPatch, error) {
	var patch models.PreferencesPatch

	if cmd.Flags().Changed("theme") {
		choice, err := models.ParseThemeChoice(prefsSetTheme)
		if err != nil {
			return patch, err
		}
		patch.Theme = &choice
	}

	xSet, ySet := cmd.Flags().Changed("x"), cmd.Flags().Changed("y")
	if xSet != ySet {
		return patch, errors.New("--x and --y must be given together")
	}
	if xSet {
		patch.WidgetPosition = &models.WidgetPosition{X: prefsSetX, Y: prefsSetY}
	}

	if patch.IsEmpty() {
		return patch, &PreflightError{
			Message:  "nothing to update",
			Hint:     "Pass --theme and/or --x/--y",
			NextStep: "folio prefs set --theme dark",
		}
	}
	return patch, patch.Validate()
}

func writePreferences(out io.Writer, row *models.UserPreferences) error {
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(out, row)
	}
	return writeTable(out, nil, [][]string{
		{"ID", row.ID},
		{"Theme", string(row.Theme)},
		{"Widget", fmt.Sprintf("x=%g y=%g", row.WidgetPosition.X, row.WidgetPosition.Y)},
		{"Created", formatTimestamp(row.CreatedAt)},
		{"Updated", formatTimestamp(row.UpdatedAt)},
	})
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}

package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/events"
	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/theme"
)

var themeNoSync bool

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeToggleCmd)

	themeCmd.PersistentFlags().BoolVar(&themeNoSync, "no-sync", false, "do not sync the choice to the preferences store")
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the theme",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the theme choice and effective theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := openThemeSession(currentConfig())
		defer session.Close()
		return writeThemeState(cmd.OutOrStdout(), session, nil)
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Set the theme choice",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark", "system"},
	RunE: func(cmd *cobra.Command, args []string) error {
		choice, err := models.ParseThemeChoice(args[0])
		if err != nil {
			return &PreflightError{
				Message:  err.Error(),
				Hint:     "Valid themes are light, dark and system",
				NextStep: "folio theme set dark",
			}
		}
		return changeTheme(cmd.Context(), cmd.OutOrStdout(), func(rt *theme.Runtime) error {
			return rt.SetTheme(choice)
		})
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Cycle light, dark and system",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeTheme(cmd.Context(), cmd.OutOrStdout(), func(rt *theme.Runtime) error {
			rt.Toggle()
			return nil
		})
	},
}

// themeResult is the JSON shape of theme commands.
type themeResult struct {
	theme.State
	Classes     []string `json:"classes"`
	StorageFile string   `json:"storage_file"`
	Synced      *bool    `json:"synced,omitempty"`
}

func changeTheme(ctx context.Context, out io.Writer, apply func(*theme.Runtime) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := currentConfig()
	session := openThemeSession(cfg)
	defer session.Close()

	before := session.Runtime.State()
	if err := apply(session.Runtime); err != nil {
		return err
	}
	after := session.Runtime.State()

	var synced *bool
	if !themeNoSync {
		ok := syncThemeChoice(ctx, cfg, session, before, after)
		synced = &ok
	}
	return writeThemeState(out, session, synced)
}

// syncThemeChoice pushes the choice and a theme_changed event to the store.
// Failures are logged and reported, never returned.
func syncThemeChoice(ctx context.Context, cfg *config.Config, session *themeSession, before, after theme.State) bool {
	logger := logging.Component("cli")

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("preferences store unavailable; theme saved locally only")
		return false
	}
	defer st.Close()

	client := newPrefsClient(st.Backend)
	userID := resolveUserID(cfg, session.Storage)

	callCtx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	choice := after.Theme
	if err := client.UpdatePreferences(callCtx, userID, models.PreferencesPatch{Theme: &choice}); err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("failed to sync theme preference")
		return false
	}
	if before.Theme != after.Theme {
		if err := events.LogThemeChanged(callCtx, client, before.Theme, after.Theme, after.EffectiveTheme, "cli"); err != nil {
			logger.Warn().Err(err).Msg("failed to track theme change")
		}
	}
	return true
}

func writeThemeState(out io.Writer, session *themeSession, synced *bool) error {
	result := themeResult{
		State:       session.Runtime.State(),
		Classes:     session.Root.Classes(),
		StorageFile: session.Storage.Path(),
		Synced:      synced,
	}
	if attr := session.Runtime.Options().Attribute; attr != theme.AttributeClass {
		result.Classes = append(result.Classes, "data-"+attr+"="+string(result.EffectiveTheme))
	}

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(out, result)
	}

	rows := [][]string{
		{"Theme", string(result.Theme)},
		{"Effective", colorize(string(result.EffectiveTheme), effectiveColor(result.EffectiveTheme))},
		{"Reduced motion", formatYesNo(result.PrefersReducedMotion)},
	}
	if synced != nil {
		rows = append(rows, []string{"Synced", formatYesNo(*synced)})
	}
	return writeTable(out, nil, rows)
}

func effectiveColor(effective models.EffectiveTheme) string {
	if effective == models.EffectiveDark {
		return colorMagenta
	}
	return colorYellow
}

package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/prefs"
	"github.com/folio-dev/folio/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the Folio theme demo",
	Long: `Launch the terminal theme demo.

The demo shows the active palette, live contrast results and the draggable
widget. Theme changes and the widget position are synced to the configured
preferences store when it is reachable; otherwise the demo runs offline.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(commandContext(cmd))
	},
}

func runTUI(ctx context.Context) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use CLI subcommands",
			NextStep: "folio --help",
		}
	}

	cfg := currentConfig()
	logger := logging.Component("ui")

	session := openThemeSession(cfg)
	defer session.Close()

	tuiConfig := tui.Config{
		Runtime: session.Runtime,
		Root:    session.Root,
		UserID:  resolveUserID(cfg, session.Storage),
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("preferences store unavailable; running offline")
		tuiConfig.StoreErr = err
	} else {
		defer st.Close()
		client := newPrefsClient(st.Backend)
		tuiConfig.Prefs = client

		callCtx, cancel := withTimeout(ctx, cfg)
		row, err := client.GetPreferences(callCtx, tuiConfig.UserID)
		cancel()
		switch {
		case err == nil:
			tuiConfig.Widget = row.WidgetPosition
		case errors.Is(err, prefs.ErrNotFound):
			logger.Debug().Str("user_id", tuiConfig.UserID).Msg("no stored preferences yet")
		default:
			logger.Warn().Err(err).Msg("failed to load stored preferences")
		}
	}

	return tui.Run(tuiConfig)
}

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folio-dev/folio/internal/events"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/prefs"
	"github.com/folio-dev/folio/internal/theme"
)

const remoteTimeout = 5 * time.Second

// ThemeChangedMsg carries a runtime state change into the program.
type ThemeChangedMsg struct {
	State theme.State
}

// themeAppliedMsg reports a theme change made from the TUI.
type themeAppliedMsg struct {
	Before theme.State
	After  theme.State
	Err    error
}

// syncResultMsg reports a best-effort write to the preferences store.
type syncResultMsg struct {
	What string
	Err  error
}

// themeSubscriber bridges runtime notifications to the program.
func themeSubscriber(program *tea.Program) func(theme.State) {
	return func(state theme.State) {
		if program != nil {
			program.Send(ThemeChangedMsg{State: state})
		}
	}
}

// applyThemeCmd runs a runtime mutation off the event loop so that
// subscriber sends never block Update.
func applyThemeCmd(rt *theme.Runtime, apply func(*theme.Runtime) error) tea.Cmd {
	return func() tea.Msg {
		before := rt.State()
		err := apply(rt)
		return themeAppliedMsg{Before: before, After: rt.State(), Err: err}
	}
}

func syncThemeCmd(client *prefs.Client, userID string, before, after theme.State) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		choice := after.Theme
		if err := client.UpdatePreferences(ctx, userID, models.PreferencesPatch{Theme: &choice}); err != nil {
			return syncResultMsg{What: "theme", Err: err}
		}
		err := events.LogThemeChanged(ctx, client, before.Theme, after.Theme, after.EffectiveTheme, "tui")
		return syncResultMsg{What: "theme", Err: err}
	}
}

func saveWidgetCmd(client *prefs.Client, userID string, pos models.WidgetPosition) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		if err := client.UpdatePreferences(ctx, userID, models.PreferencesPatch{WidgetPosition: &pos}); err != nil {
			return syncResultMsg{What: "widget position", Err: err}
		}
		err := events.LogWidgetMoved(ctx, client, pos)
		return syncResultMsg{What: "widget position", Err: err}
	}
}

func trackPageViewCmd(client *prefs.Client, page string) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		return syncResultMsg{What: "page view", Err: events.LogPageView(ctx, client, page)}
	}
}

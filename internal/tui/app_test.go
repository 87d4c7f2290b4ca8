package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-dev/folio/internal/inspector"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/prefs"
	"github.com/folio-dev/folio/internal/theme"
)

type recordingBackend struct {
	mu      sync.Mutex
	upserts []models.PreferencesUpsert
	events  []*models.AnalyticsEvent
	err     error
}

func (b *recordingBackend) SelectPreferences(context.Context, string) (*models.UserPreferences, error) {
	return nil, nil
}

func (b *recordingBackend) UpsertPreferences(_ context.Context, row models.PreferencesUpsert) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.upserts = append(b.upserts, row)
	return nil
}

func (b *recordingBackend) InsertEvent(_ context.Context, event *models.AnalyticsEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, event)
	return nil
}

func newTestModel(t *testing.T, client *prefs.Client) (model, *theme.Runtime) {
	t.Helper()
	root := theme.NewRoot()
	rt := theme.New(theme.DefaultOptions(), theme.Deps{Sink: root})
	rt.Start()
	t.Cleanup(rt.Close)

	insp := inspector.New(inspector.NewPaletteSource(rt), nil)
	t.Cleanup(insp.Attach(rt))

	return newModel(Config{Runtime: rt, Root: root, Prefs: client, UserID: "user-1"}, insp), rt
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRunRequiresRuntime(t *testing.T) {
	require.ErrorIs(t, Run(Config{}), ErrNoRuntime)
}

func TestViewSwitching(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.Equal(t, viewOverview, m.view)

	m, cmd := update(t, m, key("3"))
	assert.Equal(t, viewContrast, m.view)
	assert.Nil(t, cmd, "no page view tracking without a store")

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, viewAccessibility, m.view)
	m, _ = update(t, m, key("tab"))
	assert.Equal(t, viewOverview, m.view)
}

func TestViewSwitchTracksPageView(t *testing.T) {
	backend := &recordingBackend{}
	m, _ := newTestModel(t, prefs.New(backend))

	_, cmd := update(t, m, key("2"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, syncResultMsg{}, msg)
	require.NoError(t, msg.(syncResultMsg).Err)

	require.Len(t, backend.events, 1)
	assert.Equal(t, models.EventTypePageView, backend.events[0].EventType)
	assert.Equal(t, "demo/colors", backend.events[0].EventData["page"])
}

func TestToggleRunsInCommand(t *testing.T) {
	m, rt := newTestModel(t, nil)
	require.Equal(t, models.ThemeSystem, rt.Theme())

	m, cmd := update(t, m, key("t"))
	require.NotNil(t, cmd)
	assert.Equal(t, models.ThemeSystem, rt.Theme(), "runtime untouched until the command runs")

	msg := cmd()
	applied, ok := msg.(themeAppliedMsg)
	require.True(t, ok)
	require.NoError(t, applied.Err)
	assert.Equal(t, models.ThemeSystem, applied.Before.Theme)
	assert.Equal(t, models.ThemeLight, applied.After.Theme)

	m, cmd = update(t, m, applied)
	assert.Nil(t, cmd, "no sync without a store")
	assert.Equal(t, models.ThemeLight, m.state.Theme)
}

func TestSetDarkRestylesAndSyncs(t *testing.T) {
	backend := &recordingBackend{}
	m, rt := newTestModel(t, prefs.New(backend))

	m, cmd := update(t, m, key("d"))
	require.NotNil(t, cmd)
	m, cmd = update(t, m, cmd())

	assert.Equal(t, models.EffectiveDark, rt.EffectiveTheme())
	assert.Equal(t, models.EffectiveDark, m.state.EffectiveTheme)
	assert.Equal(t, "dark", m.styles.Theme.Name)

	require.NotNil(t, cmd)
	result, ok := cmd().(syncResultMsg)
	require.True(t, ok)
	require.NoError(t, result.Err)

	require.Len(t, backend.upserts, 1)
	require.NotNil(t, backend.upserts[0].Theme)
	assert.Equal(t, models.ThemeDark, *backend.upserts[0].Theme)
	assert.Equal(t, "user-1", backend.upserts[0].ID)
	require.Len(t, backend.events, 1)
	assert.Equal(t, models.EventTypeThemeChanged, backend.events[0].EventType)

	m, _ = update(t, m, result)
	assert.Equal(t, "Saved theme", m.status)
}

func TestSyncFailureKeepsRunning(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, cmd := update(t, m, syncResultMsg{What: "theme", Err: errors.New("offline")})
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "Could not save theme")
}

func TestThemeChangedMsgUsesFreshInspectorResults(t *testing.T) {
	m, rt := newTestModel(t, nil)
	require.NoError(t, rt.SetTheme(models.ThemeDark))

	m, _ = update(t, m, ThemeChangedMsg{State: rt.State()})
	assert.Equal(t, models.EffectiveDark, m.inspector.Theme())
	for _, result := range m.inspector.Results() {
		assert.Equal(t, models.EffectiveDark, result.Theme)
	}
}

func TestSystemKeyDisabled(t *testing.T) {
	rt := theme.New(theme.Options{EnableSystem: false, DefaultTheme: models.ThemeLight}, theme.Deps{})
	rt.Start()
	t.Cleanup(rt.Close)
	m := newModel(Config{Runtime: rt}, inspector.New(inspector.NewPaletteSource(rt), nil))

	m, cmd := update(t, m, key("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, "System theme is disabled", m.status)
}

func TestWidgetMoveAndSave(t *testing.T) {
	backend := &recordingBackend{}
	m, _ := newTestModel(t, prefs.New(backend))

	m, _ = update(t, m, key("left"))
	assert.Equal(t, models.WidgetPosition{}, m.widget, "clamped at zero")

	m, _ = update(t, m, key("right"))
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	assert.Equal(t, models.WidgetPosition{X: 10, Y: 20}, m.widget)
	assert.True(t, m.dirty)

	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.False(t, m.dirty)
	result, ok := cmd().(syncResultMsg)
	require.True(t, ok)
	require.NoError(t, result.Err)

	require.Len(t, backend.upserts, 1)
	require.NotNil(t, backend.upserts[0].WidgetPosition)
	assert.Equal(t, models.WidgetPosition{X: 10, Y: 20}, *backend.upserts[0].WidgetPosition)
	require.Len(t, backend.events, 1)
	assert.Equal(t, models.EventTypeWidgetMoved, backend.events[0].EventType)

	_, cmd = update(t, m, key("enter"))
	assert.Nil(t, cmd, "nothing to save")
}

func TestWidgetSaveOffline(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("right"))
	m, cmd := update(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "store offline")
}

func TestViewRendersEveryTab(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	assert.Contains(t, out, "Folio theme demo")
	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "Preferences are saved locally only")

	m, _ = update(t, m, key("2"))
	assert.Contains(t, m.View(), "primary-foreground")

	m, _ = update(t, m, key("3"))
	assert.Contains(t, m.View(), "Ratio:")

	m, _ = update(t, m, key("4"))
	out = m.View()
	assert.Contains(t, out, "Reduced motion: no")
	assert.Contains(t, out, "Root classes: light")
}

func TestSmallTerminal(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	out := m.View()
	assert.True(t, strings.Contains(out, "Terminal too small (40x10)."))
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// Package tui implements the Folio terminal theme demo.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/folio-dev/folio/internal/inspector"
	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/prefs"
	"github.com/folio-dev/folio/internal/theme"
	"github.com/folio-dev/folio/internal/tui/components"
	"github.com/folio-dev/folio/internal/tui/styles"
)

// ErrNoRuntime is returned by Run when Config.Runtime is nil.
var ErrNoRuntime = errors.New("tui: theme runtime is required")

// Config wires the demo to a started theme runtime and an optional store.
type Config struct {
	Runtime *theme.Runtime
	Root    *theme.Root

	// Prefs is nil when the preferences store is unavailable; StoreErr
	// then explains why.
	Prefs    *prefs.Client
	StoreErr error
	UserID   string

	// Widget is the last saved widget position.
	Widget models.WidgetPosition
}

// Run launches the demo and blocks until the user quits.
func Run(cfg Config) error {
	if cfg.Runtime == nil {
		return ErrNoRuntime
	}

	insp := inspector.New(inspector.NewPaletteSource(cfg.Runtime), nil)
	detach := insp.Attach(cfg.Runtime)
	defer detach()

	program := tea.NewProgram(newModel(cfg, insp), tea.WithAltScreen())

	// Registered after the inspector so results are fresh when the message lands.
	unsubscribe := cfg.Runtime.Subscribe(themeSubscriber(program))
	defer unsubscribe()

	_, err := program.Run()
	return err
}

type model struct {
	cfg       Config
	inspector *inspector.Inspector
	logger    zerolog.Logger

	width  int
	height int
	styles styles.Styles
	view   viewID
	state  theme.State
	widget models.WidgetPosition
	dirty  bool

	status      string
	lastUpdated time.Time
	now         time.Time
}

const (
	minWidth   = 60
	minHeight  = 15
	staleAfter = 30 * time.Second
	widgetStep = 10
)

func newModel(cfg Config, insp *inspector.Inspector) model {
	now := time.Now()
	state := cfg.Runtime.State()
	return model{
		cfg:         cfg,
		inspector:   insp,
		logger:      logging.Component("tui"),
		styles:      styles.StylesFor(state.EffectiveTheme),
		view:        viewOverview,
		state:       state,
		widget:      cfg.Widget,
		lastUpdated: now,
		now:         now,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), trackPageViewCmd(m.cfg.Prefs, m.view.page()))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ThemeChangedMsg:
		m = m.applyState(msg.State)
	case themeAppliedMsg:
		if msg.Err != nil {
			m.status = "Theme change failed: " + msg.Err.Error()
			return m, nil
		}
		m = m.applyState(msg.After)
		if msg.Before.Theme == msg.After.Theme {
			return m, nil
		}
		return m, syncThemeCmd(m.cfg.Prefs, m.cfg.UserID, msg.Before, msg.After)
	case syncResultMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Str("what", msg.What).Msg("preferences sync failed")
			m.status = fmt.Sprintf("Could not save %s (working offline)", msg.What)
		} else if msg.What != "page view" {
			m.status = fmt.Sprintf("Saved %s", msg.What)
		}
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rt := m.cfg.Runtime
	switch msg.String() {
	case "1":
		return m.switchView(viewOverview)
	case "2":
		return m.switchView(viewColors)
	case "3":
		return m.switchView(viewContrast)
	case "4":
		return m.switchView(viewAccessibility)
	case "tab":
		return m.switchView(nextView(m.view))
	case "t":
		return m, applyThemeCmd(rt, func(r *theme.Runtime) error {
			r.Toggle()
			return nil
		})
	case "l":
		return m, setThemeCmd(rt, models.ThemeLight)
	case "d":
		return m, setThemeCmd(rt, models.ThemeDark)
	case "s":
		if !rt.Options().EnableSystem {
			m.status = "System theme is disabled"
			return m, nil
		}
		return m, setThemeCmd(rt, models.ThemeSystem)
	case "r":
		m.inspector.Refresh()
		m.lastUpdated = m.now
		m.status = "Contrast results refreshed"
	case "up":
		m = m.moveWidget(0, -widgetStep)
	case "down":
		m = m.moveWidget(0, widgetStep)
	case "left":
		m = m.moveWidget(-widgetStep, 0)
	case "right":
		m = m.moveWidget(widgetStep, 0)
	case "enter":
		if !m.dirty {
			return m, nil
		}
		m.dirty = false
		if m.cfg.Prefs == nil {
			m.status = "Widget position kept in memory (store offline)"
			return m, nil
		}
		return m, saveWidgetCmd(m.cfg.Prefs, m.cfg.UserID, m.widget)
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func setThemeCmd(rt *theme.Runtime, choice models.ThemeChoice) tea.Cmd {
	return applyThemeCmd(rt, func(r *theme.Runtime) error {
		return r.SetTheme(choice)
	})
}

func (m model) switchView(view viewID) (tea.Model, tea.Cmd) {
	if view == m.view {
		return m, nil
	}
	m.view = view
	return m, trackPageViewCmd(m.cfg.Prefs, view.page())
}

func (m model) applyState(state theme.State) model {
	if state.EffectiveTheme != m.state.EffectiveTheme {
		m.styles = styles.StylesFor(state.EffectiveTheme)
	}
	m.state = state
	m.lastUpdated = m.now
	return m
}

func (m model) moveWidget(dx, dy float64) model {
	m.widget.X = max(0, m.widget.X+dx)
	m.widget.Y = max(0, m.widget.Y+dy)
	m.dirty = true
	return m
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", joinLines(m.smallViewLines()))
		}
	}

	lines := []string{
		m.styles.Title.Render("Folio theme demo"),
		m.tabBar(),
		"",
	}

	lines = append(lines, m.viewLines()...)
	if m.status != "" {
		lines = append(lines, "", m.styles.Info.Render(m.status))
	}
	lines = append(lines, "", m.styles.Muted.Render(m.lastUpdatedLine()))
	lines = append(lines, "", components.RenderFooter(m.styles, components.ThemeQuickActions(m.state.Theme, m.cfg.Runtime.Options().EnableSystem), m.width))
	lines = append(lines, m.styles.Muted.Render("Shortcuts: q quit | tab/1-4 views | r refresh | arrows move widget | enter save"))

	return fmt.Sprintf("%s\n", joinLines(lines))
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

type viewID int

const (
	viewOverview viewID = iota
	viewColors
	viewContrast
	viewAccessibility
)

var viewOrder = []viewID{viewOverview, viewColors, viewContrast, viewAccessibility}

func (v viewID) String() string {
	switch v {
	case viewColors:
		return "Colors"
	case viewContrast:
		return "Contrast"
	case viewAccessibility:
		return "Accessibility"
	default:
		return "Overview"
	}
}

// page is the name recorded in page_view events.
func (v viewID) page() string {
	return "demo/" + strings.ToLower(v.String())
}

func nextView(current viewID) viewID {
	for i, v := range viewOrder {
		if v == current {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return viewOverview
}

func (m model) tabBar() string {
	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == m.view {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) viewLines() []string {
	switch m.view {
	case viewColors:
		return []string{
			m.styles.Header.Render(fmt.Sprintf("Palette (%s)", m.styles.Theme.Name)),
			components.RenderPalette(m.styles),
		}
	case viewContrast:
		return m.contrastLines()
	case viewAccessibility:
		return m.accessibilityLines()
	default:
		return m.overviewLines()
	}
}

func (m model) overviewLines() []string {
	results := m.inspector.Results()
	failing := m.inspector.Failing()

	lines := []string{
		m.styles.Header.Render("Theme"),
		m.styles.Text.Render(fmt.Sprintf("Choice: %s  Effective: %s", m.state.Theme, m.state.EffectiveTheme)),
		m.styles.Text.Render(fmt.Sprintf("Contrast: %d of %d pairs pass AA", len(results)-len(failing), len(results))),
		"",
		m.styles.Header.Render("Preferences"),
	}
	if m.cfg.Prefs == nil {
		lines = append(lines, components.StoreOffline(storeReason(m.cfg.StoreErr)).RenderCompact(m.styles))
	} else {
		lines = append(lines, m.styles.Text.Render("Synced for user "+m.cfg.UserID))
	}

	label := fmt.Sprintf("Widget (%.0f, %.0f)", m.widget.X, m.widget.Y)
	if m.dirty {
		label += " *"
	}
	widget := m.styles.Panel.Render(label)
	lines = append(lines, "", lipgloss.NewStyle().
		MarginLeft(min(int(m.widget.X)/widgetStep, 40)).
		MarginTop(min(int(m.widget.Y)/widgetStep, 5)).
		Render(widget))
	return lines
}

func (m model) contrastLines() []string {
	results := m.inspector.Results()
	if len(results) == 0 {
		return []string{components.EmptyResults().Render(m.styles)}
	}

	lines := []string{
		m.styles.Header.Render(fmt.Sprintf("Contrast in %s theme", m.inspector.Theme())),
	}
	if len(m.inspector.Failing()) == 0 {
		lines = append(lines, components.AllPassing().RenderCompact(m.styles))
	}

	cards := make([]string, 0, len(results))
	for _, result := range results {
		cards = append(cards, components.RenderContrastCard(m.styles, result))
	}
	return append(lines, arrangeCards(cards, m.width)...)
}

func (m model) accessibilityLines() []string {
	lines := []string{
		m.styles.Header.Render("Accessibility"),
		m.styles.Text.Render("Reduced motion: " + yesNo(m.state.PrefersReducedMotion)),
		m.styles.Text.Render("Follows system: " + yesNo(m.cfg.Runtime.Options().EnableSystem)),
	}
	if m.cfg.Root != nil {
		lines = append(lines, m.styles.Text.Render("Root classes: "+defaultString(m.cfg.Root.ClassName(), "(none)")))
	}

	failing := m.inspector.Failing()
	lines = append(lines, "", m.styles.Header.Render("Failing pairs"))
	if len(failing) == 0 {
		return append(lines, components.AllPassing().RenderCompact(m.styles))
	}
	for _, result := range failing {
		lines = append(lines, fmt.Sprintf("%s %s %.2f:1",
			components.RenderCheckBadge(m.styles, "AA", false),
			m.styles.Text.Render(result.Pair.Label),
			result.Ratio,
		))
	}
	return lines
}

// arrangeCards lays cards out in rows that fit width.
func arrangeCards(cards []string, width int) []string {
	if width <= 0 || len(cards) == 0 {
		return cards
	}
	perRow := max(1, width/lipgloss.Width(cards[0]))

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return rows
}

func storeReason(err error) string {
	if err == nil {
		return "no preferences store configured"
	}
	return err.Error()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	out := lines[0]
	for _, line := range lines[1:] {
		out += "\n" + line
	}
	return out
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) lastUpdatedLine() string {
	if m.lastUpdated.IsZero() {
		return "Last updated: --"
	}
	label := m.lastUpdated.Format("15:04:05")
	if m.isStale() {
		label += " (stale)"
	}
	return fmt.Sprintf("Last updated: %s", label)
}

func (m model) isStale() bool {
	if m.lastUpdated.IsZero() || m.now.IsZero() {
		return false
	}
	return m.now.Sub(m.lastUpdated) > staleAfter
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/db"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/theme"
)

// useConfig installs a default config rooted in a temp state dir for the
// duration of the test.
func useConfig(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Global.StateDir = t.TempDir()
	cfg.TUI.Palette = config.PaletteLight
	cfg.Store.SupabaseURL = ""
	cfg.Store.SupabaseAnonKey = ""
	if mutate != nil {
		mutate(cfg)
	}

	previous := appConfig
	appConfig = cfg
	t.Cleanup(func() { appConfig = previous })
	return cfg
}

func setFlag(t *testing.T, target *bool, value bool) {
	t.Helper()
	previous := *target
	*target = value
	t.Cleanup(func() { *target = previous })
}

func decodeThemeResult(t *testing.T, buf *bytes.Buffer) themeResult {
	t.Helper()
	var result themeResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	return result
}

func TestThemeSetAndGet(t *testing.T) {
	cfg := useConfig(t, nil)
	setFlag(t, &themeNoSync, true)
	setFlag(t, &jsonOutput, true)

	var buf bytes.Buffer
	err := changeTheme(context.Background(), &buf, func(rt *theme.Runtime) error {
		return rt.SetTheme(models.ThemeDark)
	})
	require.NoError(t, err)

	result := decodeThemeResult(t, &buf)
	assert.Equal(t, models.ThemeDark, result.Theme)
	assert.Equal(t, models.EffectiveDark, result.EffectiveTheme)
	assert.Equal(t, []string{"dark"}, result.Classes)
	assert.Nil(t, result.Synced)
	assert.Equal(t, cfg.StorageFile(), result.StorageFile)

	raw, err := os.ReadFile(cfg.StorageFile())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"dark"`)

	// A fresh session reads the stored choice back.
	session := openThemeSession(cfg)
	defer session.Close()
	buf.Reset()
	require.NoError(t, writeThemeState(&buf, session, nil))
	assert.Equal(t, models.ThemeDark, decodeThemeResult(t, &buf).Theme)
}

func TestThemeToggleCycles(t *testing.T) {
	useConfig(t, nil)
	setFlag(t, &themeNoSync, true)
	setFlag(t, &jsonOutput, true)

	toggle := func(rt *theme.Runtime) error {
		rt.Toggle()
		return nil
	}

	want := []models.ThemeChoice{models.ThemeLight, models.ThemeDark, models.ThemeSystem, models.ThemeLight}
	for _, expected := range want {
		var buf bytes.Buffer
		require.NoError(t, changeTheme(context.Background(), &buf, toggle))
		assert.Equal(t, expected, decodeThemeResult(t, &buf).Theme)
	}
}

func TestThemeDataAttribute(t *testing.T) {
	useConfig(t, func(cfg *config.Config) {
		cfg.Theme.Attribute = "theme"
	})
	setFlag(t, &themeNoSync, true)
	setFlag(t, &jsonOutput, true)

	var buf bytes.Buffer
	require.NoError(t, changeTheme(context.Background(), &buf, func(rt *theme.Runtime) error {
		return rt.SetTheme(models.ThemeLight)
	}))
	assert.Contains(t, decodeThemeResult(t, &buf).Classes, "data-theme=light")
}

func TestThemeSyncOfflineStillApplies(t *testing.T) {
	useConfig(t, nil)
	setFlag(t, &themeNoSync, false)
	setFlag(t, &jsonOutput, true)

	var buf bytes.Buffer
	require.NoError(t, changeTheme(context.Background(), &buf, func(rt *theme.Runtime) error {
		return rt.SetTheme(models.ThemeDark)
	}))

	result := decodeThemeResult(t, &buf)
	assert.Equal(t, models.ThemeDark, result.Theme)
	require.NotNil(t, result.Synced)
	assert.False(t, *result.Synced)
}

func TestThemeSyncToSQLite(t *testing.T) {
	cfg := useConfig(t, func(cfg *config.Config) {
		cfg.Store.Backend = config.BackendSQLite
	})
	cfg.Store.SQLitePath = filepath.Join(cfg.Global.StateDir, "folio.db")
	setFlag(t, &themeNoSync, false)
	setFlag(t, &jsonOutput, true)

	var buf bytes.Buffer
	require.NoError(t, changeTheme(context.Background(), &buf, func(rt *theme.Runtime) error {
		return rt.SetTheme(models.ThemeDark)
	}))
	result := decodeThemeResult(t, &buf)
	require.NotNil(t, result.Synced)
	assert.True(t, *result.Synced)

	userID, ok := theme.NewFileStorage(cfg.StorageFile()).Get(userIDKey)
	require.True(t, ok)

	ctx := context.Background()
	st, err := db.OpenStore(ctx, cfg.Store.SQLitePath)
	require.NoError(t, err)
	defer st.Close()

	row, err := st.SelectPreferences(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, row.Theme)

	changed := models.EventTypeThemeChanged
	page, err := st.Query(ctx, db.EventQuery{Type: &changed, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "dark", page.Events[0].EventData["to"])
}

func TestResolveUserIDPrefersConfig(t *testing.T) {
	cfg := useConfig(t, func(cfg *config.Config) {
		cfg.Store.UserID = "configured"
	})
	storage := theme.NewMemoryStorage()
	assert.Equal(t, "configured", resolveUserID(cfg, storage))

	cfg.Store.UserID = ""
	generated := resolveUserID(cfg, storage)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, resolveUserID(cfg, storage), "generated id is reused")
}

func TestOpenStoreMissingCredentials(t *testing.T) {
	cfg := useConfig(t, nil)

	_, err := openStore(context.Background(), cfg)
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Hint, "SUPABASE_URL")

	cfg.Store.Backend = config.BackendPostgres
	cfg.Store.PostgresDSN = ""
	_, err = openStore(context.Background(), cfg)
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Message, "postgres")
}

func TestCheckContrast(t *testing.T) {
	result, err := checkContrast("#000000", "#ffffff", "Background / Foreground")
	require.NoError(t, err)
	assert.InDelta(t, 21.0, result.Ratio, 0.01)
	assert.True(t, result.Compliance.AAA)
	assert.Empty(t, result.Suggestion)

	result, err = checkContrast("#ffffff", "#cccccc", "Card / Card Foreground")
	require.NoError(t, err)
	assert.False(t, result.Compliance.AA)
	assert.Contains(t, result.Suggestion, "--card-foreground")

	_, err = checkContrast("#fff", "#000000", "x")
	require.Error(t, err)
}

func TestInspectEffectiveTheme(t *testing.T) {
	useConfig(t, nil)

	effective, err := inspectEffectiveTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, models.EffectiveDark, effective)

	effective, err = inspectEffectiveTheme("")
	require.NoError(t, err)
	assert.Equal(t, models.EffectiveLight, effective)

	_, err = inspectEffectiveTheme("sepia")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
}

func TestDescribeColor(t *testing.T) {
	info, err := describeColor("#3366CC")
	require.NoError(t, err)
	assert.Equal(t, "#3366cc", info.Hex)
	assert.Equal(t, "#3366CC", info.Display)
	assert.Equal(t, "#ffffff", info.BestTextHex)

	_, err = describeColor("not-a-color")
	require.Error(t, err)
}

func TestParseEventData(t *testing.T) {
	data, err := parseEventData("")
	require.NoError(t, err)
	assert.Empty(t, data)

	data, err = parseEventData(`{"page":"home","count":3}`)
	require.NoError(t, err)
	assert.Equal(t, "home", data["page"])
	assert.Equal(t, json.Number("3"), data["count"])

	_, err = parseEventData(`[1,2]`)
	require.Error(t, err)

	_, err = parseEventData(`{"a":1}{"b":2}`)
	require.Error(t, err)
}

func newPatchCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "set"}
	cmd.Flags().StringVar(&prefsSetTheme, "theme", "", "")
	cmd.Flags().Float64Var(&prefsSetX, "x", 0, "")
	cmd.Flags().Float64Var(&prefsSetY, "y", 0, "")
	return cmd
}

func TestBuildPatch(t *testing.T) {
	cmd := newPatchCommand()
	_, err := buildPatch(cmd)
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight), "empty patch is rejected")

	cmd = newPatchCommand()
	require.NoError(t, cmd.Flags().Set("theme", "dark"))
	patch, err := buildPatch(cmd)
	require.NoError(t, err)
	require.NotNil(t, patch.Theme)
	assert.Equal(t, models.ThemeDark, *patch.Theme)
	assert.Nil(t, patch.WidgetPosition)

	cmd = newPatchCommand()
	require.NoError(t, cmd.Flags().Set("x", "12"))
	_, err = buildPatch(cmd)
	require.Error(t, err, "x without y")

	cmd = newPatchCommand()
	require.NoError(t, cmd.Flags().Set("x", "12"))
	require.NoError(t, cmd.Flags().Set("y", "34.5"))
	patch, err = buildPatch(cmd)
	require.NoError(t, err)
	assert.Equal(t, &models.WidgetPosition{X: 12, Y: 34.5}, patch.WidgetPosition)

	cmd = newPatchCommand()
	require.NoError(t, cmd.Flags().Set("theme", "sepia"))
	_, err = buildPatch(cmd)
	require.ErrorIs(t, err, models.ErrInvalidThemeChoice)
}

func TestWriteOutputJSONL(t *testing.T) {
	setFlag(t, &jsonlOutput, true)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, []map[string]int{{"a": 1}, {"b": 2}}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, lines)
}

func TestPrintErrorIncludesHint(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, &PreflightError{Message: "boom", Hint: "try this", NextStep: "folio init"})
	out := buf.String()
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "Hint: try this")
	assert.Contains(t, out, "Next: folio init")
}

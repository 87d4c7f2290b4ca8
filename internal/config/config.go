// Package config loads folio configuration from a YAML file, FOLIO_*
// environment variables and built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/theme"
)

// Store backends.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// TUI palette modes.
const (
	PaletteAuto  = "auto"
	PaletteLight = "light"
	PaletteDark  = "dark"
)

// Config is the full application configuration.
type Config struct {
	Global  GlobalConfig  `mapstructure:"global"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	TUI     TUIConfig     `mapstructure:"tui"`

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// GlobalConfig holds directory locations.
type GlobalConfig struct {
	StateDir  string `mapstructure:"state_dir"`
	ConfigDir string `mapstructure:"config_dir"`
}

// ThemeConfig mirrors theme.Options.
type ThemeConfig struct {
	Default                   string `mapstructure:"default"`
	StorageKey                string `mapstructure:"storage_key"`
	Attribute                 string `mapstructure:"attribute"`
	EnableSystem              bool   `mapstructure:"enable_system"`
	DisableTransitionOnChange bool   `mapstructure:"disable_transition_on_change"`
}

// StoreConfig selects and configures the preferences backend.
type StoreConfig struct {
	Backend         string        `mapstructure:"backend"`
	SupabaseURL     string        `mapstructure:"supabase_url"`
	SupabaseAnonKey string        `mapstructure:"supabase_anon_key"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	PostgresDSN     string        `mapstructure:"postgres_dsn"`
	Timeout         time.Duration `mapstructure:"timeout"`

	// UserID is the preferences row id. Empty means a generated id kept in
	// local storage.
	UserID string `mapstructure:"user_id"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TUIConfig configures the terminal demo.
type TUIConfig struct {
	// Palette forces light or dark detection of the terminal background; auto detects it.
	Palette string `mapstructure:"palette"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	configDir := DefaultConfigDir()
	stateDir := DefaultStateDir()
	return &Config{
		Global: GlobalConfig{
			StateDir:  stateDir,
			ConfigDir: configDir,
		},
		Theme: ThemeConfig{
			Default:      string(models.ThemeSystem),
			StorageKey:   theme.DefaultStorageKey,
			Attribute:    theme.AttributeClass,
			EnableSystem: true,
		},
		Store: StoreConfig{
			Backend:    BackendSupabase,
			SQLitePath: filepath.Join(stateDir, "folio.db"),
			Timeout:    5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		TUI: TUIConfig{
			Palette: PaletteAuto,
		},
	}
}

// DefaultConfigDir honors XDG_CONFIG_HOME and falls back to ~/.config/folio.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "folio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "folio")
	}
	return filepath.Join(home, ".config", "folio")
}

// DefaultStateDir honors XDG_STATE_HOME and falls back to ~/.local/state/folio.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "folio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "state", "folio")
	}
	return filepath.Join(home, ".local", "state", "folio")
}

// StorageFile is where the theme choice and generated user id are kept.
func (c *Config) StorageFile() string {
	return filepath.Join(c.Global.StateDir, "storage.json")
}

// ThemeOptions converts the theme section to runtime options.
func (c *Config) ThemeOptions() theme.Options {
	return theme.Options{
		DefaultTheme:              models.ThemeChoice(strings.ToLower(strings.TrimSpace(c.Theme.Default))),
		StorageKey:                c.Theme.StorageKey,
		Attribute:                 c.Theme.Attribute,
		EnableSystem:              c.Theme.EnableSystem,
		DisableTransitionOnChange: c.Theme.DisableTransitionOnChange,
	}
}

// Validate checks enumerations and required values.
func (c *Config) Validate() error {
	validation := &models.ValidationErrors{}

	if strings.TrimSpace(c.Global.StateDir) == "" {
		validation.AddMessage("global.state_dir", "state directory is required")
	}
	if _, err := models.ParseThemeChoice(c.Theme.Default); err != nil {
		validation.AddMessage("theme.default", "must be one of light, dark, system")
	}
	if strings.TrimSpace(c.Theme.StorageKey) == "" {
		validation.AddMessage("theme.storage_key", "storage key is required")
	}
	if strings.TrimSpace(c.Theme.Attribute) == "" {
		validation.AddMessage("theme.attribute", "attribute is required")
	}

	switch c.Store.Backend {
	case BackendSupabase, BackendSQLite, BackendPostgres:
	default:
		validation.AddMessage("store.backend", "must be one of supabase, sqlite, postgres")
	}
	if c.Store.Timeout < 0 {
		validation.AddMessage("store.timeout", "must not be negative")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		validation.AddMessage("logging.format", "must be console or json")
	}

	switch c.TUI.Palette {
	case PaletteAuto, PaletteLight, PaletteDark:
	default:
		validation.AddMessage("tui.palette", "must be auto, light or dark")
	}

	return validation.Err()
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FOLIO_STORE_BACKEND.
const EnvPrefix = "FOLIO"

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the default config directory and is optional.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()
	v := newViper(defaults)

	if path != "" {
		v.SetConfigFile(expandPath(path))
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaults.Global.ConfigDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("global.state_dir", defaults.Global.StateDir)
	v.SetDefault("global.config_dir", defaults.Global.ConfigDir)

	v.SetDefault("theme.default", defaults.Theme.Default)
	v.SetDefault("theme.storage_key", defaults.Theme.StorageKey)
	v.SetDefault("theme.attribute", defaults.Theme.Attribute)
	v.SetDefault("theme.enable_system", defaults.Theme.EnableSystem)
	v.SetDefault("theme.disable_transition_on_change", defaults.Theme.DisableTransitionOnChange)

	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.supabase_url", "")
	v.SetDefault("store.supabase_anon_key", "")
	v.SetDefault("store.sqlite_path", "")
	v.SetDefault("store.postgres_dsn", "")
	v.SetDefault("store.timeout", defaults.Store.Timeout)
	v.SetDefault("store.user_id", "")

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("tui.palette", defaults.TUI.Palette)

	// Names used by hosted project dashboards.
	_ = v.BindEnv("store.supabase_url", "FOLIO_STORE_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("store.supabase_anon_key", "FOLIO_STORE_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY")
	_ = v.BindEnv("store.postgres_dsn", "FOLIO_STORE_POSTGRES_DSN", "DATABASE_URL")

	return v
}

// normalize expands paths and derives values that depend on other keys.
func (c *Config) normalize() {
	c.Global.StateDir = expandPath(strings.TrimSpace(c.Global.StateDir))
	c.Global.ConfigDir = expandPath(strings.TrimSpace(c.Global.ConfigDir))
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	c.Store.SupabaseURL = strings.TrimSpace(c.Store.SupabaseURL)
	c.Store.SupabaseAnonKey = strings.TrimSpace(c.Store.SupabaseAnonKey)
	c.Store.UserID = strings.TrimSpace(c.Store.UserID)
	c.TUI.Palette = strings.ToLower(strings.TrimSpace(c.TUI.Palette))

	if strings.TrimSpace(c.Store.SQLitePath) == "" {
		c.Store.SQLitePath = filepath.Join(c.Global.StateDir, "folio.db")
	}
	c.Store.SQLitePath = expandPath(c.Store.SQLitePath)
}

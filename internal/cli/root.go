// Package cli implements the folio command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/logging"
)

var (
	cfgFile        string
	jsonOutput     bool
	jsonlOutput    bool
	logLevel       string
	logFormat      string
	nonInteractive bool
	noColor        bool
	noProgress     bool

	appConfig *config.Config
)

// Build information, set by Execute.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Theme runtime, contrast inspector and preferences store",
	Long: `folio manages a light/dark/system theme choice, checks WCAG contrast
for the theme palette and syncs display preferences to a remote store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput && jsonlOutput {
			return errors.New("--json and --jsonl are mutually exclusive")
		}
		return initConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/folio/config.yaml)")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (console, json)")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt; use defaults")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

// Execute runs the root command and reports errors on stderr.
func Execute(version, commit, date string) error {
	buildVersion, buildCommit, buildDate = version, commit, date
	rootCmd.Version = version

	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return &PreflightError{
			Message:  fmt.Sprintf("invalid configuration: %v", err),
			Hint:     "Fix the config file or FOLIO_* environment variables",
			NextStep: "folio init --force",
		}
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	}); err != nil {
		return err
	}

	appConfig = cfg
	logger := logging.Component("cli")
	logger.Debug().Str("config_file", cfg.ConfigFile).Msg("configuration loaded")
	return nil
}

// GetConfig returns the loaded configuration, or nil before the root command runs.
func GetConfig() *config.Config {
	return appConfig
}

func currentConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	return config.DefaultConfig()
}

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether --jsonl was given.
func IsJSONLOutput() bool {
	return jsonlOutput
}

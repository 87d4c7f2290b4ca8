package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/db"
	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/pgstore"
	"github.com/folio-dev/folio/internal/prefs"
	"github.com/folio-dev/folio/internal/supabase"
	"github.com/folio-dev/folio/internal/theme"
)

// userIDKey holds the generated preferences id in local storage.
const userIDKey = "folio.user_id"

// themeSession is a started runtime over the local storage file.
type themeSession struct {
	Runtime *theme.Runtime
	Storage *theme.FileStorage
	Root    *theme.Root
}

func openThemeSession(cfg *config.Config) *themeSession {
	storage := theme.NewFileStorage(cfg.StorageFile())
	root := theme.NewRoot()
	rt := theme.New(cfg.ThemeOptions(), theme.Deps{
		Storage:       storage,
		Sink:          root,
		PrefersDark:   prefersDarkFor(cfg.TUI.Palette),
		ReducedMotion: theme.EnvReducedMotion(),
	})
	rt.Start()
	return &themeSession{Runtime: rt, Storage: storage, Root: root}
}

func (s *themeSession) Close() {
	s.Runtime.Close()
}

func prefersDarkFor(palette string) *theme.Signal {
	switch palette {
	case config.PaletteLight:
		return theme.NewSignal(false)
	case config.PaletteDark:
		return theme.NewSignal(true)
	default:
		return theme.TerminalPrefersDark()
	}
}

// resolveUserID returns the configured id, or a generated one kept in storage.
func resolveUserID(cfg *config.Config, storage theme.Storage) string {
	if cfg.Store.UserID != "" {
		return cfg.Store.UserID
	}
	if id, ok := storage.Get(userIDKey); ok && id != "" {
		return id
	}
	id := uuid.New().String()
	if err := storage.Set(userIDKey, id); err != nil {
		logger := logging.Component("cli")
		logger.Warn().Err(err).Msg("failed to persist generated user id")
	}
	return id
}

// store is an opened preferences backend.
type store struct {
	Backend prefs.Backend
	close   func()
}

func (s *store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// openStore opens the configured backend.
func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	logger := logging.Component("store")

	switch cfg.Store.Backend {
	case config.BackendSQLite:
		sqliteStore, err := db.OpenStore(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &store{Backend: sqliteStore, close: func() { sqliteStore.Close() }}, nil

	case config.BackendPostgres:
		if cfg.Store.PostgresDSN == "" {
			return nil, &PreflightError{
				Message:  "postgres backend selected but no DSN configured",
				Hint:     "Set store.postgres_dsn or DATABASE_URL",
				NextStep: "folio init",
			}
		}
		pg, err := pgstore.Open(ctx, cfg.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return &store{Backend: pg, close: pg.Close}, nil

	default:
		client, err := supabase.New(supabase.Config{
			URL:     cfg.Store.SupabaseURL,
			AnonKey: cfg.Store.SupabaseAnonKey,
			Timeout: cfg.Store.Timeout,
		})
		if err != nil {
			if errors.Is(err, supabase.ErrMissingURL) || errors.Is(err, supabase.ErrMissingAnonKey) {
				return nil, &PreflightError{
					Message:  err.Error(),
					Hint:     "Set SUPABASE_URL and SUPABASE_ANON_KEY, or use store.backend: sqlite",
					NextStep: "folio init",
				}
			}
			return nil, err
		}
		client.Logger = logger
		return &store{Backend: client}, nil
	}
}

func newPrefsClient(backend prefs.Backend) *prefs.Client {
	return prefs.New(backend, prefs.WithLogger(logging.Component("prefs")))
}

// withTimeout bounds one remote call by store.timeout.
func withTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.Store.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Store.Timeout)
}

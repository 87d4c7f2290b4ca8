// Package pgstore is a prefs.Backend on a Postgres database with the same
// tables as the hosted store.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/prefs"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_preferences (
    id text PRIMARY KEY,
    theme text NOT NULL DEFAULT 'system' CHECK (theme IN ('light', 'dark', 'system')),
    widget_position jsonb NOT NULL DEFAULT '{"x":0,"y":0}'::jsonb,
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS analytics_events (
    id text PRIMARY KEY,
    event_type text NOT NULL,
    event_data jsonb NOT NULL DEFAULT '{}'::jsonb,
    created_at timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analytics_events_type_created
    ON analytics_events (event_type, created_at);
`

// Store holds a connection pool.
type Store struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

var _ prefs.Backend = (*Store)(nil)

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{pool: pool, logger: logging.Component("pgstore")}, nil
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// SelectPreferences fetches one row by primary key.
func (s *Store) SelectPreferences(ctx context.Context, id string) (*models.UserPreferences, error) {
	var row models.UserPreferences
	var theme string
	var position []byte

	err := s.pool.QueryRow(ctx, `
		SELECT id, theme, widget_position, created_at, updated_at
		FROM user_preferences WHERE id = $1
	`, id).Scan(&row.ID, &theme, &position, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, prefs.NotFound("select", "", "no preferences for "+id, 0)
		}
		return nil, mapError("select", err)
	}

	row.Theme = models.ThemeChoice(theme)
	if err := json.Unmarshal(position, &row.WidgetPosition); err != nil {
		s.logger.Warn().Err(err).Str("id", id).Msg("failed to parse widget position")
	}
	return &row, nil
}

// UpsertPreferences inserts the row or merges only the supplied columns plus updated_at.
func (s *Store) UpsertPreferences(ctx context.Context, row models.PreferencesUpsert) error {
	if err := row.Validate(); err != nil {
		return err
	}

	updatedAt := row.UpdatedAt.UTC()
	columns := []string{"id", "created_at", "updated_at"}
	args := []any{row.ID, updatedAt, updatedAt}
	updates := []string{"updated_at = EXCLUDED.updated_at"}

	if row.Theme != nil {
		columns = append(columns, "theme")
		args = append(args, string(*row.Theme))
		updates = append(updates, "theme = EXCLUDED.theme")
	}
	if row.WidgetPosition != nil {
		data, err := json.Marshal(row.WidgetPosition)
		if err != nil {
			return fmt.Errorf("marshal widget position: %w", err)
		}
		columns = append(columns, "widget_position")
		args = append(args, string(data))
		updates = append(updates, "widget_position = EXCLUDED.widget_position")
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`
		INSERT INTO user_preferences (%s) VALUES (%s)
		ON CONFLICT (id) DO UPDATE SET %s
	`, strings.Join(columns, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapError("upsert", err)
	}
	return nil
}

// InsertEvent appends one analytics row, assigning id and created_at when missing.
func (s *Store) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	data := event.EventData
	if data == nil {
		data = map[string]any{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	if _, err := s.pool.Exec(ctx, `
		INSERT INTO analytics_events (id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4)
	`, event.ID, string(event.EventType), string(dataJSON), event.CreatedAt.UTC()); err != nil {
		return mapError("insert", err)
	}
	return nil
}

// mapError keeps the SQLSTATE of server errors on the RemoteError.
func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &prefs.RemoteError{Op: op, Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}
	return &prefs.RemoteError{Op: op, Err: err}
}

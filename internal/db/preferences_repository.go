package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/prefs"
)

// PreferencesRepository persists user_preferences rows.
type PreferencesRepository struct {
	db *DB
}

// NewPreferencesRepository creates a new PreferencesRepository.
func NewPreferencesRepository(db *DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// SelectPreferences retrieves the row for id. A missing row matches prefs.ErrNotFound.
func (r *PreferencesRepository) SelectPreferences(ctx context.Context, id string) (*models.UserPreferences, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, theme, widget_position_json, created_at, updated_at
		FROM user_preferences WHERE id = ?
	`, id)

	var prefsRow models.UserPreferences
	var theme, positionJSON, createdAt, updatedAt string
	if err := row.Scan(&prefsRow.ID, &theme, &positionJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", prefs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to scan preferences: %w", err)
	}

	prefsRow.Theme = models.ThemeChoice(theme)
	if err := json.Unmarshal([]byte(positionJSON), &prefsRow.WidgetPosition); err != nil {
		r.db.logger.Warn().Err(err).Str("id", id).Msg("failed to parse widget position")
	}
	prefsRow.CreatedAt = parseTime(createdAt)
	prefsRow.UpdatedAt = parseTime(updatedAt)

	return &prefsRow, nil
}

// UpsertPreferences inserts the row or merges only the supplied columns
// plus updated_at into the existing one.
func (r *PreferencesRepository) UpsertPreferences(ctx context.Context, row models.PreferencesUpsert) error {
	if err := row.Validate(); err != nil {
		return err
	}

	updatedAt := row.UpdatedAt.UTC().Format(timeLayout)
	columns := []string{"id", "created_at", "updated_at"}
	args := []any{row.ID, updatedAt, updatedAt}
	updates := []string{"updated_at = excluded.updated_at"}

	if row.Theme != nil {
		columns = append(columns, "theme")
		args = append(args, string(*row.Theme))
		updates = append(updates, "theme = excluded.theme")
	}
	if row.WidgetPosition != nil {
		data, err := json.Marshal(row.WidgetPosition)
		if err != nil {
			return fmt.Errorf("failed to marshal widget position: %w", err)
		}
		columns = append(columns, "widget_position_json")
		args = append(args, string(data))
		updates = append(updates, "widget_position_json = excluded.widget_position_json")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf(`
		INSERT INTO user_preferences (%s) VALUES (%s)
		ON CONFLICT(id) DO UPDATE SET %s
	`, strings.Join(columns, ", "), placeholders, strings.Join(updates, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}

// Delete removes the row for id.
func (r *PreferencesRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_preferences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete preferences: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", prefs.ErrNotFound, id)
	}
	return nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/folio-dev/folio/internal/models"
)

// ErrEventNotFound is returned when no analytics event has the given id.
var ErrEventNotFound = errors.New("event not found")

// AnalyticsRepository appends and reads analytics_events rows.
type AnalyticsRepository struct {
	db *DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// EventQuery defines filters for listing events.
type EventQuery struct {
	Type   *models.EventType // Filter by event type
	Since  *time.Time        // Events at or after this time (inclusive)
	Cursor string            // Pagination cursor (event ID)
	Limit  int               // Max results to return
}

// EventPage represents a page of query results.
type EventPage struct {
	Events     []*models.AnalyticsEvent
	NextCursor string
}

// InsertEvent appends an event, assigning id and created_at when missing.
func (r *AnalyticsRepository) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	} else {
		event.CreatedAt = event.CreatedAt.UTC()
	}

	data := event.EventData
	if data == nil {
		data = map[string]any{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analytics_events (id, event_type, event_data_json, created_at)
		VALUES (?, ?, ?, ?)
	`,
		event.ID,
		string(event.EventType),
		string(dataJSON),
		event.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Get retrieves an event by ID.
func (r *AnalyticsRepository) Get(ctx context.Context, id string) (*models.AnalyticsEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, event_type, event_data_json, created_at
		FROM analytics_events WHERE id = ?
	`, id)

	event, err := r.scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// Query lists events matching the filters in creation order with cursor pagination.
func (r *AnalyticsRepository) Query(ctx context.Context, q EventQuery) (*EventPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, event_type, event_data_json, created_at FROM analytics_events WHERE 1=1`
	args := []any{}

	if q.Type != nil {
		query += ` AND event_type = ?`
		args = append(args, string(*q.Type))
	}
	if q.Since != nil {
		query += ` AND created_at >= ?`
		args = append(args, q.Since.UTC().Format(timeLayout))
	}
	if q.Cursor != "" {
		query += ` AND (created_at, id) > (SELECT created_at, id FROM analytics_events WHERE id = ?)`
		args = append(args, q.Cursor)
	}

	query += ` ORDER BY created_at, id LIMIT ?`
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.AnalyticsEvent
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	page := &EventPage{}
	if len(events) > limit {
		page.Events = events[:limit]
		page.NextCursor = events[limit-1].ID
	} else {
		page.Events = events
	}
	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AnalyticsRepository) scanEvent(row rowScanner) (*models.AnalyticsEvent, error) {
	var event models.AnalyticsEvent
	var eventType, dataJSON, createdAt string

	if err := row.Scan(&event.ID, &eventType, &dataJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.EventType = models.EventType(eventType)
	event.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(dataJSON), &event.EventData); err != nil {
		r.db.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to parse event data")
	}
	return &event, nil
}

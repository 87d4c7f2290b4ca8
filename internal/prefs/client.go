// Package prefs reads and writes per-user display preferences and appends
// analytics events through a pluggable backend.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio-dev/folio/internal/models"
)

// Backend is a store holding the user_preferences and analytics_events tables.
type Backend interface {
	SelectPreferences(ctx context.Context, id string) (*models.UserPreferences, error)
	UpsertPreferences(ctx context.Context, row models.PreferencesUpsert) error
	InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the clock used for updated_at.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is the preferences store client. Each call is a single backend
// operation with no retry.
type Client struct {
	backend Backend
	now     func() time.Time
	logger  zerolog.Logger
}

// New builds a Client over backend.
func New(backend Backend, opts ...Option) *Client {
	c := &Client{
		backend: backend,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPreferences fetches the row for id. A missing row is an error matching
// ErrNotFound; it never returns nil without an error.
func (c *Client) GetPreferences(ctx context.Context, id string) (*models.UserPreferences, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("preferences id is required")
	}

	row, err := c.backend.SelectPreferences(ctx, id)
	if err != nil {
		c.logger.Debug().Err(err).Str("id", id).Msg("select preferences failed")
		return nil, fmt.Errorf("get preferences %s: %w", id, asRemote("select", err))
	}
	if row == nil {
		return nil, fmt.Errorf("get preferences %s: %w", id, NotFound("select", "", "no row returned", 0))
	}
	return row, nil
}

// UpdatePreferences upserts only the supplied fields plus updated_at,
// creating the row if absent.
func (c *Client) UpdatePreferences(ctx context.Context, id string, patch models.PreferencesPatch) error {
	row := models.NewPreferencesUpsert(strings.TrimSpace(id), patch, c.now())
	if err := row.Validate(); err != nil {
		return err
	}

	if err := c.backend.UpsertPreferences(ctx, row); err != nil {
		c.logger.Debug().Err(err).Str("id", row.ID).Msg("upsert preferences failed")
		return fmt.Errorf("update preferences %s: %w", row.ID, asRemote("upsert", err))
	}
	c.logger.Debug().Str("id", row.ID).Msg("preferences updated")
	return nil
}

// TrackEvent appends one analytics event. Callers decide whether a failure
// matters; the error is always returned.
func (c *Client) TrackEvent(ctx context.Context, eventType models.EventType, data map[string]any) error {
	event := &models.AnalyticsEvent{EventType: eventType, EventData: data}
	if err := event.Validate(); err != nil {
		return err
	}

	if err := c.backend.InsertEvent(ctx, event); err != nil {
		c.logger.Debug().Err(err).Str("event_type", string(eventType)).Msg("insert event failed")
		return fmt.Errorf("track %s: %w", eventType, asRemote("insert", err))
	}
	return nil
}

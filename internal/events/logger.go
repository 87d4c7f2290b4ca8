// Package events provides helper functions for recording analytics events.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folio-dev/folio/internal/models"
)

// Tracker is the minimal interface needed to append events.
type Tracker interface {
	TrackEvent(ctx context.Context, eventType models.EventType, data map[string]any) error
}

// LogThemeChanged records a switch between theme choices.
func LogThemeChanged(ctx context.Context, tracker Tracker, from, to models.ThemeChoice, effective models.EffectiveTheme, source string) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidThemeChoice, string(to))
	}
	return track(ctx, tracker, models.EventTypeThemeChanged, models.ThemeChangedPayload{
		From:      from,
		To:        to,
		Effective: effective,
		Source:    source,
	})
}

// LogWidgetMoved records where the widget was dropped.
func LogWidgetMoved(ctx context.Context, tracker Tracker, pos models.WidgetPosition) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	return track(ctx, tracker, models.EventTypeWidgetMoved, models.WidgetMovedPayload{X: pos.X, Y: pos.Y})
}

// LogContrastChecked records one contrast check.
func LogContrastChecked(ctx context.Context, tracker Tracker, label string, ratio float64, aa bool) error {
	return track(ctx, tracker, models.EventTypeContrastChecked, models.ContrastCheckedPayload{
		Label: label,
		Ratio: ratio,
		AA:    aa,
	})
}

// LogPageView records a view of a named page or tab.
func LogPageView(ctx context.Context, tracker Tracker, page string) error {
	if page == "" {
		return fmt.Errorf("page is required")
	}
	return track(ctx, tracker, models.EventTypePageView, map[string]string{"page": page})
}

func track(ctx context.Context, tracker Tracker, eventType models.EventType, payload any) error {
	if tracker == nil {
		return fmt.Errorf("event tracker is required")
	}

	data, err := toEventData(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return tracker.TrackEvent(ctx, eventType, data)
}

func toEventData(payload any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// EventType categorizes analytics events.
type EventType string

const (
	EventTypePageView        EventType = "page_view"
	EventTypeThemeChanged    EventType = "theme_changed"
	EventTypeWidgetMoved     EventType = "widget_moved"
	EventTypeContrastChecked EventType = "contrast_checked"
)

// AnalyticsEvent is an append-only row of the analytics_events table.
type AnalyticsEvent struct {
	// ID is assigned by the backend when omitted.
	ID string `json:"id,omitempty"`

	// EventType categorizes the event.
	EventType EventType `json:"event_type"`

	// EventData is an arbitrary JSON-compatible object.
	EventData map[string]any `json:"event_data"`

	// CreatedAt is assigned by the backend when omitted.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Validate checks the event type and that the payload is JSON-compatible.
func (e *AnalyticsEvent) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.EventType)) == "" {
		validation.AddMessage("event_type", "event type is required")
	}
	for key, value := range e.EventData {
		if err := ValidateJSONValue(value); err != nil {
			validation.AddMessage("event_data."+key, err.Error())
		}
	}
	return validation.Err()
}

// MarshalJSON omits the zero CreatedAt so the backend can default it.
func (e AnalyticsEvent) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID        string         `json:"id,omitempty"`
		EventType EventType      `json:"event_type"`
		EventData map[string]any `json:"event_data"`
		CreatedAt *time.Time     `json:"created_at,omitempty"`
	}
	w := wire{ID: e.ID, EventType: e.EventType, EventData: e.EventData}
	if w.EventData == nil {
		w.EventData = map[string]any{}
	}
	if !e.CreatedAt.IsZero() {
		created := e.CreatedAt.UTC()
		w.CreatedAt = &created
	}
	return json.Marshal(w)
}

// ValidateJSONValue reports whether value is a string, number, boolean, nil,
// or a map/slice of the same, recursively.
func ValidateJSONValue(value any) error {
	switch v := value.(type) {
	case nil, string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		return validateFloat(float64(v))
	case float64:
		return validateFloat(v)
	case map[string]any:
		for key, item := range v {
			if err := ValidateJSONValue(item); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		return nil
	case []any:
		for i, item := range v {
			if err := ValidateJSONValue(item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported JSON value of type %T", value)
	}
}

func validateFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite number %v", v)
	}
	return nil
}

// ThemeChangedPayload is the event data for theme_changed events.
type ThemeChangedPayload struct {
	From      ThemeChoice    `json:"from"`
	To        ThemeChoice    `json:"to"`
	Effective EffectiveTheme `json:"effective"`
	Source    string         `json:"source,omitempty"`
}

// WidgetMovedPayload is the event data for widget_moved events.
type WidgetMovedPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ContrastCheckedPayload is the event data for contrast_checked events.
type ContrastCheckedPayload struct {
	Label string  `json:"label"`
	Ratio float64 `json:"ratio"`
	AA    bool    `json:"aa"`
}

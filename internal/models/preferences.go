package models

import (
	"math"
	"strings"
	"time"
)

// WidgetPosition is the saved on-screen position of the floating widget.
type WidgetPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Validate rejects non-finite coordinates.
func (p WidgetPosition) Validate() error {
	validation := &ValidationErrors{}
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
		validation.AddMessage("widget_position.x", "must be a finite number")
	}
	if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		validation.AddMessage("widget_position.y", "must be a finite number")
	}
	return validation.Err()
}

// UserPreferences is one row of the user_preferences table.
type UserPreferences struct {
	// ID identifies the user (or anonymous visitor).
	ID string `json:"id"`

	// Theme is the stored theme choice.
	Theme ThemeChoice `json:"theme"`

	// WidgetPosition is where the widget was last dropped.
	WidgetPosition WidgetPosition `json:"widget_position"`

	// CreatedAt is set by the backend when the row is first written.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every write.
	UpdatedAt time.Time `json:"updated_at"`
}

// PreferencesPatch carries the fields a caller wants to change.
// Nil fields are left untouched by the upsert.
type PreferencesPatch struct {
	Theme          *ThemeChoice    `json:"theme,omitempty"`
	WidgetPosition *WidgetPosition `json:"widget_position,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PreferencesPatch) IsEmpty() bool {
	return p.Theme == nil && p.WidgetPosition == nil
}

// Validate checks the supplied fields.
func (p PreferencesPatch) Validate() error {
	validation := &ValidationErrors{}
	if p.Theme != nil && !p.Theme.Valid() {
		validation.AddMessage("theme", "must be one of light, dark, system")
	}
	if p.WidgetPosition != nil {
		if err := p.WidgetPosition.Validate(); err != nil {
			validation.Add("widget_position", err)
		}
	}
	return validation.Err()
}

// PreferencesUpsert is exactly what a backend receives for an upsert:
// the id, the supplied patch fields and a refreshed updated_at.
type PreferencesUpsert struct {
	ID             string          `json:"id"`
	Theme          *ThemeChoice    `json:"theme,omitempty"`
	WidgetPosition *WidgetPosition `json:"widget_position,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewPreferencesUpsert merges a patch with the row id and write time.
func NewPreferencesUpsert(id string, patch PreferencesPatch, now time.Time) PreferencesUpsert {
	return PreferencesUpsert{
		ID:             strings.TrimSpace(id),
		Theme:          patch.Theme,
		WidgetPosition: patch.WidgetPosition,
		UpdatedAt:      now.UTC(),
	}
}

// Validate checks the upsert before it is sent.
func (u PreferencesUpsert) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(u.ID) == "" {
		validation.AddMessage("id", "id is required")
	}
	if u.UpdatedAt.IsZero() {
		validation.AddMessage("updated_at", "updated_at is required")
	}
	patch := PreferencesPatch{Theme: u.Theme, WidgetPosition: u.WidgetPosition}
	if err := patch.Validate(); err != nil {
		if v, ok := err.(*ValidationErrors); ok {
			validation.Errors = append(validation.Errors, v.Errors...)
		}
	}
	return validation.Err()
}

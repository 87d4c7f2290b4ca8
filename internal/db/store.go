package db

import (
	"context"

	"github.com/folio-dev/folio/internal/prefs"
)

// Store is the SQLite prefs.Backend.
type Store struct {
	*PreferencesRepository
	*AnalyticsRepository
	db *DB
}

var _ prefs.Backend = (*Store)(nil)

// NewStore wraps an opened, migrated database.
func NewStore(db *DB) *Store {
	return &Store{
		PreferencesRepository: NewPreferencesRepository(db),
		AnalyticsRepository:   NewAnalyticsRepository(db),
		db:                    db,
	}
}

// OpenStore opens the database at path and applies migrations.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	database, err := Open(DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	if _, err := database.MigrateUp(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return NewStore(database), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

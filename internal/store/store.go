package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/params"
)

var (
	// ErrNotFound is returned by Get when no record exists for the date.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is returned when a date or time is not in canonical form.
	ErrInvalidRecord = errors.New("invalid record")
)

// Store defines the daily log operations used by the app.
type Store interface {
	// Upsert records a matching sample at timeOfDay on date and returns the
	// record as stored afterwards.
	Upsert(ctx context.Context, date, timeOfDay string) (model.DailyRecord, error)

	// Get returns the record for a single date.
	Get(ctx context.Context, date string) (model.DailyRecord, error)

	// List returns every record ordered by date, most recent first.
	List(ctx context.Context) ([]model.DailyRecord, error)

	Ping() error
	Close() error
}

// Open opens the backend selected by cfg. An empty path resolves to the
// default location inside the application data directory.
func Open(cfg model.StorageConfig) (Store, error) {
	path := cfg.Path
	if path == "" {
		var err error

		path, err = params.DatabasePath(cfg.Backend)
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	switch cfg.Backend {
	case model.BackendSQLite, "":
		return NewSQLite(path)
	case model.BackendBolt:
		return NewBolt(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func validateDate(date string) error {
	if err := model.ValidateDate(date); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	return nil
}

func validateSample(date, timeOfDay string) error {
	if err := validateDate(date); err != nil {
		return err
	}

	if err := model.ValidateTimeOfDay(timeOfDay); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	return nil
}

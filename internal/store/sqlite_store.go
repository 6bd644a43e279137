package store

import (
	"context"
	"errors"

	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/store/sqlite"
)

// SQLiteWrapper wraps the sqlite.Store to implement the Store interface.
type SQLiteWrapper struct {
	store *sqlite.Store
}

// NewSQLite opens (or creates) a SQLite daily log at path.
func NewSQLite(path string) (*SQLiteWrapper, error) {
	s, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteWrapper{store: s}, nil
}

func (w *SQLiteWrapper) Upsert(ctx context.Context, date, timeOfDay string) (model.DailyRecord, error) {
	if err := validateSample(date, timeOfDay); err != nil {
		return model.DailyRecord{}, err
	}

	return w.store.Upsert(ctx, date, timeOfDay)
}

func (w *SQLiteWrapper) Get(ctx context.Context, date string) (model.DailyRecord, error) {
	if err := validateDate(date); err != nil {
		return model.DailyRecord{}, err
	}

	rec, err := w.store.Get(ctx, date)
	if errors.Is(err, sqlite.ErrNoRecord) {
		return model.DailyRecord{}, ErrNotFound
	}

	return rec, err
}

func (w *SQLiteWrapper) List(ctx context.Context) ([]model.DailyRecord, error) {
	return w.store.List(ctx)
}

func (w *SQLiteWrapper) Ping() error {
	return w.store.Ping()
}

func (w *SQLiteWrapper) Close() error {
	return w.store.Close()
}

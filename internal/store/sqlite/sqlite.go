// Package sqlite provides SQLite database storage for wifilog.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/inovacc/wifilog/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoRecord is returned by Get when the date has no row.
var ErrNoRecord = errors.New("sqlite: no record for date")

const (
	upsertSQL = `
		INSERT INTO connections (date, earliest, latest)
		VALUES (?1, ?2, ?2)
		ON CONFLICT(date) DO UPDATE SET
			earliest = MIN(connections.earliest, excluded.earliest),
			latest   = MAX(connections.latest, excluded.latest)
		RETURNING date, earliest, latest`

	getSQL  = `SELECT date, earliest, latest FROM connections WHERE date = ?`
	listSQL = `SELECT date, earliest, latest FROM connections ORDER BY date DESC`
)

// Store is the SQLite-backed daily connection log.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new SQLite store with the given database path.
// The parent directory must already exist.
func New(dbPath string) (*Store, error) {
	dsn, err := fileDSN(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite doesn't handle multiple writers well
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	migrator := NewMigrator(db)
	if err := migrator.MigrateUp(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// fileDSN turns dbPath into a file: URI carrying the connection pragmas, so
// that '?' or '#' in the path stay part of the file name.
func fileDSN(dbPath string) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("resolving database path: %w", err)
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/... on Windows
	}

	// WAL keeps readers from blocking on the sampler's writes
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")

	u := url.URL{Scheme: "file", Path: p, RawQuery: q.Encode()}

	return u.String(), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks if the database is accessible.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// Upsert inserts the day or widens its earliest/latest bounds.
func (s *Store) Upsert(ctx context.Context, date, timeOfDay string) (model.DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec model.DailyRecord

	err := s.db.QueryRowContext(ctx, upsertSQL, date, timeOfDay).Scan(&rec.Date, &rec.Earliest, &rec.Latest)
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("upserting %s: %w", date, err)
	}

	return rec, nil
}

// Get returns the record for date, or ErrNoRecord.
func (s *Store) Get(ctx context.Context, date string) (model.DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec model.DailyRecord

	err := s.db.QueryRowContext(ctx, getSQL, date).Scan(&rec.Date, &rec.Earliest, &rec.Latest)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DailyRecord{}, ErrNoRecord
	}

	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("reading %s: %w", date, err)
	}

	return rec, nil
}

// List returns all records, most recent date first.
func (s *Store) List(ctx context.Context) ([]model.DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	defer rows.Close()

	records := make([]model.DailyRecord, 0)

	for rows.Next() {
		var rec model.DailyRecord
		if err := rows.Scan(&rec.Date, &rec.Earliest, &rec.Latest); err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

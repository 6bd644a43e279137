package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/inovacc/wifilog/internal/model"
	"go.etcd.io/bbolt"
)

const boltBucketConnections = "connections" // key: date -> boltSpan JSON

type boltSpan struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// Bolt is the BoltDB-backed daily connection log.
type Bolt struct {
	db *bbolt.DB
	mu sync.Mutex
}

// NewBolt opens (or creates) a BoltDB daily log at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketConnections))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Ping() error {
	return b.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(boltBucketConnections)) == nil {
			return fmt.Errorf("bucket %q missing", boltBucketConnections)
		}

		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) Upsert(_ context.Context, date, timeOfDay string) (model.DailyRecord, error) {
	if err := validateSample(date, timeOfDay); err != nil {
		return model.DailyRecord{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	rec := model.DailyRecord{Date: date, Earliest: timeOfDay, Latest: timeOfDay}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketConnections))

		if v := bucket.Get([]byte(date)); v != nil {
			existing, err := decodeSpan(date, v)
			if err != nil {
				return err
			}

			rec = existing.Widen(timeOfDay)
		}

		data, err := json.Marshal(boltSpan{Earliest: rec.Earliest, Latest: rec.Latest})
		if err != nil {
			return err
		}

		return bucket.Put([]byte(date), data)
	})
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("upserting %s: %w", date, err)
	}

	return rec, nil
}

func (b *Bolt) Get(_ context.Context, date string) (model.DailyRecord, error) {
	if err := validateDate(date); err != nil {
		return model.DailyRecord{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var rec model.DailyRecord

	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketConnections)).Get([]byte(date))
		if v == nil {
			return ErrNotFound
		}

		var err error

		rec, err = decodeSpan(date, v)

		return err
	})

	return rec, err
}

// List walks the bucket backwards; ISO dates sort lexicographically.
func (b *Bolt) List(_ context.Context) ([]model.DailyRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records := make([]model.DailyRecord, 0)

	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(boltBucketConnections)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			rec, err := decodeSpan(string(bytes.Clone(k)), v)
			if err != nil {
				return err
			}

			records = append(records, rec)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}

	return records, nil
}

func decodeSpan(date string, data []byte) (model.DailyRecord, error) {
	var span boltSpan
	if err := json.Unmarshal(data, &span); err != nil {
		return model.DailyRecord{}, fmt.Errorf("decoding %s: %w", date, err)
	}

	return model.DailyRecord{Date: date, Earliest: span.Earliest, Latest: span.Latest}, nil
}

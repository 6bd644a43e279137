// Package store provides the daily connection log storage for wifilog.
//
// The package defines the [Store] interface, which abstracts the two
// operations the application needs: an idempotent per-day upsert and an
// ordered full read. Two backends implement it:
//   - SQLite (default), via the pure Go modernc.org/sqlite driver
//   - BoltDB, an embedded key-value store
//
// # Upsert Semantics
//
// Upsert(date, time) creates the record with earliest = latest = time when
// the date is new, and otherwise widens it:
//
//	earliest = min(earliest, time)
//	latest   = max(latest, time)
//
// Dates ("2006-01-02") and times ("15:04") are fixed-width strings, so the
// min/max are plain string comparisons. Inputs are validated before any
// write.
//
// # Concurrency
//
// Every backend guards its handle with a single mutex held for the duration
// of one operation. The sampler is the only writer; the query surfaces read
// concurrently.
//
// # Ownership
//
// Use [Open] to obtain a store. The caller owns the returned handle and must
// Close it; there is no package-level singleton.
package store

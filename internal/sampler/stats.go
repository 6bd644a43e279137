package sampler

import (
	"time"

	"github.com/inovacc/wifilog/internal/model"
)

// Outcome classifies a single tick
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRecorded
	OutcomeOtherNetwork
	OutcomeNotConnected
	OutcomeDetectFailed
	OutcomeStoreFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecorded:
		return "recorded"
	case OutcomeOtherNetwork:
		return "other_network"
	case OutcomeNotConnected:
		return "not_connected"
	case OutcomeDetectFailed:
		return "detect_failed"
	case OutcomeStoreFailed:
		return "store_failed"
	default:
		return "none"
	}
}

// MarshalText renders the outcome by name in JSON and logs.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Stats is a snapshot of the sampler's activity since start.
type Stats struct {
	Ticks       int64              `json:"ticks"`
	Recorded    int64              `json:"recorded"`
	Failures    int64              `json:"failures"`
	LastOutcome Outcome            `json:"last_outcome"`
	LastSSID    string             `json:"last_ssid,omitempty"`
	LastTick    time.Time          `json:"last_tick,omitzero"`
	LastRecord  *model.DailyRecord `json:"last_record,omitempty"`
}

// Stats returns a copy of the current counters.
func (s *Sampler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	if st.LastRecord != nil {
		rec := *st.LastRecord
		st.LastRecord = &rec
	}

	return st
}

func (s *Sampler) observe(outcome Outcome, ssid string, at time.Time, record *model.DailyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Ticks++
	s.stats.LastOutcome = outcome
	s.stats.LastSSID = ssid
	s.stats.LastTick = at

	switch outcome {
	case OutcomeRecorded:
		s.stats.Recorded++
		s.stats.LastRecord = record
	case OutcomeDetectFailed, OutcomeStoreFailed:
		s.stats.Failures++
	}
}

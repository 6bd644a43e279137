package sampler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/wifi"
)

var (
	ErrAlreadyRunning = errors.New("sampler already running")
	ErrNoTarget       = errors.New("sampler needs a target SSID")
	ErrBadInterval    = errors.New("sampler interval must be positive")
)

// Recorder persists one matching sample. store.Store satisfies it.
type Recorder interface {
	Upsert(ctx context.Context, date, timeOfDay string) (model.DailyRecord, error)
}

// Options configures a Sampler. Zero values of Location, Clock and Logger
// fall back to time.Local, the real clock and slog.Default().
type Options struct {
	TargetSSID string
	Interval   time.Duration
	Location   *time.Location
	Clock      quartz.Clock
	Logger     *slog.Logger
}

// Sampler polls the detector on a fixed interval.
type Sampler struct {
	detector wifi.Detector
	recorder Recorder
	target   string
	interval time.Duration
	location *time.Location
	clock    quartz.Clock
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
	stats   Stats
}

// New creates a sampler. It does not start polling; see Start and Tick.
func New(detector wifi.Detector, recorder Recorder, opts Options) (*Sampler, error) {
	if opts.TargetSSID == "" {
		return nil, ErrNoTarget
	}

	if opts.Interval <= 0 {
		return nil, ErrBadInterval
	}

	s := &Sampler{
		detector: detector,
		recorder: recorder,
		target:   opts.TargetSSID,
		interval: opts.Interval,
		location: opts.Location,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}

	if s.location == nil {
		s.location = time.Local
	}

	if s.clock == nil {
		s.clock = quartz.NewReal()
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.logger = s.logger.With("component", "sampler")

	return s, nil
}

// Target returns the configured SSID.
func (s *Sampler) Target() string {
	return s.target
}

// Start takes one sample immediately and then one per interval until ctx
// is cancelled. It returns once the schedule is in place.
func (s *Sampler) Start(ctx context.Context) error {
	s.mu.Lock()

	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	s.running = true
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	s.logger.Info("starting sampler", "target", s.target, "interval", s.interval)

	s.Tick(ctx)

	waiter := s.clock.TickerFunc(ctx, s.interval, func() error {
		s.Tick(ctx)
		return nil
	}, "sampler")

	go func() {
		_ = waiter.Wait()

		s.mu.Lock()
		s.running = false
		s.mu.Unlock()

		s.logger.Info("sampler stopped")
		close(done)
	}()

	return nil
}

// Wait blocks until a started sampler has stopped.
func (s *Sampler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// IsRunning reports whether the polling loop is active.
func (s *Sampler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Tick takes one sample synchronously at the clock's current time.
func (s *Sampler) Tick(ctx context.Context) Outcome {
	return s.sampleAt(ctx, s.clock.Now())
}

func (s *Sampler) sampleAt(ctx context.Context, now time.Time) Outcome {
	var (
		outcome Outcome
		record  *model.DailyRecord
	)

	ssid, err := s.detector.CurrentSSID(ctx)

	switch {
	case errors.Is(err, wifi.ErrNotConnected):
		outcome = OutcomeNotConnected
		s.logger.Debug("no wireless network detected")

	case err != nil:
		outcome = OutcomeDetectFailed
		s.logger.Warn("failed to read current SSID", "error", err)

	case ssid != s.target:
		outcome = OutcomeOtherNetwork
		s.logger.Debug("connected to another network", "ssid", ssid, "target", s.target)

	default:
		local := now.In(s.location)
		date, timeOfDay := model.FormatDate(local), model.FormatTimeOfDay(local)

		rec, err := s.recorder.Upsert(ctx, date, timeOfDay)
		if err != nil {
			outcome = OutcomeStoreFailed
			s.logger.Error("failed to record connection", "date", date, "time", timeOfDay, "error", err)

			break
		}

		outcome = OutcomeRecorded
		record = &rec
		s.logger.Info("recorded connection",
			"ssid", ssid,
			"date", rec.Date,
			"earliest", rec.Earliest,
			"latest", rec.Latest)
	}

	s.observe(outcome, ssid, now, record)

	return outcome
}

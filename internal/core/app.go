package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/inovacc/wifilog/internal/application"
	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/params"
	"github.com/inovacc/wifilog/internal/sampler"
	"github.com/inovacc/wifilog/internal/store"
	"github.com/inovacc/wifilog/internal/web"
	"github.com/inovacc/wifilog/internal/wifi"
)

type options struct {
	detector    wifi.Detector
	store       store.Store
	clock       quartz.Clock
	runInfoPath string
}

// Option customizes App construction.
type Option func(*options)

// WithDetector replaces the detector built from configuration.
func WithDetector(d wifi.Detector) Option {
	return func(o *options) { o.detector = d }
}

// WithStore uses an already open store instead of opening one from
// configuration. The App takes ownership and closes it.
func WithStore(s store.Store) Option {
	return func(o *options) { o.store = s }
}

// WithClock sets the clock driving the sampler.
func WithClock(c quartz.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRunInfoPath overrides where Run records the daemon's run info.
func WithRunInfoPath(path string) Option {
	return func(o *options) { o.runInfoPath = path }
}

// App owns the store, the sampler and the optional HTTP server.
type App struct {
	cfg         model.Config
	logger      *slog.Logger
	store       store.Store
	sampler     *sampler.Sampler
	web         *web.Server
	runInfoPath string

	listen   func(network, address string) (net.Listener, error)
	done     <-chan struct{}
	serveErr <-chan error

	closeOnce sync.Once
	closeErr  error
}

// New wires the application from cfg. The configuration must name a
// target SSID.
func New(cfg model.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.RequireTarget(); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	if o.runInfoPath == "" {
		o.runInfoPath, err = params.RunInfoPath()
		if err != nil {
			return nil, err
		}
	}

	st := o.store
	if st == nil {
		st, err = store.Open(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
		}

		logger.Debug("opened store", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)
	}

	detector := o.detector
	if detector == nil {
		detector = wifi.NewDetector(cfg.Detector)
	}

	smp, err := sampler.New(detector, st, sampler.Options{
		TargetSSID: cfg.Sampler.TargetSSID,
		Interval:   cfg.Sampler.Interval,
		Location:   loc,
		Clock:      o.clock,
		Logger:     logger,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	app := &App{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		sampler:     smp,
		runInfoPath: o.runInfoPath,
		listen:      net.Listen,
	}

	if cfg.Server.Listen != "" {
		app.web, err = web.New(st, smp, logger)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	return app, nil
}

// Store returns the store owned by the app.
func (a *App) Store() store.Store {
	return a.store
}

// Sampler returns the app's sampler, for one-shot ticks.
func (a *App) Sampler() *sampler.Sampler {
	return a.sampler
}

// Run starts the app and blocks until ctx is cancelled. See Start and Wait.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	a.Wait()

	return nil
}

// Start binds the query server, records the run info and starts the
// sampler. It does not block. On error the store is closed and nothing is
// left running. The sampler stops when ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if a.done != nil {
		return sampler.ErrAlreadyRunning
	}

	var address string

	serveErr := make(chan error, 1)

	if a.web != nil {
		l, err := a.listen("tcp", a.cfg.Server.Listen)
		if err != nil {
			_ = a.Close()
			return fmt.Errorf("failed to listen on %s: %w", a.cfg.Server.Listen, err)
		}

		address = l.Addr().String()

		go func() {
			serveErr <- a.web.Serve(l)
		}()
	}

	info := RunInfo{
		PID:        os.Getpid(),
		Address:    address,
		InstanceID: uuid.NewString(),
		Target:     a.cfg.Sampler.TargetSSID,
		Backend:    a.cfg.Storage.Backend,
		Version:    application.Version,
		StartedAt:  time.Now(),
	}

	if err := a.sampler.Start(ctx); err != nil {
		a.shutdownWeb()
		_ = a.Close()

		return err
	}

	if err := WriteRunInfo(a.runInfoPath, info); err != nil {
		a.logger.Warn("failed to write run info", "path", a.runInfoPath, "error", err)
	}

	a.logger.Info("wifilog started",
		"target", info.Target,
		"interval", a.cfg.Sampler.Interval,
		"backend", info.Backend,
		"addr", address,
		"instance_id", info.InstanceID)

	a.done = ctx.Done()
	a.serveErr = serveErr

	return nil
}

// Wait blocks until the context passed to Start is cancelled, then stops
// the query server and the sampler, removes the run info and closes the
// store. A failing query server is logged and does not stop sampling.
func (a *App) Wait() {
	if a.done == nil {
		return
	}

	serveErr := a.serveErr

	for waiting := true; waiting; {
		select {
		case <-a.done:
			waiting = false
		case err := <-serveErr:
			if err == nil {
				err = errors.New("web server stopped unexpectedly")
			}

			a.logger.Error("query server failed, sampling continues", "error", err)

			serveErr = nil
		}
	}

	a.shutdownWeb()
	a.sampler.Wait()
	RemoveRunInfo(a.runInfoPath)

	if err := a.Close(); err != nil {
		a.logger.Error("failed to close store", "error", err)
	}

	a.logger.Info("wifilog stopped")
}

func (a *App) shutdownWeb() {
	if a.web == nil {
		return
	}

	if err := a.web.Shutdown(context.Background()); err != nil {
		a.logger.Warn("web server shutdown", "error", err)
	}
}

// Close closes the store. It is safe to call more than once.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.store.Close()
	})

	return a.closeErr
}

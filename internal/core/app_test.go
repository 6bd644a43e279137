package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/sampler"
	"github.com/inovacc/wifilog/internal/wifi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) model.Config {
	t.Helper()

	cfg := model.DefaultConfig()
	cfg.Sampler.TargetSSID = "HomeNet"
	cfg.Sampler.Timezone = "UTC"
	cfg.Storage.Backend = backend
	cfg.Storage.Path = filepath.Join(t.TempDir(), "connections."+backend)
	cfg.Server.Listen = "127.0.0.1:0"

	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRequiresTarget(t *testing.T) {
	cfg := testConfig(t, model.BackendSQLite)
	cfg.Sampler.TargetSSID = ""

	_, err := New(cfg, discard())
	require.ErrorIs(t, err, model.ErrTargetRequired)
}

func TestAppSampleOnce(t *testing.T) {
	for _, backend := range []string{model.BackendSQLite, model.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			cfg.Server.Listen = ""

			mClock := quartz.NewMock(t)
			mClock.Set(time.Date(2024, 3, 1, 8, 1, 0, 0, time.UTC))

			app, err := New(cfg, discard(),
				WithDetector(wifi.Static("HomeNet")),
				WithClock(mClock),
				WithRunInfoPath(filepath.Join(t.TempDir(), "run.json")))
			require.NoError(t, err)

			defer func() { assert.NoError(t, app.Close()) }()

			ctx := context.Background()
			assert.Equal(t, sampler.OutcomeRecorded, app.Sampler().Tick(ctx))

			rec, err := app.Store().Get(ctx, "2024-03-01")
			require.NoError(t, err)
			assert.Equal(t, model.DailyRecord{Date: "2024-03-01", Earliest: "08:01", Latest: "08:01"}, rec)
		})
	}
}

func TestAppRun(t *testing.T) {
	cfg := testConfig(t, model.BackendSQLite)
	runInfo := filepath.Join(t.TempDir(), "run.json")

	mClock := quartz.NewMock(t)
	mClock.Set(time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC))

	app, err := New(cfg, discard(),
		WithDetector(wifi.Static("HomeNet")),
		WithClock(mClock),
		WithRunInfoPath(runInfo))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var info *RunInfo

	require.Eventually(t, func() bool {
		info, err = ReadRunInfo(runInfo)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, os.Getpid(), info.PID)
	assert.Equal(t, "HomeNet", info.Target)
	assert.NotEmpty(t, info.InstanceID)

	require.Eventually(t, func() bool {
		return app.Sampler().Stats().Recorded == 1
	}, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://%s/api/connections/2024-03-01", info.Address))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec model.DailyRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "17:45", rec.Earliest)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, err = os.Stat(runInfo)
	assert.True(t, os.IsNotExist(err), "run info removed on shutdown")
	assert.Error(t, app.Store().Ping(), "store closed after Run")
}

func TestAppRunListenError(t *testing.T) {
	cfg := testConfig(t, model.BackendSQLite)
	cfg.Server.Listen = "256.0.0.1:99999"

	app, err := New(cfg, discard(),
		WithDetector(wifi.Static("HomeNet")),
		WithClock(quartz.NewMock(t)),
		WithRunInfoPath(filepath.Join(t.TempDir(), "run.json")))
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
	assert.False(t, app.Sampler().IsRunning())
	assert.Error(t, app.Store().Ping(), "store closed after a failed start")
}

// brokenListener fails every Accept, which makes http.Server.Serve return.
type brokenListener struct {
	net.Listener
	failed chan struct{}
	once   sync.Once
}

func (l *brokenListener) Accept() (net.Conn, error) {
	l.once.Do(func() { close(l.failed) })
	return nil, errors.New("accept: broken")
}

func TestAppKeepsSamplingWhenServerFails(t *testing.T) {
	cfg := testConfig(t, model.BackendSQLite)
	cfg.Sampler.Interval = time.Minute

	mClock := quartz.NewMock(t)
	mClock.Set(time.Date(2024, 3, 1, 8, 1, 0, 0, time.UTC))

	app, err := New(cfg, discard(),
		WithDetector(wifi.Static("HomeNet")),
		WithClock(mClock),
		WithRunInfoPath(filepath.Join(t.TempDir(), "run.json")))
	require.NoError(t, err)

	broken := &brokenListener{failed: make(chan struct{})}
	app.listen = func(network, address string) (net.Listener, error) {
		l, err := net.Listen(network, address)
		broken.Listener = l

		return broken, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.Start(ctx))

	waited := make(chan struct{})
	go func() {
		app.Wait()
		close(waited)
	}()

	select {
	case <-broken.failed:
	case <-time.After(5 * time.Second):
		t.Fatal("server never accepted")
	}

	mClock.Advance(time.Minute).MustWait(ctx)

	assert.Equal(t, int64(2), app.Sampler().Stats().Recorded)
	assert.True(t, app.Sampler().IsRunning())

	select {
	case <-waited:
		t.Fatal("app stopped after the query server failed")
	default:
	}

	cancel()

	select {
	case <-waited:
	case <-time.After(10 * time.Second):
		t.Fatal("Wait did not return after cancel")
	}

	rec, err := app.Store().Get(context.Background(), "2024-03-01")
	assert.Error(t, err, "store closed after Wait")
	assert.Empty(t, rec)
}

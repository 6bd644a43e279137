package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/inovacc/wifilog/internal/application"
	"github.com/inovacc/wifilog/internal/core"
	"github.com/inovacc/wifilog/internal/params"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

var (
	serviceStart     bool
	serviceStop      bool
	serviceInstall   bool
	serviceUninstall bool
	serviceStatus    bool
	serviceRun       bool
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage wifilog as a system service",
	Long: `Install, uninstall, start, stop, or check the status of wifilog as a system service.

On Windows, this creates/manages a Windows Service.
On Linux/macOS, this creates/manages a systemd/launchd service. On macOS the
service is installed per user, since the network name is only readable from
the user's session.

The installed service runs 'wifilog service --run', which is equivalent to
'wifilog run' under the service manager.`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().BoolVar(&serviceStart, "start", false, "Start the wifilog service")
	serviceCmd.Flags().BoolVar(&serviceStop, "stop", false, "Stop the wifilog service")
	serviceCmd.Flags().BoolVar(&serviceInstall, "install", false, "Install wifilog as a system service")
	serviceCmd.Flags().BoolVar(&serviceUninstall, "uninstall", false, "Uninstall the wifilog system service")
	serviceCmd.Flags().BoolVar(&serviceStatus, "status", false, "Check wifilog service status")
	serviceCmd.Flags().BoolVar(&serviceRun, "run", false, "Run under the service manager (used by the installed service)")
	_ = serviceCmd.Flags().MarkHidden("run")
}

// program implements service.Interface by running the app in-process.
type program struct {
	cmd    *cobra.Command
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *program) Start(s service.Service) error {
	cfg, logger, err := setup(p.cmd)
	if err != nil {
		return err
	}

	runInfoPath, err := params.RunInfoPath()
	if err != nil {
		return err
	}

	app, err := core.New(cfg, logger, core.WithRunInfoPath(runInfoPath))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	// A startup failure is returned so the service manager sees it and
	// can restart the service.
	if err := app.Start(ctx); err != nil {
		cancel()
		return err
	}

	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		app.Wait()
	}()

	return nil
}

func (p *program) Stop(s service.Service) error {
	if p.cancel == nil {
		return nil
	}

	p.cancel()

	select {
	case <-p.done:
		return nil
	case <-time.After(10 * time.Second):
		return errors.New("timed out waiting for wifilog to stop")
	}
}

func runService(cmd *cobra.Command, args []string) error {
	flagCount := 0

	for _, set := range []bool{serviceStart, serviceStop, serviceInstall, serviceUninstall, serviceStatus, serviceRun} {
		if set {
			flagCount++
		}
	}

	if flagCount == 0 {
		return fmt.Errorf("please specify one of: --start, --stop, --install, --uninstall, --status")
	}

	if flagCount > 1 {
		return fmt.Errorf("please specify only one operation at a time")
	}

	svcConfig, err := serviceConfig()
	if err != nil {
		return err
	}

	prg := &program{cmd: cmd}

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	// Handle the requested operation
	switch {
	case serviceRun:
		return s.Run()
	case serviceInstall:
		return installService(cmd, s)
	case serviceUninstall:
		return uninstallService(cmd, s)
	case serviceStart:
		return startService(cmd, s)
	case serviceStop:
		return stopService(cmd, s)
	case serviceStatus:
		return statusService(cmd, s)
	}

	return nil
}

func serviceConfig() (*service.Config, error) {
	arguments := []string{"service", "--run"}

	if configFile != "" {
		path, err := expandPath(configFile)
		if err != nil {
			return nil, err
		}

		arguments = append(arguments, "--config", path)
	}

	cfg := &service.Config{
		Name:        application.ServiceName,
		DisplayName: "WiFi Connection Logger",
		Description: "Records the first and last time each day this machine is on the target WiFi network",
		Arguments:   arguments,
		Option:      service.KeyValue{},
	}

	if runtime.GOOS == "darwin" {
		cfg.Option["UserService"] = true
	}

	return cfg, nil
}

func installService(cmd *cobra.Command, s service.Service) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.RequireTarget(); err != nil {
		return fmt.Errorf("%w: set sampler.target_ssid in the configuration file first", err)
	}

	_, _ = fmt.Fprintln(out, "Installing wifilog service...")
	_, _ = fmt.Fprintf(out, "Target network: %s\n", cfg.Sampler.TargetSSID)

	if err := s.Install(); err != nil {
		return fmt.Errorf("failed to install service: %w", err)
	}

	_, _ = fmt.Fprintln(out, "✓ Service installed successfully!")
	_, _ = fmt.Fprintln(out, "\nTo start the service, run:")
	_, _ = fmt.Fprintln(out, "  wifilog service --start")

	return nil
}

func uninstallService(cmd *cobra.Command, s service.Service) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Uninstalling wifilog service...")

	// Try to stop first
	_ = s.Stop()

	if err := s.Uninstall(); err != nil {
		return fmt.Errorf("failed to uninstall service: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Service uninstalled successfully!")

	return nil
}

func startService(cmd *cobra.Command, s service.Service) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Starting wifilog service...")

	if err := s.Start(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Service started successfully!")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Check it with: wifilog status")

	return nil
}

func stopService(cmd *cobra.Command, s service.Service) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stopping wifilog service...")

	if err := s.Stop(); err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Service stopped successfully!")

	return nil
}

func statusService(cmd *cobra.Command, s service.Service) error {
	status, err := s.Status()
	if err != nil {
		if errors.Is(err, service.ErrNotInstalled) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Service Status: not installed")
			return nil
		}

		return fmt.Errorf("failed to get service status: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, "Service Status: ")

	switch status {
	case service.StatusRunning:
		_, _ = fmt.Fprintln(out, "Running ✓")
	case service.StatusStopped:
		_, _ = fmt.Fprintln(out, "Stopped")
	case service.StatusUnknown:
		_, _ = fmt.Fprintln(out, "Unknown")
	default:
		_, _ = fmt.Fprintf(out, "%v\n", status)
	}

	return nil
}

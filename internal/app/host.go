// Package app wires the timer engine to its platform collaborators,
// settings and diagnostics. Both the tray and terminal binaries build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/engine"
	"pomodoro/internal/core/idle"
	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/trace"
	"pomodoro/internal/ui/preferences"
)

// Options configures a Host. Zero collaborators select the platform
// implementations.
type Options struct {
	AppName      string
	LogLevel     string
	LogFormat    string
	LogOutput    io.Writer
	TracePath    string
	SettingsPath string

	Clock        clock.Clock
	Wake         engine.WakeScheduler
	KeepAlive    engine.KeepAlive
	IdleProvider platform.IdleProvider
	Service      platform.Service
}

// Host owns the engine and everything around it.
type Host struct {
	Logger  *slog.Logger
	Engine  *engine.Engine
	Service platform.Service

	appName      string
	settingsPath string
	idle         *idle.Watcher
	closers      []io.Closer

	mu       sync.Mutex
	settings  preferences.Settings
	onShow    func()
	onRelease func()
}

// New builds a Host. The returned host must be closed.
func New(options Options) (*Host, error) {
	if options.AppName == "" {
		options.AppName = platform.AppName
	}
	if options.LogOutput == nil {
		options.LogOutput = os.Stderr
	}
	if options.Clock == nil {
		options.Clock = clock.System()
	}
	if options.Service == nil {
		options.Service = platform.NewService()
	}

	logger, err := logging.Setup(options.LogOutput, options.LogLevel, options.LogFormat)
	if err != nil {
		return nil, err
	}

	host := &Host{
		Logger:  logger,
		Service: options.Service,
		appName: options.AppName,
	}

	host.settingsPath = options.SettingsPath
	if host.settingsPath == "" {
		configDir, err := options.Service.AppConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve settings path: %w", err)
		}
		host.settingsPath = storage.SettingsPath(configDir)
	}
	host.settings, err = storage.LoadSettings(host.settingsPath)
	if err != nil {
		logger.Warn("using default settings", "path", host.settingsPath, "error", err)
	}

	tracers := []trace.Tracer{trace.NewSlogTracer(logger)}
	if options.TracePath != "" {
		fileTracer, err := trace.NewFileTracer(options.TracePath)
		if err != nil {
			return nil, err
		}
		tracers = append(tracers, fileTracer)
		host.closers = append(host.closers, fileTracer)
		logger.Info("tracing timer transitions", "path", options.TracePath)
	}

	if options.Wake == nil {
		options.Wake = platform.NewWakeScheduler(options.Clock, logger)
	}
	if options.KeepAlive == nil {
		options.KeepAlive = platform.NewKeepAlive(options.AppName, logger)
	}
	host.Engine = engine.New(options.Clock, options.Wake, options.KeepAlive, engine.Config{
		Logger: logger,
		Tracer: trace.NewMultiTracer(tracers...),
	})

	if options.IdleProvider == nil {
		options.IdleProvider = platform.NewIdleProvider()
	}
	host.Engine.OnRelease(host.release)
	host.idle = idle.NewWatcher(options.IdleProvider, host.Engine, options.Clock, idle.Config{
		Threshold: host.settings.IdlePause,
		Logger:    logger,
	})

	return host, nil
}

// Run drives background work until ctx is done.
func (host *Host) Run(ctx context.Context) {
	host.idle.Run(ctx)
}

// OnShow sets the handler for the "show" control command.
func (host *Host) OnShow(handler func()) {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.onShow = handler
}

// OnRelease sets the handler run after the timer is stopped, so the shell
// can drop its foreground presence.
func (host *Host) OnRelease(handler func()) {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.onRelease = handler
}

func (host *Host) release() {
	host.mu.Lock()
	onRelease := host.onRelease
	host.mu.Unlock()
	if onRelease != nil {
		onRelease()
	}
	host.Logger.Debug("released foreground resources")
}

// Settings returns the current settings.
func (host *Host) Settings() preferences.Settings {
	host.mu.Lock()
	defer host.mu.Unlock()
	return host.settings
}

// SettingsPath returns where settings are persisted.
func (host *Host) SettingsPath() string {
	return host.settingsPath
}

// UpdateSettings persists settings and applies them. The active timer is
// left alone; new durations apply to the next start.
func (host *Host) UpdateSettings(settings preferences.Settings) error {
	settings = settings.Normalize()

	host.mu.Lock()
	previous := host.settings
	host.settings = settings
	host.mu.Unlock()

	host.idle.SetThreshold(settings.IdlePause)

	var errs []error
	if err := storage.SaveSettings(host.settingsPath, settings); err != nil {
		errs = append(errs, err)
	}
	if settings.LaunchAtLogin != previous.LaunchAtLogin {
		if err := host.applyAutostart(settings.LaunchAtLogin); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (host *Host) applyAutostart(enabled bool) error {
	if !enabled {
		return host.Service.DisableAutostart(host.appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return host.Service.EnableAutostart(host.appName, execPath)
}

// Start begins a timer of category with its configured duration.
func (host *Host) Start(category model.Category) error {
	return host.Engine.Dispatch(host.Settings().StartFor(category))
}

// HandleControl executes one control line from another process and
// returns a one-line reply.
func (host *Host) HandleControl(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "error: empty command"
	}

	switch strings.ToLower(fields[0]) {
	case "status":
		return describe(host.Engine.Snapshot())
	case "show":
		host.mu.Lock()
		onShow := host.onShow
		host.mu.Unlock()
		if onShow == nil {
			return "error: no window to show"
		}
		onShow()
		return "ok"
	}

	command, err := model.ParseCommandWith(host.Settings().Durations, fields[0], fields[1:]...)
	if err != nil {
		return "error: " + err.Error()
	}
	if err := host.Engine.Dispatch(command); err != nil {
		return "error: " + err.Error()
	}
	host.Logger.Debug("control command applied", "command", command.Name())
	return describe(host.Engine.Snapshot())
}

// Close stops the engine and flushes diagnostics.
func (host *Host) Close() error {
	host.Engine.Close()

	var errs []error
	for _, closer := range host.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func describe(snapshot model.Snapshot) string {
	if snapshot.Phase == model.PhaseIdle {
		return "idle"
	}
	return fmt.Sprintf("%s %s %s/%s",
		snapshot.Phase,
		snapshot.Category,
		snapshot.Clock(),
		model.FormatSeconds(snapshot.TotalSeconds))
}

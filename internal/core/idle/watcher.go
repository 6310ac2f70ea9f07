// Package idle pauses a running focus timer once the user has been away
// from the keyboard for longer than a threshold.
package idle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
)

// DefaultCheckInterval is how often the idle provider is polled.
const DefaultCheckInterval = 5 * time.Second

// Timer is the part of the engine the watcher drives.
type Timer interface {
	Snapshot() model.Snapshot
	PauseCategory(category model.Category) bool
}

// Config contains runtime options for Watcher.
type Config struct {
	Threshold     time.Duration
	CheckInterval time.Duration
	Logger        *slog.Logger
}

// Watcher polls an IdleProvider and pauses focus timers.
type Watcher struct {
	provider platform.IdleProvider
	timer    Timer
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	threshold time.Duration
	disabled  bool
}

// NewWatcher creates a watcher. A zero threshold disables it until
// SetThreshold is called.
func NewWatcher(provider platform.IdleProvider, timer Timer, clk clock.Clock, config Config) *Watcher {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultCheckInterval
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		provider:  provider,
		timer:     timer,
		clock:     clk,
		interval:  config.CheckInterval,
		logger:    config.Logger,
		threshold: config.Threshold,
	}
}

// SetThreshold changes the idle limit. Zero turns the watcher off.
func (watcher *Watcher) SetThreshold(threshold time.Duration) {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	watcher.threshold = threshold
}

// Run polls until ctx is done.
func (watcher *Watcher) Run(ctx context.Context) {
	ticker := watcher.clock.NewTicker(watcher.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if _, err := watcher.Check(); err != nil {
				watcher.logger.Debug("idle check failed", "error", err)
			}
		}
	}
}

// Check pauses the timer when a focus run is active and the user has been
// idle for at least the threshold. It reports whether it paused.
func (watcher *Watcher) Check() (bool, error) {
	watcher.mu.Lock()
	threshold := watcher.threshold
	disabled := watcher.disabled
	watcher.mu.Unlock()

	if disabled || threshold <= 0 {
		return false, nil
	}
	snapshot := watcher.timer.Snapshot()
	if snapshot.Phase != model.PhaseRunning || snapshot.Category != model.CategoryFocus {
		return false, nil
	}

	idleFor, err := watcher.provider.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			watcher.mu.Lock()
			watcher.disabled = true
			watcher.mu.Unlock()
			watcher.logger.Info("idle detection unsupported, auto-pause disabled")
		}
		return false, err
	}
	if idleFor < threshold {
		return false, nil
	}

	if !watcher.timer.PauseCategory(model.CategoryFocus) {
		return false, nil
	}
	watcher.logger.Info("paused focus timer after inactivity", "idle_for", idleFor.Round(time.Second))
	return true, nil
}

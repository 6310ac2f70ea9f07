//go:build !linux

package platform

import (
	"log/slog"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/engine"
)

// NewWakeScheduler returns the best wake scheduler the host supports.
func NewWakeScheduler(clk clock.Clock, logger *slog.Logger) engine.WakeScheduler {
	return NewTimerScheduler(clk, logger)
}

//go:build !linux && !darwin && !windows

package platform

import (
	"log/slog"

	"pomodoro/internal/core/engine"
)

// NewKeepAlive returns a keep-alive that does nothing.
func NewKeepAlive(string, *slog.Logger) engine.KeepAlive {
	return NoopKeepAlive{}
}

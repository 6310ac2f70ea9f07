//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"

	"pomodoro/internal/core/engine"
)

const (
	logindDest      = "org.freedesktop.login1"
	logindPath      = dbus.ObjectPath("/org/freedesktop/login1")
	logindInhibit   = "org.freedesktop.login1.Manager.Inhibit"
	inhibitWhat     = "sleep:idle"
	inhibitBlocking = "block"
)

// LogindInhibitor holds a systemd-logind sleep inhibitor lock. The lock
// lives as long as the file descriptor logind hands back stays open.
type LogindInhibitor struct {
	appName string
	reason  string
	logger  *slog.Logger

	mu   sync.Mutex
	lock *os.File
}

// NewKeepAlive returns a logind-backed keep-alive.
func NewKeepAlive(appName string, logger *slog.Logger) engine.KeepAlive {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogindInhibitor{appName: appName, reason: KeepAliveReason, logger: logger}
}

// Acquire takes the inhibitor lock if it is not already held.
func (inhibitor *LogindInhibitor) Acquire() error {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()
	if inhibitor.lock != nil {
		return nil
	}

	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	var fd dbus.UnixFD
	call := conn.Object(logindDest, logindPath).Call(logindInhibit, 0, inhibitWhat, inhibitor.appName, inhibitor.reason, inhibitBlocking)
	if err := call.Store(&fd); err != nil {
		return fmt.Errorf("logind inhibit: %w", err)
	}

	inhibitor.lock = os.NewFile(uintptr(fd), "logind-inhibit")
	inhibitor.logger.Debug("sleep inhibitor acquired", "what", inhibitWhat)
	return nil
}

// Release closes the inhibitor descriptor.
func (inhibitor *LogindInhibitor) Release() error {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()
	if inhibitor.lock == nil {
		return nil
	}

	err := inhibitor.lock.Close()
	inhibitor.lock = nil
	if err != nil {
		return fmt.Errorf("release logind inhibitor: %w", err)
	}
	inhibitor.logger.Debug("sleep inhibitor released")
	return nil
}

var _ engine.KeepAlive = (*LogindInhibitor)(nil)

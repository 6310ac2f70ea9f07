//go:build darwin

package platform

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"pomodoro/internal/core/engine"
)

// CaffeinateKeepAlive runs caffeinate -i bound to this process for as long
// as the keep-alive is held.
type CaffeinateKeepAlive struct {
	logger *slog.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewKeepAlive returns a caffeinate-backed keep-alive.
func NewKeepAlive(_ string, logger *slog.Logger) engine.KeepAlive {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CaffeinateKeepAlive{logger: logger}
}

// Acquire starts caffeinate if it is not already running.
func (keepAlive *CaffeinateKeepAlive) Acquire() error {
	keepAlive.mu.Lock()
	defer keepAlive.mu.Unlock()
	if keepAlive.cmd != nil {
		return nil
	}

	cmd := exec.Command("caffeinate", "-i", "-w", strconv.Itoa(os.Getpid()))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start caffeinate: %w", err)
	}
	keepAlive.cmd = cmd
	go func() { _ = cmd.Wait() }()
	return nil
}

// Release stops caffeinate.
func (keepAlive *CaffeinateKeepAlive) Release() error {
	keepAlive.mu.Lock()
	defer keepAlive.mu.Unlock()
	if keepAlive.cmd == nil {
		return nil
	}

	cmd := keepAlive.cmd
	keepAlive.cmd = nil
	if err := cmd.Process.Kill(); err != nil && err != os.ErrProcessDone {
		return fmt.Errorf("stop caffeinate: %w", err)
	}
	return nil
}

var _ engine.KeepAlive = (*CaffeinateKeepAlive)(nil)

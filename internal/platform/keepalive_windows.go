//go:build windows

package platform

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"pomodoro/internal/core/engine"
)

const (
	esContinuous     = 0x80000000
	esSystemRequired = 0x00000001
)

// ExecutionStateKeepAlive sets ES_SYSTEM_REQUIRED from a dedicated OS
// thread. The state belongs to the thread that set it, so the thread stays
// locked until release.
type ExecutionStateKeepAlive struct {
	logger *slog.Logger

	mu      sync.Mutex
	release chan struct{}
}

// NewKeepAlive returns a SetThreadExecutionState-backed keep-alive.
func NewKeepAlive(_ string, logger *slog.Logger) engine.KeepAlive {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecutionStateKeepAlive{logger: logger}
}

// Acquire starts the holder thread.
func (keepAlive *ExecutionStateKeepAlive) Acquire() error {
	keepAlive.mu.Lock()
	defer keepAlive.mu.Unlock()
	if keepAlive.release != nil {
		return nil
	}

	release := make(chan struct{})
	result := make(chan error, 1)
	go holdExecutionState(release, result)
	if err := <-result; err != nil {
		return err
	}
	keepAlive.release = release
	return nil
}

// Release lets the holder thread clear the state and exit.
func (keepAlive *ExecutionStateKeepAlive) Release() error {
	keepAlive.mu.Lock()
	defer keepAlive.mu.Unlock()
	if keepAlive.release == nil {
		return nil
	}
	close(keepAlive.release)
	keepAlive.release = nil
	return nil
}

func holdExecutionState(release <-chan struct{}, result chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	setState := kernel32.NewProc("SetThreadExecutionState")
	previous, _, err := setState.Call(uintptr(esContinuous | esSystemRequired))
	if previous == 0 {
		result <- fmt.Errorf("set thread execution state: %w", err)
		return
	}
	result <- nil

	<-release
	_, _, _ = setState.Call(uintptr(esContinuous))
}

var _ engine.KeepAlive = (*ExecutionStateKeepAlive)(nil)

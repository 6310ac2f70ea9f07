package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// keepAliveGuard keeps the platform KeepAlive in step with the engine without
// calling it under Engine.mu. Transitions record the wanted state with
// acquire and release; sync applies it once the engine lock is dropped. The
// implementation sees one Acquire per hold no matter how many transitions
// into Running happen.
type keepAliveGuard struct {
	impl   KeepAlive
	logger *slog.Logger

	want atomic.Bool
	gen  atomic.Uint64

	mu   sync.Mutex
	held bool
}

func (guard *keepAliveGuard) acquire() {
	guard.set(true)
}

func (guard *keepAliveGuard) release() {
	guard.set(false)
}

func (guard *keepAliveGuard) set(want bool) {
	guard.want.Store(want)
	guard.gen.Add(1)
}

// sync applies the wanted state. If another goroutine is already inside an
// Acquire or Release, sync returns at once and that goroutine applies the
// newer state before it leaves.
func (guard *keepAliveGuard) sync() {
	for {
		if !guard.mu.TryLock() {
			return
		}
		seen := guard.gen.Load()
		guard.applyLocked(guard.want.Load())
		guard.mu.Unlock()
		if guard.gen.Load() == seen {
			return
		}
	}
}

func (guard *keepAliveGuard) applyLocked(want bool) {
	if want == guard.held {
		return
	}
	if want {
		if err := guard.impl.Acquire(); err != nil {
			guard.logger.Warn("keep-alive acquire failed", "error", err)
			return
		}
		guard.held = true
		return
	}
	guard.held = false
	if err := guard.impl.Release(); err != nil {
		guard.logger.Debug("keep-alive release failed", "error", err)
	}
}

func (guard *keepAliveGuard) isHeld() bool {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	return guard.held
}

package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
)

// manualTicks keeps the engine's own tick loop quiet so tests drive tick
// explicitly.
const manualTicks = 24 * time.Hour

type mockKeepAlive struct {
	mock.Mock
}

func (m *mockKeepAlive) Acquire() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockKeepAlive) Release() error {
	args := m.Called()
	return args.Error(0)
}

type scheduledWake struct {
	handle   WakeHandle
	at       clock.Instant
	fire     func()
	canceled bool
}

// recordingScheduler keeps every scheduled wake so tests can deliver them,
// including after cancellation.
type recordingScheduler struct {
	mu          sync.Mutex
	next        WakeHandle
	wakes       []*scheduledWake
	scheduleErr error
}

func (scheduler *recordingScheduler) ScheduleAt(at clock.Instant, fire func()) (WakeHandle, error) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.scheduleErr != nil {
		return 0, scheduler.scheduleErr
	}
	scheduler.next++
	scheduler.wakes = append(scheduler.wakes, &scheduledWake{handle: scheduler.next, at: at, fire: fire})
	return scheduler.next, nil
}

func (scheduler *recordingScheduler) Cancel(handle WakeHandle) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	for _, wake := range scheduler.wakes {
		if wake.handle == handle {
			wake.canceled = true
		}
	}
	return nil
}

func (scheduler *recordingScheduler) last() *scheduledWake {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if len(scheduler.wakes) == 0 {
		return nil
	}
	return scheduler.wakes[len(scheduler.wakes)-1]
}

func (scheduler *recordingScheduler) pending() []*scheduledWake {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	var out []*scheduledWake
	for _, wake := range scheduler.wakes {
		if !wake.canceled {
			out = append(out, wake)
		}
	}
	return out
}

func (scheduler *recordingScheduler) count() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.wakes)
}

type fixture struct {
	engine    *Engine
	clock     *clock.Fake
	scheduler *recordingScheduler
	keepAlive *mockKeepAlive
	completed atomic.Int32
	released  atomic.Int32
	finals    chan model.Snapshot
}

func newFixture(t *testing.T, interval time.Duration) *fixture {
	t.Helper()
	f := &fixture{
		clock:     clock.NewFake(clock.Instant(time.Hour)),
		scheduler: &recordingScheduler{},
		keepAlive: &mockKeepAlive{},
		finals:    make(chan model.Snapshot, 8),
	}
	f.keepAlive.On("Acquire").Return(nil)
	f.keepAlive.On("Release").Return(nil)

	f.engine = New(f.clock, f.scheduler, f.keepAlive, Config{
		TickInterval:     interval,
		SubscriberBuffer: 64,
	})
	f.engine.OnComplete(func(final model.Snapshot) {
		f.completed.Add(1)
		f.finals <- final
	})
	f.engine.OnRelease(func() { f.released.Add(1) })
	t.Cleanup(f.engine.Close)
	return f
}

func (f *fixture) tick() {
	f.engine.tick(f.loop())
}

func (f *fixture) loop() *tickLoop {
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()
	return f.engine.loop
}

func (f *fixture) deadline() clock.Instant {
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()
	return f.engine.deadline
}

func (f *fixture) held() bool {
	return f.engine.guard.isHeld()
}

// blockingKeepAlive parks Acquire until unblock is closed, standing in for a
// slow D-Bus round trip.
type blockingKeepAlive struct {
	entered  chan struct{}
	unblock  chan struct{}
	acquires atomic.Int32
	releases atomic.Int32
}

func newBlockingKeepAlive() *blockingKeepAlive {
	return &blockingKeepAlive{
		entered: make(chan struct{}, 8),
		unblock: make(chan struct{}),
	}
}

func (keepAlive *blockingKeepAlive) Acquire() error {
	keepAlive.acquires.Add(1)
	keepAlive.entered <- struct{}{}
	<-keepAlive.unblock
	return nil
}

func (keepAlive *blockingKeepAlive) Release() error {
	keepAlive.releases.Add(1)
	return nil
}

func drain(sub *Subscription) []model.Snapshot {
	var out []model.Snapshot
	for {
		select {
		case snapshot, ok := <-sub.Updates():
			if !ok {
				return out
			}
			out = append(out, snapshot)
		default:
			return out
		}
	}
}

var errBoom = errors.New("boom")

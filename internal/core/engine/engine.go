// Package engine owns the single active countdown timer.
//
// All mutations are serialized by one lock. Remaining time is always derived
// from a monotonic deadline, so a late or missing tick cannot skew the
// countdown. Completion is reached through whichever fires first: the tick
// loop, a wake scheduled through WakeScheduler, or a Pause issued at the
// deadline. The completion routine runs exactly once per run.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/trace"
)

// Config contains runtime options for Engine.
type Config struct {
	TickInterval     time.Duration
	SubscriberBuffer int
	Logger           *slog.Logger
	Tracer           trace.Tracer
}

// wakeToken identifies one armed wake. A fired wake whose token no longer
// matches the engine's is stale and absorbed.
type wakeToken struct {
	run uuid.UUID
	seq uint64
}

type tickLoop struct {
	stop chan struct{}
}

// Engine is the state machine for the single active timer.
type Engine struct {
	mu          sync.Mutex
	clock       clock.Clock
	scheduler   WakeScheduler
	guard       keepAliveGuard
	options     Config
	logger      *slog.Logger
	tracer      trace.Tracer
	broadcaster *Broadcaster

	snapshot   model.Snapshot
	deadline   clock.Instant
	runID      uuid.UUID
	wake       wakeToken
	wakeHandle WakeHandle
	wakeArmed  bool
	wakeSeq    uint64
	loop       *tickLoop
	closed     bool

	onComplete func(model.Snapshot)
	onRelease  func()
}

// New creates an idle Engine. Nil collaborators are replaced by
// no-op implementations.
func New(clk clock.Clock, scheduler WakeScheduler, keepAlive KeepAlive, options Config) *Engine {
	if clk == nil {
		clk = clock.System()
	}
	if scheduler == nil {
		scheduler = NoWake{}
	}
	if keepAlive == nil {
		keepAlive = NoKeepAlive{}
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.SubscriberBuffer <= 0 {
		options.SubscriberBuffer = DefaultSubscriberBuffer
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Tracer == nil {
		options.Tracer = trace.NoopTracer{}
	}

	engine := &Engine{
		clock:     clk,
		scheduler: scheduler,
		options:   options,
		logger:    options.Logger,
		tracer:    options.Tracer,
		snapshot:  model.IdleSnapshot(),
	}
	engine.guard.impl = keepAlive
	engine.guard.logger = options.Logger
	engine.broadcaster = NewBroadcaster(engine.snapshot, options.SubscriberBuffer)
	return engine
}

// OnComplete sets the completion sink. It is called once per completed run,
// outside the engine lock, with the final snapshot.
func (engine *Engine) OnComplete(sink func(model.Snapshot)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onComplete = sink
}

// OnRelease sets the hook called after every Stop, outside the engine lock.
// Hosts use it to drop their foreground presence.
func (engine *Engine) OnRelease(release func()) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onRelease = release
}

// Subscribe registers an observer. The current snapshot is delivered first.
func (engine *Engine) Subscribe() *Subscription {
	return engine.broadcaster.Subscribe()
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() model.Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshot
}

// Start begins a new running timer, replacing any active one.
func (engine *Engine) Start(durationSeconds int, category model.Category) error {
	request := model.Start{DurationSeconds: durationSeconds, Category: category}
	if err := request.Validate(); err != nil {
		return err
	}

	defer engine.guard.sync()
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return ErrClosed
	}
	if engine.snapshot.Active() {
		engine.logger.Debug("replacing active timer",
			"run_id", engine.runID,
			"phase", engine.snapshot.Phase,
			"remaining", engine.snapshot.RemainingSeconds)
	}

	engine.stopTickingLocked()
	engine.cancelWakeLocked()
	engine.runID = uuid.New()
	engine.snapshot = model.Snapshot{
		RemainingSeconds: durationSeconds,
		TotalSeconds:     durationSeconds,
		Phase:            model.PhaseRunning,
		Category:         category,
	}
	engine.enterRunningLocked(trace.OpStart)
	return nil
}

// Pause freezes a running timer. A pause at or past the deadline completes
// the timer instead. No-op unless Running.
func (engine *Engine) Pause() {
	engine.pause(func(model.Snapshot) bool { return true })
}

// PauseCategory pauses the timer only if it is running with category. The
// check and the pause happen under one lock, so a timer started in between
// by another caller is left alone. It reports whether the timer was paused.
func (engine *Engine) PauseCategory(category model.Category) bool {
	return engine.pause(func(snapshot model.Snapshot) bool {
		return snapshot.Category == category
	})
}

func (engine *Engine) pause(match func(model.Snapshot) bool) bool {
	var after func()
	defer func() {
		if after != nil {
			after()
		}
	}()
	defer engine.guard.sync()
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.snapshot.Phase != model.PhaseRunning || !match(engine.snapshot) {
		return false
	}
	remaining := engine.remainingLocked()
	if remaining == 0 {
		after = engine.completeLocked(trace.SourceCommand)
		return false
	}

	engine.snapshot.RemainingSeconds = remaining
	engine.snapshot.Phase = model.PhasePaused
	engine.cancelWakeLocked()
	engine.stopTickingLocked()
	engine.guard.release()
	engine.publishLocked(trace.OpPause, trace.SourceCommand)
	return true
}

// Resume continues a paused timer from its frozen remaining time.
// No-op unless Paused.
func (engine *Engine) Resume() {
	defer engine.guard.sync()
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.snapshot.Phase != model.PhasePaused {
		return
	}
	engine.enterRunningLocked(trace.OpResume)
}

// Reset restarts the current timer from its full duration and runs it.
// No-op when no timer was ever started.
func (engine *Engine) Reset() {
	defer engine.guard.sync()
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.snapshot.TotalSeconds == 0 {
		return
	}
	engine.stopTickingLocked()
	engine.cancelWakeLocked()
	engine.runID = uuid.New()
	engine.snapshot.RemainingSeconds = engine.snapshot.TotalSeconds
	engine.enterRunningLocked(trace.OpReset)
}

// Stop discards the timer and returns to Idle. The release hook runs on
// every call.
func (engine *Engine) Stop() {
	var release func()
	defer func() {
		if release != nil {
			release()
		}
	}()
	defer engine.guard.sync()
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.stopLocked()
	release = engine.onRelease
}

// Dispatch applies a parsed command.
func (engine *Engine) Dispatch(command model.Command) error {
	switch cmd := command.(type) {
	case model.Start:
		return engine.Start(cmd.DurationSeconds, cmd.Category)
	case model.Pause:
		engine.Pause()
	case model.Resume:
		engine.Resume()
	case model.Reset:
		engine.Reset()
	case model.Stop:
		engine.Stop()
	default:
		return fmt.Errorf("%w: %T", model.ErrUnknownCommand, command)
	}
	return nil
}

// Close stops the timer, closes every subscription and rejects later starts.
func (engine *Engine) Close() {
	var release func()
	engine.mu.Lock()
	if !engine.closed {
		engine.closed = true
		engine.stopLocked()
		release = engine.onRelease
	}
	engine.mu.Unlock()

	engine.guard.sync()
	engine.broadcaster.Close()
	if release != nil {
		release()
	}
}

func (engine *Engine) stopLocked() {
	engine.stopTickingLocked()
	engine.cancelWakeLocked()
	engine.guard.release()
	if engine.snapshot.Active() {
		engine.snapshot = model.IdleSnapshot()
		engine.publishLocked(trace.OpStop, trace.SourceCommand)
	}
	engine.runID = uuid.Nil
}

func (engine *Engine) enterRunningLocked(op trace.Op) {
	engine.snapshot.Phase = model.PhaseRunning
	engine.deadline = engine.clock.Now().Add(time.Duration(engine.snapshot.RemainingSeconds) * time.Second)
	engine.armWakeLocked()
	engine.guard.acquire()
	engine.startTickingLocked()
	engine.publishLocked(op, trace.SourceCommand)
}

// completeLocked moves a running timer to Completed and returns the sink
// invocation to run after the lock is released. It returns nil when the
// run already completed.
func (engine *Engine) completeLocked(source trace.Source) func() {
	if engine.snapshot.Phase != model.PhaseRunning {
		return nil
	}

	engine.snapshot.RemainingSeconds = 0
	engine.snapshot.Phase = model.PhaseCompleted
	engine.cancelWakeLocked()
	engine.stopTickingLocked()
	engine.guard.release()
	engine.publishLocked(trace.OpComplete, source)
	engine.logger.Info("timer completed",
		"run_id", engine.runID,
		"category", engine.snapshot.Category,
		"total", engine.snapshot.TotalSeconds,
		"source", source)

	sink := engine.onComplete
	if sink == nil {
		return nil
	}
	final := engine.snapshot
	return func() { sink(final) }
}

// remainingLocked returns whole seconds until the deadline, rounded up so
// the value reaches zero exactly at the deadline.
func (engine *Engine) remainingLocked() int {
	left := engine.deadline.Sub(engine.clock.Now())
	if left <= 0 {
		return 0
	}
	seconds := int((left + time.Second - 1) / time.Second)
	if seconds > engine.snapshot.TotalSeconds {
		seconds = engine.snapshot.TotalSeconds
	}
	return seconds
}

func (engine *Engine) tick(loop *tickLoop) {
	var after func()
	defer func() {
		if after != nil {
			after()
		}
	}()
	defer engine.guard.sync()
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.loop != loop || engine.snapshot.Phase != model.PhaseRunning {
		return
	}
	remaining := engine.remainingLocked()
	if remaining == 0 {
		after = engine.completeLocked(trace.SourceTick)
		return
	}
	if remaining != engine.snapshot.RemainingSeconds {
		engine.snapshot.RemainingSeconds = remaining
		engine.broadcaster.Publish(engine.snapshot)
	}
}

func (engine *Engine) onWakeFired(token wakeToken) {
	var after func()
	defer func() {
		if after != nil {
			after()
		}
	}()
	defer engine.guard.sync()
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.snapshot.Phase != model.PhaseRunning || !engine.wakeArmed || token != engine.wake {
		engine.logger.Debug("absorbed stale wake", "run_id", token.run, "seq", token.seq)
		engine.traceLocked(trace.OpWakeAbsorbed, trace.SourceWake)
		return
	}
	engine.wakeArmed = false

	if now := engine.clock.Now(); now.Before(engine.deadline) {
		engine.logger.Debug("wake delivered early, re-arming",
			"run_id", engine.runID,
			"early_by", engine.deadline.Sub(now))
		engine.armWakeLocked()
		engine.traceLocked(trace.OpWakeRearmed, trace.SourceWake)
		return
	}
	after = engine.completeLocked(trace.SourceWake)
}

func (engine *Engine) armWakeLocked() {
	engine.cancelWakeLocked()
	engine.wakeSeq++
	token := wakeToken{run: engine.runID, seq: engine.wakeSeq}

	handle, err := engine.scheduler.ScheduleAt(engine.deadline, func() {
		engine.onWakeFired(token)
	})
	if err != nil {
		engine.logger.Warn("schedule wake failed, relying on ticks",
			"error", err,
			"run_id", engine.runID)
		return
	}
	engine.wake = token
	engine.wakeHandle = handle
	engine.wakeArmed = true
}

func (engine *Engine) cancelWakeLocked() {
	if !engine.wakeArmed {
		return
	}
	engine.wakeArmed = false
	if err := engine.scheduler.Cancel(engine.wakeHandle); err != nil {
		engine.logger.Debug("cancel wake failed", "error", err, "handle", engine.wakeHandle)
	}
}

func (engine *Engine) startTickingLocked() {
	engine.stopTickingLocked()
	loop := &tickLoop{stop: make(chan struct{})}
	engine.loop = loop
	ticker := engine.clock.NewTicker(engine.options.TickInterval)
	go engine.run(loop, ticker)
}

func (engine *Engine) stopTickingLocked() {
	if engine.loop == nil {
		return
	}
	close(engine.loop.stop)
	engine.loop = nil
}

func (engine *Engine) run(loop *tickLoop, ticker clock.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-loop.stop:
			return
		case <-ticker.C():
			engine.tick(loop)
		}
	}
}

func (engine *Engine) publishLocked(op trace.Op, source trace.Source) {
	engine.broadcaster.Publish(engine.snapshot)
	engine.traceLocked(op, source)
}

func (engine *Engine) traceLocked(op trace.Op, source trace.Source) {
	event := trace.Event{
		Timestamp: time.Now(),
		Op:        op,
		Source:    source,
		Phase:     engine.snapshot.Phase,
		Category:  engine.snapshot.Category,
		Remaining: engine.snapshot.RemainingSeconds,
		Total:     engine.snapshot.TotalSeconds,
	}
	if engine.runID != uuid.Nil {
		event.RunID = engine.runID.String()
	}
	engine.tracer.Trace(event)
}

// Package clock supplies the monotonic time source used for timer deadlines.
//
// Instants are offsets from an arbitrary origin, never wall-clock times, so
// adjusting the system clock cannot move a deadline. On Linux the source is
// CLOCK_BOOTTIME, which keeps advancing while the machine is suspended.
package clock

import "time"

// Instant is a reading of a monotonic clock.
type Instant time.Duration

// Add returns the instant d after instant.
func (instant Instant) Add(d time.Duration) Instant {
	return instant + Instant(d)
}

// Sub returns instant - other.
func (instant Instant) Sub(other Instant) time.Duration {
	return time.Duration(instant - other)
}

// Before reports whether instant is strictly earlier than other.
func (instant Instant) Before(other Instant) bool {
	return instant < other
}

// String formats the instant as a duration since the clock origin.
func (instant Instant) String() string {
	return time.Duration(instant).String()
}

// Clock supplies monotonic readings and periodic tickers.
type Clock interface {
	Now() Instant
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// System returns the clock backed by the host's monotonic source.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() Instant {
	return now()
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (ticker *realTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker *realTicker) Stop() {
	ticker.ticker.Stop()
}

package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests and simulations.
type Fake struct {
	mu      sync.Mutex
	now     Instant
	tickers []*fakeTicker
}

// NewFake returns a fake clock reading start.
func NewFake(start Instant) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake reading.
func (fake *Fake) Now() Instant {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// Set jumps the clock to instant without firing tickers.
func (fake *Fake) Set(instant Instant) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.now = instant
}

// Advance moves the clock forward by d and fires every ticker that came due.
// Like time.Ticker, a ticker that is not drained drops ticks.
func (fake *Fake) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.now = fake.now.Add(d)
	current := fake.now
	tickers := append([]*fakeTicker(nil), fake.tickers...)
	fake.mu.Unlock()

	for _, ticker := range tickers {
		ticker.fire(current)
	}
}

// NewTicker returns a ticker driven by Advance.
func (fake *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()

	ticker := &fakeTicker{
		clock:    fake,
		interval: d,
		next:     fake.now.Add(d),
		ch:       make(chan time.Time, 1),
	}
	fake.tickers = append(fake.tickers, ticker)
	return ticker
}

// Tickers returns the number of live tickers.
func (fake *Fake) Tickers() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.tickers)
}

func (fake *Fake) remove(target *fakeTicker) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for i, ticker := range fake.tickers {
		if ticker == target {
			fake.tickers = append(fake.tickers[:i], fake.tickers[i+1:]...)
			return
		}
	}
}

type fakeTicker struct {
	clock    *Fake
	interval time.Duration

	mu      sync.Mutex
	next    Instant
	stopped bool
	ch      chan time.Time
}

func (ticker *fakeTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *fakeTicker) Stop() {
	ticker.mu.Lock()
	ticker.stopped = true
	ticker.mu.Unlock()
	ticker.clock.remove(ticker)
}

func (ticker *fakeTicker) fire(current Instant) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.stopped || current.Before(ticker.next) {
		return
	}
	for !current.Before(ticker.next) {
		ticker.next = ticker.next.Add(ticker.interval)
	}
	select {
	case ticker.ch <- time.Unix(0, int64(current)):
	default:
	}
}

package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

var processStart = time.Now()

// now reads CLOCK_BOOTTIME. Unlike the runtime's CLOCK_MONOTONIC it counts
// time spent suspended, which is what a countdown has to honour.
func now() Instant {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return Instant(time.Since(processStart))
	}
	return Instant(ts.Nano())
}

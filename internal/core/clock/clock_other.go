//go:build !linux

package clock

import "time"

var processStart = time.Now()

func now() Instant {
	return Instant(time.Since(processStart))
}

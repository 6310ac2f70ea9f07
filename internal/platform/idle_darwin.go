package platform

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// ioregIdleProvider reads HIDIdleTime from the IOHIDSystem registry entry.
type ioregIdleProvider struct {
	timeout time.Duration
}

func newIdleProvider() IdleProvider {
	if _, err := exec.LookPath("ioreg"); err != nil {
		return unsupportedIdleProvider{}
	}
	return ioregIdleProvider{timeout: 2 * time.Second}
}

func (provider ioregIdleProvider) IdleDuration() (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), provider.timeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(output)
}

package platform

import "pomodoro/internal/core/engine"

// KeepAliveReason is shown by the OS to explain why sleep is held off.
const KeepAliveReason = "Countdown timer running"

// NoopKeepAlive is used where the host offers no suspend inhibitor.
type NoopKeepAlive = engine.NoKeepAlive

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

// xprintidleProvider asks the X server through xprintidle.
type xprintidleProvider struct {
	path string
}

// logindIdleProvider reads the session idle hint from systemd-logind,
// which also works under Wayland compositors that report idleness.
type logindIdleProvider struct {
	session dbus.BusObject
}

func newIdleProvider() IdleProvider {
	sessionType := strings.ToLower(os.Getenv("XDG_SESSION_TYPE"))
	if sessionType != "wayland" {
		if path, err := exec.LookPath("xprintidle"); err == nil {
			return &xprintidleProvider{path: path}
		}
	}
	if provider, err := newLogindIdleProvider(); err == nil {
		return provider
	}
	return unsupportedIdleProvider{}
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func newLogindIdleProvider() (*logindIdleProvider, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	var sessionPath dbus.ObjectPath
	err = conn.Object(logindDest, logindPath).
		Call("org.freedesktop.login1.Manager.GetSessionByPID", 0, uint32(os.Getpid())).
		Store(&sessionPath)
	if err != nil {
		return nil, fmt.Errorf("logind session: %w", err)
	}
	return &logindIdleProvider{session: conn.Object(logindDest, sessionPath)}, nil
}

func (provider *logindIdleProvider) IdleDuration() (time.Duration, error) {
	hint, err := provider.session.GetProperty("org.freedesktop.login1.Session.IdleHint")
	if err != nil {
		return 0, fmt.Errorf("logind idle hint: %w", err)
	}
	if idle, ok := hint.Value().(bool); !ok || !idle {
		return 0, nil
	}

	since, err := provider.session.GetProperty("org.freedesktop.login1.Session.IdleSinceHint")
	if err != nil {
		return 0, fmt.Errorf("logind idle since: %w", err)
	}
	micros, ok := since.Value().(uint64)
	if !ok || micros == 0 {
		return 0, nil
	}
	idle := time.Since(time.UnixMicro(int64(micros)))
	if idle < 0 {
		idle = 0
	}
	return idle, nil
}

//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"path/filepath"
)

// ErrAutostartUnsupported is returned where no login item mechanism is known.
var ErrAutostartUnsupported = errors.New("launch at login unsupported")

func (service *platformService) EnableAutostart(string, string) error {
	return ErrAutostartUnsupported
}

func (service *platformService) DisableAutostart(string) error {
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

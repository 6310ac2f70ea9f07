//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// launchAgentTemplate loads the app in the user's GUI session only. The
// html function escapes every character XML treats specially.
var launchAgentTemplate = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{html .Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{html .ExecPath}}</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Interactive</string>
	<key>LimitLoadToSessionType</key>
	<string>Aqua</string>
</dict>
</plist>
`))

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if err := checkAutostartArgs(appName, execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	path, err := launchAgentPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	item, err := renderLoginItem(path, launchAgentTemplate, struct{ Label, ExecPath string }{launchAgentLabel(appName), execPath})
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := item.install(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if err := checkAutostartArgs(appName, "-"); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	path, err := launchAgentPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := removeLoginItem(path); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func launchAgentPath(appName string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	return "io.pomodoro." + appSlug(appName)
}

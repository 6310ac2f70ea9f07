//go:build linux

package platform

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

// desktopEntryTemplate is an XDG autostart desktop entry.
var desktopEntryTemplate = template.Must(template.New("desktop").Funcs(template.FuncMap{
	"exec": desktopExecArg,
}).Parse(`[Desktop Entry]
Type=Application
Name={{.Name}}
Comment=Focus and break countdown timer
Exec={{exec .ExecPath}}
Icon=alarm-symbolic
Categories=Utility;
X-GNOME-Autostart-enabled=true
Terminal=false
`))

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if err := checkAutostartArgs(appName, execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	path, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	item, err := renderLoginItem(path, desktopEntryTemplate, struct{ Name, ExecPath string }{appName, execPath})
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
	path, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := removeLoginItem(path); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func (service *platformService) desktopEntryPath(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", desktopFileName(appName)), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopFileName(appName string) string {
	return appSlug(appName) + ".desktop"
}

// desktopExecArg quotes a path for the Exec key when it contains reserved
// characters, escaping the ones that stay special inside quotes.
func desktopExecArg(path string) string {
	if !strings.ContainsAny(path, " \t\"'\\><~|&;$*?#()`") {
		return path
	}
	escaped := strings.NewReplacer(`\`, `\\\\`, `"`, `\\"`, "`", "\\\\`", `$`, `\\$`).Replace(path)
	return `"` + escaped + `"`
}

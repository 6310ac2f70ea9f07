//go:build linux || darwin

package platform

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// loginItem is a file the session manager reads at login to launch the app.
type loginItem struct {
	path    string
	content []byte
}

func renderLoginItem(path string, tmpl *template.Template, data any) (loginItem, error) {
	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return loginItem{}, fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return loginItem{path: path, content: content.Bytes()}, nil
}

func (item loginItem) install() error {
	if err := os.MkdirAll(filepath.Dir(item.path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(item.path), err)
	}
	temp := item.path + ".tmp"
	if err := os.WriteFile(temp, item.content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(item.path), err)
	}
	if err := os.Rename(temp, item.path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("install %s: %w", filepath.Base(item.path), err)
	}
	return nil
}

func removeLoginItem(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", filepath.Base(path), err)
	}
	return nil
}

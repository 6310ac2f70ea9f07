package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the application in config paths and OS registrations.
const AppName = "pomodoro"

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	AppConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// AppConfigDir returns the application's own directory under GetConfigDir.
func (service *platformService) AppConfigDir() (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// appSlug lowercases appName and replaces spaces with dashes for use in
// file names and launch labels.
func appSlug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = AppName
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func checkAutostartArgs(appName, execPath string) error {
	if strings.TrimSpace(appName) == "" {
		return errors.New("app name is empty")
	}
	if execPath == "" {
		return errors.New("exec path is empty")
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timerview"
	"pomodoro/internal/ui/tray"
)

const appName = "Pomodoro"

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	tracePath := flag.String("trace", "", "append timer transitions to this CBOR file")
	settingsPath := flag.String("settings", "", "settings file (default: user config dir)")
	command := flag.String("cmd", "", "send a command to the running instance and exit")
	flag.Parse()

	if *command != "" {
		os.Exit(sendCommand(*command))
	}
	os.Exit(run(*logLevel, *logFormat, *tracePath, *settingsPath))
}

func run(logLevel, logFormat, tracePath, settingsPath string) int {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			// Bring the existing window forward instead of starting twice.
			_ = sendCommand("show")
		}
		slog.Error("single instance", "error", err)
		return 1
	}
	defer func() {
		_ = guard.Release()
	}()

	host, err := app.New(app.Options{
		AppName:      appName,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		TracePath:    tracePath,
		SettingsPath: settingsPath,
	})
	if err != nil {
		slog.Error("start host", "error", err)
		return 1
	}
	defer func() {
		if err := host.Close(); err != nil {
			host.Logger.Error("close host", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fyneApp := fyneapp.NewWithID("io.pomodoro.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	timerWindow := timerview.New(fyneApp, timerview.Actions{
		Start:  startWith(host),
		Pause:  host.Engine.Pause,
		Resume: host.Engine.Resume,
		Reset:  host.Engine.Reset,
		Stop:   host.Engine.Stop,
	})

	prefsWindow := preferences.New(fyneApp, host.Settings(), func(updated preferences.Settings) {
		if err := host.UpdateSettings(updated); err != nil {
			host.Logger.Error("save settings", "path", host.SettingsPath(), "error", err)
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnStart:       startWith(host),
			OnPause:       host.Engine.Pause,
			OnResume:      host.Engine.Resume,
			OnReset:       host.Engine.Reset,
			OnStop:        host.Engine.Stop,
			OnShowTimer:   timerWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
	} else {
		host.Logger.Warn("system tray unsupported on this platform")
	}

	host.OnShow(func() {
		fyne.Do(timerWindow.Show)
	})
	host.OnRelease(func() {
		fyne.Do(timerWindow.Hide)
	})
	host.Engine.OnComplete(func(snapshot model.Snapshot) {
		notification := fyne.NewNotification(
			snapshot.Category.Title()+" finished",
			fmt.Sprintf("%s of %s is up.", model.FormatSeconds(snapshot.TotalSeconds), strings.ToLower(snapshot.Category.Title())),
		)
		fyne.Do(func() {
			fyneApp.SendNotification(notification)
			timerWindow.Show()
		})
	})

	subscription := host.Engine.Subscribe()
	go func() {
		for snapshot := range subscription.Updates() {
			timerWindow.Update(snapshot)
			if trayManager != nil {
				fyne.Do(func() {
					trayManager.Update(snapshot)
				})
			}
		}
	}()

	go guard.Serve(ctx, host.HandleControl)
	go host.Run(ctx)
	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	if trayManager == nil {
		timerWindow.Show()
	}
	fyneApp.Run()
	// The event loop is gone; Close must not queue UI work.
	host.OnShow(nil)
	host.OnRelease(nil)
	cancel()
	subscription.Unsubscribe()
	return 0
}

func startWith(host *app.Host) func(model.Category) {
	return func(category model.Category) {
		if err := host.Start(category); err != nil {
			host.Logger.Error("start timer", "category", category, "error", err)
		}
	}
}

func sendCommand(line string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reply, err := platform.SendToInstance(ctx, appName, line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	fmt.Println(reply)
	if strings.HasPrefix(reply, "error:") {
		return 1
	}
	return 0
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/tui"
)

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	logFile := flag.String("log-file", "", "write logs to this file instead of discarding them")
	tracePath := flag.String("trace", "", "append timer transitions to this CBOR file")
	settingsPath := flag.String("settings", "", "settings file (default: user config dir)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "pomodoro-tui needs an interactive terminal")
		os.Exit(2)
	}

	var logOutput io.Writer = io.Discard
	if *logFile != "" {
		file, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		logOutput = file
	}

	if err := run(app.Options{
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
		LogOutput:    logOutput,
		TracePath:    *tracePath,
		SettingsPath: *settingsPath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "pomodoro: %v\n", err)
		os.Exit(1)
	}
}

func run(options app.Options) error {
	host, err := app.New(options)
	if err != nil {
		return err
	}
	defer func() {
		if err := host.Close(); err != nil {
			host.Logger.Error("close host", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	subscription := host.Engine.Subscribe()
	defer subscription.Unsubscribe()

	program := tea.NewProgram(
		tui.New(host.Engine, subscription.Updates(), tui.Options{
			Durations: host.Settings().Durations,
			Bell: func() {
				_, _ = os.Stderr.WriteString("\a")
			},
		}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	// Commands are dispatched from Update, so the hooks can fire on the
	// program's own goroutine; Send must not block it.
	host.Engine.OnComplete(func(snapshot model.Snapshot) {
		go program.Send(tui.CompletedMsg(snapshot))
	})
	host.OnRelease(func() {
		go program.Send(tui.ReleasedMsg{})
	})

	go host.Run(ctx)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	onCancel      func()
	focus         *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	idlePause     *widget.Entry
	launchAtLogin *widget.Check
	status        *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	focus := minutesEntry()
	shortBreak := minutesEntry()
	longBreak := minutesEntry()
	idlePause := minutesEntry()
	launchAtLogin := widget.NewCheck("Launch at login", nil)
	status := widget.NewLabel("")

	rangeHint := fmt.Sprintf("min (%d-%d)", model.MinMinutes, model.MaxMinutes)
	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel(model.CategoryFocus.Title()), focus, widget.NewLabel(rangeHint)),
		container.NewHBox(widget.NewLabel(model.CategoryShortBreak.Title()), shortBreak, widget.NewLabel(rangeHint)),
		container.NewHBox(widget.NewLabel(model.CategoryLongBreak.Title()), longBreak, widget.NewLabel(rangeHint)),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Pause focus when idle for"), idlePause, widget.NewLabel("min (0 = off)")),
		launchAtLogin,
		status,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 320))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		focus:         focus,
		shortBreak:    shortBreak,
		longBreak:     longBreak,
		idlePause:     idlePause,
		launchAtLogin: launchAtLogin,
		status:        status,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}
	window.SetCloseIntercept(cancelButton.OnTapped)

	return prefs
}

// OnCancel sets the callback for a dismissed window.
func (prefs *Window) OnCancel(callback func()) {
	prefs.onCancel = callback
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(strconv.Itoa(int(settings.Durations.Focus / time.Minute)))
	prefs.shortBreak.SetText(strconv.Itoa(int(settings.Durations.ShortBreak / time.Minute)))
	prefs.longBreak.SetText(strconv.Itoa(int(settings.Durations.LongBreak / time.Minute)))
	prefs.idlePause.SetText(strconv.Itoa(int(settings.IdlePause / time.Minute)))
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.status.SetText("")
}

func (prefs *Window) handleSave() {
	settings, err := prefs.readForm()
	if err != nil {
		prefs.status.SetText(err.Error())
		return
	}

	prefs.settings = settings
	prefs.status.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) readForm() (Settings, error) {
	settings := prefs.settings

	fields := []struct {
		label  string
		entry  *widget.Entry
		target *time.Duration
	}{
		{model.CategoryFocus.Title(), prefs.focus, &settings.Durations.Focus},
		{model.CategoryShortBreak.Title(), prefs.shortBreak, &settings.Durations.ShortBreak},
		{model.CategoryLongBreak.Title(), prefs.longBreak, &settings.Durations.LongBreak},
	}
	for _, field := range fields {
		minutes, err := parseMinutes(field.entry.Text, model.MinMinutes, model.MaxMinutes)
		if err != nil {
			return settings, fmt.Errorf("%s: %w", field.label, err)
		}
		*field.target = time.Duration(minutes) * time.Minute
	}

	idleMinutes, err := parseMinutes(prefs.idlePause.Text, 0, MaxIdlePauseMinutes)
	if err != nil {
		return settings, fmt.Errorf("idle pause: %w", err)
	}
	settings.IdlePause = time.Duration(idleMinutes) * time.Minute
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	return settings, nil
}

func minutesEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.Validator = func(value string) error {
		_, err := strconv.Atoi(strings.TrimSpace(value))
		return err
	}
	return entry
}

func parseMinutes(value string, minimum, maximum int) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", value)
	}
	if parsed < minimum || parsed > maximum {
		return 0, fmt.Errorf("must be between %d and %d minutes", minimum, maximum)
	}
	return parsed, nil
}

package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Actions are the commands the window can issue.
type Actions struct {
	Start  func(model.Category)
	Pause  func()
	Resume func()
	Reset  func()
	Stop   func()
}

// Window shows the active countdown.
type Window struct {
	window      fyne.Window
	actions     Actions
	snapshot    model.Snapshot
	titleLabel  *canvas.Text
	clockLabel  *canvas.Text
	statusLabel *canvas.Text
	progress    *widget.ProgressBar
	toggle      *widget.Button
	reset       *widget.Button
	stop        *widget.Button
	starters    *fyne.Container
	controls    *fyne.Container
}

var (
	focusColor = color.NRGBA{R: 220, G: 76, B: 70, A: 255}
	breakColor = color.NRGBA{R: 70, G: 160, B: 110, A: 255}
	mutedColor = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

// New creates the countdown window. It starts hidden.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow("Pomodoro")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	titleLabel := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 20

	clockLabel := canvas.NewText("--:--", focusColor)
	clockLabel.Alignment = fyne.TextAlignCenter
	clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clockLabel.TextSize = 56

	statusLabel := canvas.NewText("", mutedColor)
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.TextSize = 14

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	view := &Window{
		window:      window,
		actions:     actions,
		titleLabel:  titleLabel,
		clockLabel:  clockLabel,
		statusLabel: statusLabel,
		progress:    progress,
	}

	view.toggle = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), view.handleToggle)
	view.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if view.actions.Reset != nil {
			view.actions.Reset()
		}
	})
	view.stop = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		if view.actions.Stop != nil {
			view.actions.Stop()
		}
	})
	view.controls = container.NewHBox(layout.NewSpacer(), view.toggle, view.reset, view.stop, layout.NewSpacer())

	var starters []fyne.CanvasObject
	for _, category := range model.Categories {
		starters = append(starters, widget.NewButton(category.Title(), func() {
			if view.actions.Start != nil {
				view.actions.Start(category)
			}
		}))
	}
	view.starters = container.NewGridWithColumns(len(starters), starters...)

	face := container.New(&clockLayout{}, titleLabel, clockLabel, statusLabel)
	content := container.NewBorder(nil, container.NewVBox(progress, view.controls, view.starters), nil, nil, face)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 300))
	window.SetCloseIntercept(window.Hide)

	view.apply(model.IdleSnapshot())
	return view
}

// Show brings the window to front.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without affecting the timer.
func (view *Window) Hide() {
	view.window.Hide()
}

// Update renders snapshot. Safe to call from any goroutine.
func (view *Window) Update(snapshot model.Snapshot) {
	fyne.Do(func() {
		view.apply(snapshot)
	})
}

func (view *Window) apply(snapshot model.Snapshot) {
	view.snapshot = snapshot

	view.titleLabel.Text = snapshot.Category.Title()
	view.clockLabel.Text = snapshot.Clock()
	view.clockLabel.Color = clockColor(snapshot)
	view.statusLabel.Text = statusText(snapshot)
	view.progress.SetValue(snapshot.Progress())

	switch snapshot.Phase {
	case model.PhaseIdle:
		view.clockLabel.Text = "--:--"
		view.controls.Hide()
		view.starters.Show()
	case model.PhaseCompleted:
		view.toggle.Disable()
		view.controls.Show()
		view.starters.Show()
	default:
		view.toggle.Enable()
		view.controls.Show()
		view.starters.Hide()
	}
	if snapshot.Phase == model.PhasePaused {
		view.toggle.SetText("Resume")
		view.toggle.SetIcon(theme.MediaPlayIcon())
	} else {
		view.toggle.SetText("Pause")
		view.toggle.SetIcon(theme.MediaPauseIcon())
	}

	view.titleLabel.Refresh()
	view.clockLabel.Refresh()
	view.statusLabel.Refresh()
}

func (view *Window) handleToggle() {
	switch view.snapshot.Phase {
	case model.PhaseRunning:
		if view.actions.Pause != nil {
			view.actions.Pause()
		}
	case model.PhasePaused:
		if view.actions.Resume != nil {
			view.actions.Resume()
		}
	}
}

func clockColor(snapshot model.Snapshot) color.Color {
	switch {
	case snapshot.Phase == model.PhasePaused || snapshot.Phase == model.PhaseIdle:
		return mutedColor
	case snapshot.Category == model.CategoryFocus:
		return focusColor
	default:
		return breakColor
	}
}

func statusText(snapshot model.Snapshot) string {
	switch snapshot.Phase {
	case model.PhaseIdle:
		return "Pick a timer to start"
	case model.PhasePaused:
		return "Paused"
	case model.PhaseCompleted:
		return "Time's up"
	default:
		return "of " + model.FormatSeconds(snapshot.TotalSeconds)
	}
}

// clockLayout stacks title, clock and status, centring the clock.
type clockLayout struct{}

func (layout *clockLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	title, clock, status := objects[0], objects[1], objects[2]

	clockSize := clock.MinSize()
	clockY := (size.Height - clockSize.Height) / 2
	if clockY < 0 {
		clockY = 0
	}
	clock.Move(fyne.NewPos(0, clockY))
	clock.Resize(fyne.NewSize(size.Width, clockSize.Height))

	titleSize := title.MinSize()
	titleY := clockY - titleSize.Height - 4
	if titleY < 0 {
		titleY = 0
	}
	title.Move(fyne.NewPos(0, titleY))
	title.Resize(fyne.NewSize(size.Width, titleSize.Height))

	statusSize := status.MinSize()
	status.Move(fyne.NewPos(0, clockY+clockSize.Height+4))
	status.Resize(fyne.NewSize(size.Width, statusSize.Height))
}

func (layout *clockLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects[:3] {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width, height+8)
}

package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/model"
)

const menuTitle = "Pomodoro"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func(model.Category)
	OnPause       func()
	OnResume      func()
	OnReset       func()
	OnStop        func()
	OnShowTimer   func()
	OnPreferences func()
	OnQuit        func()
}

// MenuState is what the tray shows for one snapshot.
type MenuState struct {
	Status      string
	ToggleLabel string
	CanToggle   bool
	CanReset    bool
	CanStop     bool
}

// StateFor derives the menu state from a snapshot.
func StateFor(snapshot model.Snapshot) MenuState {
	state := MenuState{ToggleLabel: "Pause"}
	switch snapshot.Phase {
	case model.PhaseIdle:
		state.Status = "Idle"
		return state
	case model.PhaseRunning:
		state.Status = fmt.Sprintf("%s %s", snapshot.Category.Title(), snapshot.Clock())
		state.CanToggle = true
	case model.PhasePaused:
		state.Status = fmt.Sprintf("%s %s (paused)", snapshot.Category.Title(), snapshot.Clock())
		state.ToggleLabel = "Resume"
		state.CanToggle = true
	case model.PhaseCompleted:
		state.Status = fmt.Sprintf("%s done", snapshot.Category.Title())
	}
	state.CanReset = true
	state.CanStop = true
	return state
}

// Manager handles system tray state. A nil app keeps the menu in memory
// only.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	state      MenuState
	phase      model.Phase
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	startItems []*fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	for _, category := range model.Categories {
		manager.startItems = append(manager.startItems, fyne.NewMenuItem("Start "+category.Title(), func() {
			if manager.callbacks.OnStart != nil {
				manager.callbacks.OnStart(category)
			}
		}))
	}

	manager.toggleItem = fyne.NewMenuItem("Pause", manager.toggle)
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})
	showTimer := fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShowTimer != nil {
			manager.callbacks.OnShowTimer()
		}
	})
	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	items := []*fyne.MenuItem{manager.statusItem, fyne.NewMenuItemSeparator()}
	items = append(items, manager.startItems...)
	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		showTimer,
		preferences,
		quit,
	)
	manager.menu = fyne.NewMenu(menuTitle, items...)

	manager.Update(model.IdleSnapshot())
	return manager
}

// Update reflects a snapshot in the menu.
func (manager *Manager) Update(snapshot model.Snapshot) {
	state := StateFor(snapshot)
	if state == manager.state && snapshot.Phase == manager.phase && manager.statusItem.Label != "" {
		return
	}
	manager.state = state
	manager.phase = snapshot.Phase

	manager.statusItem.Label = state.Status
	manager.toggleItem.Label = state.ToggleLabel
	manager.toggleItem.Disabled = !state.CanToggle
	manager.resetItem.Disabled = !state.CanReset
	manager.stopItem.Disabled = !state.CanStop
	manager.refreshMenu()
}

// State returns the last applied menu state.
func (manager *Manager) State() MenuState {
	return manager.state
}

func (manager *Manager) toggle() {
	switch manager.phase {
	case model.PhaseRunning:
		if manager.callbacks.OnPause != nil {
			manager.callbacks.OnPause()
		}
	case model.PhasePaused:
		if manager.callbacks.OnResume != nil {
			manager.callbacks.OnResume()
		}
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

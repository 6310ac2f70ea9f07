package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		name     string
		snapshot model.Snapshot
		want     MenuState
	}{
		{
			name:     "idle",
			snapshot: model.IdleSnapshot(),
			want:     MenuState{Status: "Idle", ToggleLabel: "Pause"},
		},
		{
			name:     "running",
			snapshot: model.Snapshot{RemainingSeconds: 1453, TotalSeconds: 1500, Phase: model.PhaseRunning, Category: model.CategoryFocus},
			want:     MenuState{Status: "Focus 24:13", ToggleLabel: "Pause", CanToggle: true, CanReset: true, CanStop: true},
		},
		{
			name:     "paused",
			snapshot: model.Snapshot{RemainingSeconds: 240, TotalSeconds: 300, Phase: model.PhasePaused, Category: model.CategoryShortBreak},
			want:     MenuState{Status: "Short break 04:00 (paused)", ToggleLabel: "Resume", CanToggle: true, CanReset: true, CanStop: true},
		},
		{
			name:     "completed",
			snapshot: model.Snapshot{TotalSeconds: 900, Phase: model.PhaseCompleted, Category: model.CategoryLongBreak},
			want:     MenuState{Status: "Long break done", ToggleLabel: "Pause", CanReset: true, CanStop: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateFor(tt.snapshot))
		})
	}
}

func TestToggleFollowsPhase(t *testing.T) {
	var calls []string
	manager := New(nil, Callbacks{
		OnPause:  func() { calls = append(calls, "pause") },
		OnResume: func() { calls = append(calls, "resume") },
	})

	manager.toggle()
	manager.Update(model.Snapshot{RemainingSeconds: 10, TotalSeconds: 10, Phase: model.PhaseRunning, Category: model.CategoryFocus})
	manager.toggle()
	manager.Update(model.Snapshot{RemainingSeconds: 10, TotalSeconds: 10, Phase: model.PhasePaused, Category: model.CategoryFocus})
	manager.toggle()

	assert.Equal(t, []string{"pause", "resume"}, calls)
	assert.Equal(t, "Resume", manager.toggleItem.Label)
}

func TestStartItemsCarryCategory(t *testing.T) {
	var started []model.Category
	manager := New(nil, Callbacks{OnStart: func(category model.Category) { started = append(started, category) }})

	for _, item := range manager.startItems {
		item.Action()
	}

	assert.Equal(t, model.Categories, started)
	assert.Equal(t, "Start Short break", manager.startItems[1].Label)
	assert.True(t, manager.stopItem.Disabled)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"focus", CategoryFocus, false},
		{"FOCUS", CategoryFocus, false},
		{"short_break", CategoryShortBreak, false},
		{"short-break", CategoryShortBreak, false},
		{" long_break ", CategoryLongBreak, false},
		{"none", CategoryNone, true},
		{"nap", CategoryNone, true},
		{"", CategoryNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		wantErr  bool
	}{
		{"Idle", IdleSnapshot(), false},
		{"Running", Snapshot{RemainingSeconds: 10, TotalSeconds: 60, Phase: PhaseRunning, Category: CategoryFocus}, false},
		{"PausedFull", Snapshot{RemainingSeconds: 60, TotalSeconds: 60, Phase: PhasePaused, Category: CategoryShortBreak}, false},
		{"Completed", Snapshot{TotalSeconds: 60, Phase: PhaseCompleted, Category: CategoryLongBreak}, false},
		{"Negative", Snapshot{RemainingSeconds: -1, TotalSeconds: 60, Phase: PhaseRunning, Category: CategoryFocus}, true},
		{"OverTotal", Snapshot{RemainingSeconds: 61, TotalSeconds: 60, Phase: PhaseRunning, Category: CategoryFocus}, true},
		{"IdleWithTotal", Snapshot{TotalSeconds: 60, Phase: PhaseIdle}, true},
		{"CompletedWithRemaining", Snapshot{RemainingSeconds: 1, TotalSeconds: 60, Phase: PhaseCompleted, Category: CategoryFocus}, true},
		{"RunningWithoutCategory", Snapshot{RemainingSeconds: 1, TotalSeconds: 60, Phase: PhaseRunning}, true},
		{"UnknownPhase", Snapshot{Phase: Phase(9)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snapshot.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSnapshotClockAndProgress(t *testing.T) {
	snapshot := Snapshot{RemainingSeconds: 1499, TotalSeconds: 1500, Phase: PhaseRunning, Category: CategoryFocus}
	assert.Equal(t, "24:59", snapshot.Clock())
	assert.InDelta(t, 1.0/1500, snapshot.Progress(), 1e-9)

	assert.Equal(t, "90:00", FormatSeconds(5400))
	assert.Equal(t, "00:00", FormatSeconds(-3))
	assert.Zero(t, IdleSnapshot().Progress())
}

func TestPhaseAndCategoryStrings(t *testing.T) {
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.Equal(t, "long_break", CategoryLongBreak.String())
	assert.Equal(t, "Short break", CategoryShortBreak.Title())
	assert.False(t, CategoryNone.Valid())
}

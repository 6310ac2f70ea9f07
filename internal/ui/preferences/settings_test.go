package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
)

func TestNormalize(t *testing.T) {
	settings := Settings{
		Durations: model.Durations{Focus: 90 * time.Second, ShortBreak: 0, LongBreak: 3 * time.Hour},
		IdlePause: -time.Minute,
	}

	got := settings.Normalize()

	assert.Equal(t, 2*time.Minute, got.Durations.Focus)
	assert.Equal(t, 5*time.Minute, got.Durations.ShortBreak)
	assert.Equal(t, 60*time.Minute, got.Durations.LongBreak)
	assert.Zero(t, got.IdlePause)
}

func TestStartFor(t *testing.T) {
	settings := DefaultSettings()

	start := settings.StartFor(model.CategoryLongBreak)

	assert.Equal(t, model.Start{DurationSeconds: 900, Category: model.CategoryLongBreak}, start)
	assert.NoError(t, start.Validate())
}

package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHIDIdleTime(t *testing.T) {
	output := []byte(`+-o Root  <class IORegistryEntry, id 0x100000100, retain 29>
  +-o IOHIDSystem  <class IOHIDSystem, id 0x100000386, registered, matched, active>
      {
        "HIDParameters" = {"HIDIdleTime"=12}
        "HIDIdleTime" = 93500000000
      }
`)
	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 93500*time.Millisecond, idle)
}

func TestParseHIDIdleTimeErrors(t *testing.T) {
	_, err := parseHIDIdleTime([]byte("+-o Root\n"))
	assert.ErrorIs(t, err, ErrIdleUnsupported)

	_, err = parseHIDIdleTime([]byte(`"HIDIdleTime" = soon`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIdleUnsupported)

	_, err = parseHIDIdleTime([]byte(`"HIDIdleTime" = -4`))
	assert.Error(t, err)
}

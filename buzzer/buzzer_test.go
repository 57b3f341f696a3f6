package buzzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutPinIsNoop(t *testing.T) {
	t.Parallel()

	b, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, b)
	assert.NoError(t, b.Pulse(time.Second))
	assert.NoError(t, b.Release())
}

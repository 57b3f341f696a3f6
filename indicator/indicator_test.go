package indicator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) DoorOpen()      { r.calls = append(r.calls, "door_open") }
func (r *recorder) DoorClosed()    { r.calls = append(r.calls, "door_closed") }
func (r *recorder) AlarmArmed()    { r.calls = append(r.calls, "alarm_armed") }
func (r *recorder) AlarmDisarmed() { r.calls = append(r.calls, "alarm_disarmed") }
func (r *recorder) Shutdown()      { r.calls = append(r.calls, "shutdown") }
func (r *recorder) Release() error { return r.err }

func TestNewEmptyConfigIsNoop(t *testing.T) {
	t.Parallel()

	ind, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, ind)
}

func TestMultiFansOut(t *testing.T) {
	t.Parallel()

	a, b := &recorder{}, &recorder{}
	m := NewMulti(a, b)
	m.DoorOpen()
	m.AlarmArmed()
	m.DoorClosed()
	m.AlarmDisarmed()
	m.Shutdown()

	want := []string{"door_open", "alarm_armed", "door_closed", "alarm_disarmed", "shutdown"}
	assert.Equal(t, want, a.calls)
	assert.Equal(t, want, b.calls)
}

func TestMultiReleaseJoinsErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("a")
	errB := errors.New("b")
	err := NewMulti(&recorder{err: errA}, &recorder{}, &recorder{err: errB}).Release()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestNeopixelWritesCommands(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "neopixel")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ind, err := New(Config{NeopixelPipe: path})
	require.NoError(t, err)

	ind.DoorOpen()
	ind.AlarmArmed()
	require.NoError(t, ind.Release())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, neoDoorOpen+"\n"+neoAlarmArmed+"\n", string(data))
}

func TestNeopixelMissingPipe(t *testing.T) {
	t.Parallel()

	_, err := NewNeopixel(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

package light

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Manual{}, s)

	s, err = New(Config{Type: "fixed", Level: 2000})
	require.NoError(t, err)
	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, MaxLevel, level)

	_, err = New(Config{Type: "photon"})
	assert.Error(t, err)
}

func TestManual(t *testing.T) {
	t.Parallel()

	var m Manual
	_, err := m.Level()
	require.ErrorIs(t, err, ErrNoReading)

	m.Set(600)
	level, err := m.Level()
	require.NoError(t, err)
	assert.Equal(t, 600, level)

	m.Set(-4)
	level, _ = m.Level()
	assert.Zero(t, level)
}

func TestManualConcurrentSet(t *testing.T) {
	t.Parallel()

	var (
		m  Manual
		wg sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			m.Set(v * 100)
			_, _ = m.Level()
		}(i)
	}
	wg.Wait()

	level, err := m.Level()
	require.NoError(t, err)
	assert.Contains(t, []int{0, 100, 200, 300}, level)
}

func TestIIO(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	require.NoError(t, os.WriteFile(path, []byte("2048\n"), 0644))

	s, err := NewIIO(path, 4095)
	require.NoError(t, err)
	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, 2048*MaxLevel/4095, level)

	unscaled, err := NewIIO(path, 0)
	require.NoError(t, err)
	level, err = unscaled.Level()
	require.NoError(t, err)
	assert.Equal(t, MaxLevel, level)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))
	_, err = s.Level()
	assert.Error(t, err)
}

func TestIIOMissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewIIO("", 0)
	assert.Error(t, err)

	_, err = NewIIO(filepath.Join(t.TempDir(), "nope"), 0)
	assert.Error(t, err)
}

type fakePin struct {
	sample analog.Sample
	err    error
	halted bool
}

func (f *fakePin) Read() (analog.Sample, error) { return f.sample, f.err }

func (f *fakePin) Halt() error {
	f.halted = true
	return nil
}

func TestScaleVoltage(t *testing.T) {
	t.Parallel()

	full := 3300 * physic.MilliVolt
	tests := []struct {
		name string
		v    physic.ElectricPotential
		want int
	}{
		{"zero", 0, 0},
		{"half", 1650 * physic.MilliVolt, 511},
		{"threshold", 1613 * physic.MilliVolt, 500},
		{"full", full, MaxLevel},
		{"above full", 4 * physic.Volt, MaxLevel},
		{"negative", -100 * physic.MilliVolt, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scaleVoltage(tt.v, full), tt.name)
	}
}

func TestADS1x15Level(t *testing.T) {
	t.Parallel()

	pin := &fakePin{sample: analog.Sample{V: 2500 * physic.MilliVolt}}
	s := &ADS1x15{pin: pin, fullScale: 5 * physic.Volt}

	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, 511, level)

	pin.err = errors.New("i2c nack")
	_, err = s.Level()
	assert.ErrorContains(t, err, "read ADC")

	require.NoError(t, s.Close())
	assert.True(t, pin.halted)
}

func TestADS1x15Config(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3300*physic.MilliVolt, fullScaleOf(0))
	assert.Equal(t, 5*physic.Volt, fullScaleOf(5000))

	ch, err := adsChannel(2)
	require.NoError(t, err)
	assert.Equal(t, ads1x15.Channel2, ch)

	_, err = adsChannel(4)
	assert.Error(t, err)

	_, err = New(Config{Type: "ads1x15", Channel: -1})
	assert.ErrorContains(t, err, "out of range")

	_, err = New(Config{Type: "ads1x15", Model: "ads1234"})
	assert.ErrorContains(t, err, "unknown ADC model")
}

package door

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutPinIsNoop(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{},
		{Type: "servo"},
		{Type: "none", Pin: new(int)},
	} {
		a, err := New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &Noop{}, a)
		assert.NoError(t, a.Open())
		assert.NoError(t, a.Close())
		assert.NoError(t, a.Release())
	}
}

func TestSettleDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultSettle, Config{}.settle())
	assert.Equal(t, 250*time.Millisecond, Config{SettleMs: 250}.settle())
}

func TestSweep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{name: "up", from: 1, to: 4, want: []int{1, 2, 3, 4}},
		{name: "down", from: 4, to: 2, want: []int{4, 3, 2}},
		{name: "same", from: 3, to: 3, want: []int{3}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []int
			sweep(tt.from, tt.to, func(v int) { got = append(got, v) })
			assert.Equal(t, tt.want, got)
		})
	}
}

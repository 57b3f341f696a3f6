// Package doorbell turns doorbell button edges into a pending flag raise.
//
// Every backend's handler does exactly one thing: call Raiser.Raise. The
// control loop drains the flag on its own schedule.
package doorbell

import (
	"errors"
	"time"
)

// ErrNotSupported is returned when the configured backend is not available
// on this platform.
var ErrNotSupported = errors.New("doorbell input not supported on this platform")

// DefaultDebounce filters contact bounce on GPIO backends.
const DefaultDebounce = 5 * time.Millisecond

// Raiser is the flag a press is reported to.
type Raiser interface {
	Raise()
}

// Source is a running doorbell input.
type Source interface {
	// Release stops watching the input and frees it.
	Release() error
}

// Config holds doorbell input configuration.
type Config struct {
	Type       string `yaml:"type"`        // "gpiocdev", "sysfs", "evdev", "" = none
	Chip       string `yaml:"chip"`        // gpiocdev: chip name, default gpiochip0
	Pin        int    `yaml:"pin"`         // gpiocdev/sysfs: line offset / BCM pin
	Device     string `yaml:"device"`      // evdev: input device path
	DebounceMs int    `yaml:"debounce_ms"` // gpiocdev: debounce period, 0 = DefaultDebounce
}

func (cfg Config) debounce() time.Duration {
	if cfg.DebounceMs <= 0 {
		return DefaultDebounce
	}
	return time.Duration(cfg.DebounceMs) * time.Millisecond
}

// Noop is a Source that never fires.
type Noop struct{}

// Release implements Source.Release.
func (n *Noop) Release() error { return nil }

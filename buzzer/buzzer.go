// Package buzzer drives the door buzzer.
package buzzer

import (
	"fmt"
	"time"

	"github.com/hjkoskel/govattu"
)

// Buzzer is the interface for buzzer implementations.
type Buzzer interface {
	// Pulse holds the buzzer high for d and then low for d. It blocks for 2*d.
	Pulse(d time.Duration) error

	// Release releases any hardware resources.
	Release() error
}

// Config holds buzzer configuration.
type Config struct {
	Pin *uint8 `yaml:"pin"` // GPIO pin number, nil = no buzzer
}

// New creates a Buzzer based on the provided configuration.
func New(cfg Config) (Buzzer, error) {
	if cfg.Pin == nil {
		return &Noop{}, nil
	}

	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}
	return NewGPIO(hw, *cfg.Pin), nil
}

// GPIO implements Buzzer on a single output pin.
type GPIO struct {
	hw  govattu.Vattu
	pin uint8
}

// NewGPIO creates a GPIO buzzer. The pin starts low.
func NewGPIO(hw govattu.Vattu, pin uint8) *GPIO {
	hw.PinMode(pin, govattu.ALToutput)
	hw.PinClear(pin)
	return &GPIO{hw: hw, pin: pin}
}

// Pulse implements Buzzer.Pulse.
func (g *GPIO) Pulse(d time.Duration) error {
	g.hw.PinSet(g.pin)
	time.Sleep(d)
	g.hw.PinClear(g.pin)
	time.Sleep(d)
	return nil
}

// Release implements Buzzer.Release.
func (g *GPIO) Release() error {
	g.hw.PinClear(g.pin)
	return g.hw.Close()
}

// Noop implements Buzzer but does nothing.
type Noop struct{}

// Pulse implements Buzzer.Pulse.
func (n *Noop) Pulse(d time.Duration) error { return nil }

// Release implements Buzzer.Release.
func (n *Noop) Release() error { return nil }

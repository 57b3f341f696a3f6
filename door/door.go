// Package door drives the latch of the controlled door.
package door

import (
	"fmt"
	"time"

	"github.com/hjkoskel/govattu"
)

// DefaultSettle is how long a move is given to complete physically.
const DefaultSettle = 500 * time.Millisecond

// Actuator is the interface for all door latch implementations.
type Actuator interface {
	// Open moves the latch to the open position and blocks until it has settled.
	Open() error

	// Close moves the latch to the closed position and blocks until it has settled.
	Close() error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for door actuator implementations.
type Config struct {
	Type       string `yaml:"type"`        // "servo", "gpio_high", "gpio_low", "none"
	Pin        *int   `yaml:"pin"`         // GPIO pin number
	ServoOpen  int    `yaml:"servo_open"`  // PWM value for open position
	ServoClose int    `yaml:"servo_close"` // PWM value for closed position
	SettleMs   int    `yaml:"settle_ms"`   // time allowed for a move, 0 = DefaultSettle
}

func (cfg Config) settle() time.Duration {
	if cfg.SettleMs <= 0 {
		return DefaultSettle
	}
	return time.Duration(cfg.SettleMs) * time.Millisecond
}

// New creates an Actuator based on the provided configuration.
func New(cfg Config) (Actuator, error) {
	if cfg.Pin == nil || cfg.Type == "" || cfg.Type == "none" {
		return &Noop{}, nil
	}

	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	switch cfg.Type {
	case "servo":
		return NewServo(hw, uint8(*cfg.Pin), cfg.ServoOpen, cfg.ServoClose, cfg.settle())
	case "gpio_high":
		return NewGPIO(hw, uint8(*cfg.Pin), true, cfg.settle())
	case "gpio_low":
		return NewGPIO(hw, uint8(*cfg.Pin), false, cfg.settle())
	default:
		hw.Close()
		return nil, fmt.Errorf("unknown door type %q", cfg.Type)
	}
}

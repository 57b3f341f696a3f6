// Package light provides ambient light level readings on a 0..1023 scale.
package light

import (
	"errors"
	"fmt"
)

// MaxLevel is the top of the light scale.
const MaxLevel = 1023

// ErrNoReading is returned by sensors that have nothing to report yet.
var ErrNoReading = errors.New("no light reading available")

// Sensor is the interface for light sensor implementations.
type Sensor interface {
	// Level returns the current light level, 0..MaxLevel.
	Level() (int, error)
}

// Config holds light sensor configuration.
type Config struct {
	Type   string `yaml:"type"`    // "ads1x15", "iio", "fixed", "manual" (default)
	Path   string `yaml:"path"`    // iio: sysfs raw value file
	MaxRaw int    `yaml:"max_raw"` // iio: full scale raw value, 0 = already 0..1023
	Level  int    `yaml:"level"`   // fixed: constant level

	Model       string `yaml:"model"`         // ads1x15: "ads1115" (default) or "ads1015"
	Bus         string `yaml:"bus"`           // ads1x15: I2C bus name, "" = first bus
	Address     uint16 `yaml:"address"`       // ads1x15: I2C address, 0 = 0x48
	Channel     int    `yaml:"channel"`       // ads1x15: single ended input, 0..3
	FullScaleMv int    `yaml:"full_scale_mv"` // ads1x15: input read as MaxLevel, 0 = DefaultFullScaleMv
}

// New creates a Sensor based on the provided configuration.
func New(cfg Config) (Sensor, error) {
	switch cfg.Type {
	case "ads1x15":
		return NewADS1x15(cfg)
	case "iio":
		return NewIIO(cfg.Path, cfg.MaxRaw)
	case "fixed":
		return Fixed(clamp(cfg.Level)), nil
	case "manual", "":
		return &Manual{}, nil
	default:
		return nil, fmt.Errorf("unknown light sensor type %q", cfg.Type)
	}
}

// Fixed is a Sensor that always reports the same level.
type Fixed int

// Level implements Sensor.Level.
func (f Fixed) Level() (int, error) {
	return int(f), nil
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > MaxLevel:
		return MaxLevel
	default:
		return v
	}
}

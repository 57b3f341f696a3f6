// Package indicator drives the door and alarm status outputs.
package indicator

// Indicator is the interface for status indicator implementations (LED pairs, neopixels).
type Indicator interface {
	// DoorOpen shows the door as open.
	DoorOpen()

	// DoorClosed shows the door as closed.
	DoorClosed()

	// AlarmArmed shows the alarm as armed.
	AlarmArmed()

	// AlarmDisarmed shows the alarm as disarmed.
	AlarmDisarmed()

	// Shutdown sets the indicator to its shutdown state.
	Shutdown()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// GPIO LED pairs (nil = not configured)
	DoorGreenPin  *uint8 `yaml:"door_green_pin"`
	DoorRedPin    *uint8 `yaml:"door_red_pin"`
	AlarmGreenPin *uint8 `yaml:"alarm_green_pin"`
	AlarmRedPin   *uint8 `yaml:"alarm_red_pin"`

	// Neopixel pipe path (empty = not configured)
	NeopixelPipe string `yaml:"neopixel_pipe"`
}

func (cfg Config) hasPins() bool {
	return cfg.DoorGreenPin != nil || cfg.DoorRedPin != nil ||
		cfg.AlarmGreenPin != nil || cfg.AlarmRedPin != nil
}

// New creates an Indicator based on the provided configuration.
// Returns a Multi indicator if both GPIO and Neopixel are configured.
func New(cfg Config) (Indicator, error) {
	var indicators []Indicator

	if cfg.hasPins() {
		gpio, err := NewGPIO(cfg)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, gpio)
	}

	if cfg.NeopixelPipe != "" {
		neo, err := NewNeopixel(cfg.NeopixelPipe)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, neo)
	}

	switch len(indicators) {
	case 0:
		return &Noop{}, nil
	case 1:
		return indicators[0], nil
	default:
		return NewMulti(indicators...), nil
	}
}

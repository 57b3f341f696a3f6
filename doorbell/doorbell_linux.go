//go:build linux

package doorbell

import "fmt"

// New starts watching the doorbell input described by cfg. Presses raise bell.
func New(cfg Config, bell Raiser) (Source, error) {
	switch cfg.Type {
	case "":
		return &Noop{}, nil
	case "gpiocdev":
		return NewCDev(cfg.Chip, cfg.Pin, cfg.debounce(), bell)
	case "sysfs":
		return NewSysfs(cfg.Pin, bell)
	case "evdev":
		return NewEvdev(cfg.Device, bell)
	default:
		return nil, fmt.Errorf("unknown doorbell type %q", cfg.Type)
	}
}

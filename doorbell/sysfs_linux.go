//go:build linux

package doorbell

import (
	"fmt"

	"github.com/warthog618/gpio"
)

// Sysfs watches a BCM pin through the memory mapped GPIO driver, for
// kernels without the character device.
type Sysfs struct {
	pin *gpio.Pin
}

// NewSysfs configures pin as a pulled-down input and watches rising edges.
func NewSysfs(pin int, bell Raiser) (*Sysfs, error) {
	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	p := gpio.NewPin(pin)
	p.Input()
	p.PullDown()

	err := p.Watch(gpio.EdgeRising, func(*gpio.Pin) {
		bell.Raise()
	})
	if err != nil {
		gpio.Close()
		return nil, fmt.Errorf("watch doorbell pin %d: %w", pin, err)
	}
	return &Sysfs{pin: p}, nil
}

// Release implements Source.Release.
func (s *Sysfs) Release() error {
	s.pin.Unwatch()
	return gpio.Close()
}

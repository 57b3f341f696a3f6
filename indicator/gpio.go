package indicator

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// pair is a green/red LED pair where exactly one is lit.
type pair struct {
	green *uint8
	red   *uint8
}

// GPIO implements Indicator using two discrete LED pairs.
type GPIO struct {
	hw    govattu.Vattu
	door  pair
	alarm pair
}

// NewGPIO creates a new GPIO-based indicator. All configured pins start off.
func NewGPIO(cfg Config) (*GPIO, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	g := &GPIO{
		hw:    hw,
		door:  pair{green: cfg.DoorGreenPin, red: cfg.DoorRedPin},
		alarm: pair{green: cfg.AlarmGreenPin, red: cfg.AlarmRedPin},
	}

	for _, pin := range g.pins() {
		hw.PinMode(*pin, govattu.ALToutput)
		hw.PinClear(*pin)
	}
	return g, nil
}

// DoorOpen implements Indicator.DoorOpen.
func (g *GPIO) DoorOpen() {
	g.set(g.door, true)
}

// DoorClosed implements Indicator.DoorClosed.
func (g *GPIO) DoorClosed() {
	g.set(g.door, false)
}

// AlarmArmed implements Indicator.AlarmArmed.
func (g *GPIO) AlarmArmed() {
	g.set(g.alarm, true)
}

// AlarmDisarmed implements Indicator.AlarmDisarmed.
func (g *GPIO) AlarmDisarmed() {
	g.set(g.alarm, false)
}

// Shutdown implements Indicator.Shutdown.
func (g *GPIO) Shutdown() {
	g.allOff()
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	g.allOff()
	return g.hw.Close()
}

// set lights green when on, red otherwise.
func (g *GPIO) set(p pair, on bool) {
	g.write(p.green, on)
	g.write(p.red, !on)
}

func (g *GPIO) write(pin *uint8, high bool) {
	if pin == nil {
		return
	}
	if high {
		g.hw.PinSet(*pin)
	} else {
		g.hw.PinClear(*pin)
	}
}

func (g *GPIO) pins() []*uint8 {
	var out []*uint8
	for _, pin := range []*uint8{g.door.green, g.door.red, g.alarm.green, g.alarm.red} {
		if pin != nil {
			out = append(out, pin)
		}
	}
	return out
}

func (g *GPIO) allOff() {
	for _, pin := range g.pins() {
		g.hw.PinClear(*pin)
	}
}

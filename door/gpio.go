package door

import (
	"time"

	"github.com/hjkoskel/govattu"
)

// GPIO implements Actuator with a single relay or strike pin.
type GPIO struct {
	hw       govattu.Vattu
	pin      uint8
	openHigh bool // true = set pin high to open, false = set pin low to open
	settle   time.Duration
}

// NewGPIO creates a new GPIO-based actuator. The pin starts in the closed state.
func NewGPIO(hw govattu.Vattu, pin uint8, openHigh bool, settle time.Duration) (*GPIO, error) {
	hw.PinMode(pin, govattu.ALToutput)

	g := &GPIO{
		hw:       hw,
		pin:      pin,
		openHigh: openHigh,
		settle:   settle,
	}
	g.drive(false)
	return g, nil
}

// Open implements Actuator.Open.
func (g *GPIO) Open() error {
	g.drive(true)
	time.Sleep(g.settle)
	return nil
}

// Close implements Actuator.Close.
func (g *GPIO) Close() error {
	g.drive(false)
	time.Sleep(g.settle)
	return nil
}

// Release implements Actuator.Release.
func (g *GPIO) Release() error {
	return g.hw.Close()
}

func (g *GPIO) drive(open bool) {
	if open == g.openHigh {
		g.hw.PinSet(g.pin)
	} else {
		g.hw.PinClear(g.pin)
	}
}

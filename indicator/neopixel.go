package indicator

import (
	"fmt"
	"os"
)

// Neopixel command strings for the external neopixel tool.
const (
	neoDoorOpen      = "@1 !50000 8000"
	neoDoorClosed    = "@3 !150000 400000"
	neoAlarmArmed    = "@2 !10000 ff"
	neoAlarmDisarmed = "@3 !150000 001010"
	neoTerminated    = "@0 010101"
)

// Neopixel implements Indicator using an external neopixel tool via named pipe.
type Neopixel struct {
	pipe *os.File
}

// NewNeopixel creates a new Neopixel indicator.
func NewNeopixel(pipePath string) (*Neopixel, error) {
	f, err := os.OpenFile(pipePath, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open neopixel pipe %s: %w", pipePath, err)
	}
	return &Neopixel{pipe: f}, nil
}

// DoorOpen implements Indicator.DoorOpen.
func (n *Neopixel) DoorOpen() {
	n.write(neoDoorOpen)
}

// DoorClosed implements Indicator.DoorClosed.
func (n *Neopixel) DoorClosed() {
	n.write(neoDoorClosed)
}

// AlarmArmed implements Indicator.AlarmArmed.
func (n *Neopixel) AlarmArmed() {
	n.write(neoAlarmArmed)
}

// AlarmDisarmed implements Indicator.AlarmDisarmed.
func (n *Neopixel) AlarmDisarmed() {
	n.write(neoAlarmDisarmed)
}

// Shutdown implements Indicator.Shutdown.
func (n *Neopixel) Shutdown() {
	n.write(neoTerminated)
}

// Release implements Indicator.Release.
func (n *Neopixel) Release() error {
	if n.pipe == nil {
		return nil
	}
	return n.pipe.Close()
}

func (n *Neopixel) write(s string) {
	if n.pipe != nil {
		n.pipe.Write([]byte(s + "\n"))
	}
}

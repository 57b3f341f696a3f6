//go:build linux

package doorbell

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// CDev watches a GPIO line through the Linux GPIO character device.
type CDev struct {
	line *gpiocdev.Line
	bell Raiser
}

// NewCDev requests the line with a pull-down and rising edge detection.
func NewCDev(chip string, offset int, debounce time.Duration, bell Raiser) (*CDev, error) {
	if chip == "" {
		chip = "gpiochip0"
	}

	c := &CDev{bell: bell}

	var err error
	c.line, err = gpiocdev.RequestLine(chip, offset,
		gpiocdev.WithPullDown,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithEventHandler(c.handleEvent))
	if err != nil {
		return nil, fmt.Errorf("request doorbell line %s:%d: %w", chip, offset, err)
	}
	return c, nil
}

func (c *CDev) handleEvent(evt gpiocdev.LineEvent) {
	if evt.Type == gpiocdev.LineEventRisingEdge {
		c.bell.Raise()
	}
}

// Release implements Source.Release.
func (c *CDev) Release() error {
	if c.line == nil {
		return nil
	}
	return c.line.Close()
}

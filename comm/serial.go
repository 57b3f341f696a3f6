package comm

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

// OpenSerial opens device at baud, 8N1, with blocking reads.
func OpenSerial(device string, baud int) (bugst.Port, error) {
	mode := &bugst.Mode{
		BaudRate: baud,
		Parity:   bugst.NoParity,
		DataBits: 8,
		StopBits: bugst.OneStopBit,
	}

	p, err := bugst.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}

	// Boards that reset on open need a moment before they listen.
	time.Sleep(500 * time.Millisecond)
	_ = p.ResetInputBuffer()
	return p, nil
}

// OpenTarm opens device with the tarm/serial driver, for adapters the
// go.bug.st driver does not handle.
func OpenTarm(device string, baud int) (*serial.Port, error) {
	c := &serial.Config{
		Name: device,
		Baud: baud,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return port, nil
}

//go:build linux

package doorbell

import (
	"context"
	"fmt"

	"github.com/kenshaw/evdev"
)

// Evdev treats any key press on an input device as a doorbell press, for
// USB and Bluetooth buttons that present as keyboards.
type Evdev struct {
	device *evdev.Evdev
	cancel context.CancelFunc
	done   chan struct{}
}

// NewEvdev opens the input device and starts watching it.
func NewEvdev(device string, bell Raiser) (*Evdev, error) {
	dev, err := evdev.OpenFile(device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", device, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Evdev{
		device: dev,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go e.watch(ctx, bell)
	return e, nil
}

func (e *Evdev) watch(ctx context.Context, bell Raiser) {
	defer close(e.done)

	ch := e.device.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			if event == nil {
				return
			}
			if _, ok := event.Type.(evdev.KeyType); ok && event.Value == 1 {
				bell.Raise()
			}
		}
	}
}

// Release implements Source.Release.
func (e *Evdev) Release() error {
	e.cancel()
	<-e.done
	return e.device.Close()
}

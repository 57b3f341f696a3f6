package indicator

import "errors"

// Multi combines multiple Indicator implementations.
type Multi struct {
	indicators []Indicator
}

// NewMulti returns an Indicator that forwards every call to all of inds.
func NewMulti(inds ...Indicator) *Multi {
	return &Multi{indicators: inds}
}

// DoorOpen implements Indicator.DoorOpen.
func (m *Multi) DoorOpen() {
	for _, ind := range m.indicators {
		ind.DoorOpen()
	}
}

// DoorClosed implements Indicator.DoorClosed.
func (m *Multi) DoorClosed() {
	for _, ind := range m.indicators {
		ind.DoorClosed()
	}
}

// AlarmArmed implements Indicator.AlarmArmed.
func (m *Multi) AlarmArmed() {
	for _, ind := range m.indicators {
		ind.AlarmArmed()
	}
}

// AlarmDisarmed implements Indicator.AlarmDisarmed.
func (m *Multi) AlarmDisarmed() {
	for _, ind := range m.indicators {
		ind.AlarmDisarmed()
	}
}

// Shutdown implements Indicator.Shutdown.
func (m *Multi) Shutdown() {
	for _, ind := range m.indicators {
		ind.Shutdown()
	}
}

// Release implements Indicator.Release.
func (m *Multi) Release() error {
	var errs []error
	for _, ind := range m.indicators {
		if err := ind.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

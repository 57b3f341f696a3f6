package indicator

// Noop implements Indicator but does nothing.
// Used when no indicators are configured.
type Noop struct{}

// DoorOpen implements Indicator.DoorOpen.
func (n *Noop) DoorOpen() {}

// DoorClosed implements Indicator.DoorClosed.
func (n *Noop) DoorClosed() {}

// AlarmArmed implements Indicator.AlarmArmed.
func (n *Noop) AlarmArmed() {}

// AlarmDisarmed implements Indicator.AlarmDisarmed.
func (n *Noop) AlarmDisarmed() {}

// Shutdown implements Indicator.Shutdown.
func (n *Noop) Shutdown() {}

// Release implements Indicator.Release.
func (n *Noop) Release() error {
	return nil
}

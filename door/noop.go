package door

// Noop implements Actuator but does nothing.
// Used when no latch is configured.
type Noop struct{}

// Open implements Actuator.Open.
func (n *Noop) Open() error {
	return nil
}

// Close implements Actuator.Close.
func (n *Noop) Close() error {
	return nil
}

// Release implements Actuator.Release.
func (n *Noop) Release() error {
	return nil
}

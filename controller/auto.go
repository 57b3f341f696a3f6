package controller

func (c *Controller) autoControlEligible() bool {
	return !c.state.Visitor.Active && c.state.Auto.Enabled
}

// runAutoControl ties the door to the light level. There is no hysteresis:
// a level hovering around the threshold moves the door every cycle.
func (c *Controller) runAutoControl() {
	if !c.autoControlEligible() {
		return
	}

	level, err := c.hw.Light.Level()
	if err != nil {
		c.log.Warnw("light sensor read failed", "error", err)
		return
	}

	if level > LightThreshold {
		c.openDoor()
	} else {
		c.closeDoor()
	}
}

// setAutoControl accepts 0 or 1. Anything else is reported and ignored.
func (c *Controller) setAutoControl(value int) {
	switch value {
	case 1:
		c.state.Auto.Enabled = true
		c.emit(autoControlEvent(true))
	case 0:
		c.state.Auto.Enabled = false
		c.emit(autoControlEvent(false))
	default:
		c.emit(invalidArgumentEvent(value))
	}
}

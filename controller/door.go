package controller

// openDoor moves the door to open unless it already is.
func (c *Controller) openDoor() {
	if c.state.Door.Position == PositionOpen {
		return
	}

	c.hw.Indicator.DoorOpen()
	if err := c.hw.Door.Open(); err != nil {
		c.log.Warnw("door open failed", "error", err)
	}
	c.state.Door.Position = PositionOpen
	c.emit(doorOpenedEvent())
}

// closeDoor moves the door to closed unless it already is.
func (c *Controller) closeDoor() {
	if c.state.Door.Position == PositionClosed {
		return
	}

	c.hw.Indicator.DoorClosed()
	if err := c.hw.Door.Close(); err != nil {
		c.log.Warnw("door close failed", "error", err)
	}
	c.state.Door.Position = PositionClosed
	c.emit(doorClosedEvent())
}

// reportDoorStatus emits a status event when the position differs from the
// last reported one. Unknown is never reported.
func (c *Controller) reportDoorStatus() {
	pos := c.state.Door.Position
	if pos == PositionUnknown || pos == c.state.Door.LastReported {
		return
	}
	c.emit(doorStatusEvent(pos))
	c.state.Door.LastReported = pos
}

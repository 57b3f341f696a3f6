package controller

// activateVisitorMode disarms the alarm, opens the door and starts the
// visitor timer. Calling it while already active runs the whole sequence
// again: the timer restarts and the alarm snapshot is taken again, so an
// alarm disarmed by the first activation is not re-armed at the end.
func (c *Controller) activateVisitorMode() {
	c.state.Visitor.SavedAlarmArmed = c.state.Alarm.Armed
	if c.state.Alarm.Armed {
		c.disarmAlarm()
	}

	c.openDoor()
	c.state.Visitor.Active = true
	c.state.Visitor.Started = c.clock.Now()
	c.emit(visitorModeOnEvent())
}

// deactivateVisitorMode closes the door and restores the alarm snapshot.
func (c *Controller) deactivateVisitorMode() {
	c.closeDoor()
	c.state.Visitor.Active = false

	if c.state.Visitor.SavedAlarmArmed {
		c.armAlarm()
	}
	c.state.Visitor.SavedAlarmArmed = false
	c.emit(visitorModeOffEvent())
}

func (c *Controller) checkVisitorExpiry() {
	if !c.state.Visitor.Active {
		return
	}
	if c.clock.Now().Sub(c.state.Visitor.Started) >= VisitorModeDuration {
		c.deactivateVisitorMode()
	}
}

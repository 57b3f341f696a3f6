package controller

// Alarm calls always apply and always emit, even when nothing changes.

func (c *Controller) armAlarm() {
	c.hw.Indicator.AlarmArmed()
	c.state.Alarm.Armed = true
	c.emit(alarmArmedEvent())
}

func (c *Controller) disarmAlarm() {
	c.hw.Indicator.AlarmDisarmed()
	c.state.Alarm.Armed = false
	c.emit(alarmDisarmedEvent())
}

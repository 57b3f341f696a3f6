package controller

import (
	"strconv"
	"strings"
	"time"
)

// Command letters accepted on the command channel.
const (
	CmdCloseDoor   = 'A'
	CmdOpenDoor    = 'B'
	CmdAlarmOn     = 'C'
	CmdAlarmOff    = 'D'
	CmdVisitorOn   = 'E'
	CmdBuzzerPulse = 'F'
	CmdAutoControl = 'G'
	CmdVisitorOff  = 'H'
)

// Command is a parsed command line.
type Command struct {
	Letter byte
	Value  int
}

// ParseCommand splits a line into its command letter and integer argument.
// The line is trimmed first; ok is false for an empty line. The argument is
// parsed permissively and is 0 when absent or unparsable.
func ParseCommand(line string) (cmd Command, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, false
	}
	return Command{Letter: line[0], Value: parseValue(line[1:])}, true
}

// parseValue reads an optional sign and the longest run of digits after any
// leading blanks, ignoring whatever follows. No digits or overflow gives 0.
func parseValue(s string) int {
	s = strings.TrimLeft(s, " \t")

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

// Dispatch parses one command line and applies it. Bad input only produces
// a diagnostic event.
func (c *Controller) Dispatch(line string) {
	cmd, ok := ParseCommand(line)
	if !ok {
		return
	}
	c.emit(commandReceivedEvent(cmd.Letter, cmd.Value))
	c.execute(cmd)
}

func (c *Controller) execute(cmd Command) {
	switch cmd.Letter {
	case CmdCloseDoor:
		c.closeDoor()
		c.setAutoControl(0)
	case CmdOpenDoor:
		c.openDoor()
		c.setAutoControl(0)
	case CmdAlarmOn:
		c.armAlarm()
	case CmdAlarmOff:
		c.disarmAlarm()
	case CmdVisitorOn:
		c.activateVisitorMode()
	case CmdBuzzerPulse:
		c.pulseBuzzer(cmd.Value)
	case CmdAutoControl:
		c.setAutoControl(cmd.Value)
	case CmdVisitorOff:
		if !c.state.Visitor.Active {
			c.emit(invalidCommandEvent("visitor mode is not active"))
			return
		}
		c.deactivateVisitorMode()
	default:
		c.emit(invalidCommandEvent("invalid command"))
	}
}

// MaxBuzzerPulseMs caps the buzzer pulse. The whole pulse blocks the
// control cycle for twice this long.
const MaxBuzzerPulseMs = 32767

func (c *Controller) pulseBuzzer(ms int) {
	switch {
	case ms < 0:
		ms = 0
	case ms > MaxBuzzerPulseMs:
		ms = MaxBuzzerPulseMs
	}
	if err := c.hw.Buzzer.Pulse(time.Duration(ms) * time.Millisecond); err != nil {
		c.log.Warnw("buzzer pulse failed", "error", err)
	}
}

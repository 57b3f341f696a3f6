package controller

import "fmt"

// EventKind identifies what happened inside the controller.
type EventKind int

const (
	EventStarted EventKind = iota
	EventCommandReceived
	EventVisitorDetected
	EventDoorClosed
	EventDoorOpened
	EventDoorStatus
	EventAlarmArmed
	EventAlarmDisarmed
	EventVisitorModeOn
	EventVisitorModeOff
	EventAutoControlChanged
	EventInvalidArgument
	EventInvalidCommand
)

// Status codes sent next to the human readable lines. External consumers
// parse these, so they never change.
const (
	CodeVisitorDetected = "VD"
	CodeDoorClosed      = "PF"
	CodeDoorOpened      = "PA"
	CodeAlarmArmed      = "AL"
	CodeAlarmDisarmed   = "AD"
	CodeVisitorModeOn   = "VL"
	CodeVisitorModeOff  = "MVD"
)

var kindNames = map[EventKind]string{
	EventStarted:            "started",
	EventCommandReceived:    "command_received",
	EventVisitorDetected:    "visitor_detected",
	EventDoorClosed:         "door_closed",
	EventDoorOpened:         "door_opened",
	EventDoorStatus:         "door_status",
	EventAlarmArmed:         "alarm_armed",
	EventAlarmDisarmed:      "alarm_disarmed",
	EventVisitorModeOn:      "visitor_mode_on",
	EventVisitorModeOff:     "visitor_mode_off",
	EventAutoControlChanged: "auto_control_changed",
	EventInvalidArgument:    "invalid_argument",
	EventInvalidCommand:     "invalid_command",
}

func (k EventKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a single observable output of the controller.
// Code is empty for events that only have a human readable line.
type Event struct {
	Kind    EventKind
	Code    string
	Message string
}

// Reporter receives controller events. Report is called from the control
// loop and should not block for long.
type Reporter interface {
	Report(evt Event)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Event)

// Report implements Reporter.
func (f ReporterFunc) Report(evt Event) { f(evt) }

func startedEvent() Event {
	return Event{Kind: EventStarted, Message: "SYSTEM STARTED"}
}

func commandReceivedEvent(letter byte, value int) Event {
	return Event{
		Kind:    EventCommandReceived,
		Message: fmt.Sprintf("Command received: %c %d", letter, value),
	}
}

func visitorDetectedEvent() Event {
	return Event{Kind: EventVisitorDetected, Code: CodeVisitorDetected, Message: "Visitor detected!"}
}

func doorClosedEvent() Event {
	return Event{Kind: EventDoorClosed, Code: CodeDoorClosed, Message: "Door -> CLOSED"}
}

func doorOpenedEvent() Event {
	return Event{Kind: EventDoorOpened, Code: CodeDoorOpened, Message: "Door -> OPEN"}
}

func doorStatusEvent(pos Position) Event {
	return Event{Kind: EventDoorStatus, Message: "Current door status: " + pos.String()}
}

func alarmArmedEvent() Event {
	return Event{Kind: EventAlarmArmed, Code: CodeAlarmArmed, Message: "Alarm status: ON"}
}

func alarmDisarmedEvent() Event {
	return Event{Kind: EventAlarmDisarmed, Code: CodeAlarmDisarmed, Message: "Alarm status: OFF"}
}

func visitorModeOnEvent() Event {
	return Event{Kind: EventVisitorModeOn, Code: CodeVisitorModeOn, Message: "Visitor mode: ON"}
}

func visitorModeOffEvent() Event {
	return Event{Kind: EventVisitorModeOff, Code: CodeVisitorModeOff, Message: "Visitor mode: OFF"}
}

func autoControlEvent(enabled bool) Event {
	msg := "Automatic control: DISABLED"
	if enabled {
		msg = "Automatic control: ENABLED"
	}
	return Event{Kind: EventAutoControlChanged, Message: msg}
}

func invalidArgumentEvent(value int) Event {
	return Event{
		Kind:    EventInvalidArgument,
		Message: fmt.Sprintf("Invalid value %d for automatic control (use 0 or 1)", value),
	}
}

func invalidCommandEvent(msg string) Event {
	return Event{Kind: EventInvalidCommand, Message: "ERROR: " + msg}
}

package controller

import (
	"sync/atomic"
	"time"
)

// Position is the door position as tracked by the controller.
type Position int

const (
	PositionUnknown Position = iota
	PositionClosed
	PositionOpen
)

func (p Position) String() string {
	switch p {
	case PositionClosed:
		return "CLOSED"
	case PositionOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// DoorState tracks the door position and the last position reported in a
// status event.
type DoorState struct {
	Position     Position
	LastReported Position
}

// AlarmState tracks whether the alarm is armed.
type AlarmState struct {
	Armed bool
}

// VisitorState tracks the visitor mode override.
// SavedAlarmArmed is only meaningful while Active, or inside the
// deactivation that consumes it.
type VisitorState struct {
	Active          bool
	Started         time.Time
	SavedAlarmArmed bool
}

// AutoControlState gates the light-driven door policy.
type AutoControlState struct {
	Enabled bool
}

// State is the aggregate owned by the control loop. Nothing outside the
// loop goroutine reads or writes it.
type State struct {
	Door    DoorState
	Alarm   AlarmState
	Visitor VisitorState
	Auto    AutoControlState
}

// NewState returns the startup state: door unknown, alarm disarmed,
// visitor mode inactive, automatic control enabled.
func NewState() State {
	return State{
		Door: DoorState{
			Position:     PositionUnknown,
			LastReported: PositionUnknown,
		},
		Auto: AutoControlState{Enabled: true},
	}
}

// Doorbell is the single pending flag shared between the doorbell edge
// handler and the control loop. Several presses between two cycles collapse
// into one.
type Doorbell struct {
	pending atomic.Bool
}

// Raise marks a press as pending. It is the only thing an edge handler may do.
func (d *Doorbell) Raise() {
	d.pending.Store(true)
}

// Take reports whether a press was pending and clears the flag.
func (d *Doorbell) Take() bool {
	return d.pending.Swap(false)
}

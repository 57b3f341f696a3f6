// Package controller holds the state machine of a single-door access
// controller: door position, alarm, visitor mode, light-driven automatic
// control, the command dispatcher and the doorbell flag.
//
// All state is owned by the goroutine running Run (or calling Step).
// Other goroutines interact only through Submit and Doorbell.
package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"godoor/logger"
)

const (
	// LightThreshold is the light level above which automatic control opens the door.
	LightThreshold = 500

	// VisitorModeDuration is how long visitor mode stays active.
	VisitorModeDuration = 10 * time.Second

	// DefaultCycle is the pause between two control cycles.
	DefaultCycle = 500 * time.Millisecond

	// DefaultInboxSize bounds the number of queued command lines.
	DefaultInboxSize = 16
)

// DoorActuator moves the latch. Both calls block until the actuator has settled.
type DoorActuator interface {
	Open() error
	Close() error
}

// Indicator drives the door and alarm output pairs.
type Indicator interface {
	DoorOpen()
	DoorClosed()
	AlarmArmed()
	AlarmDisarmed()
}

// Buzzer pulses the buzzer: high for d, then low for d. It blocks for 2*d.
type Buzzer interface {
	Pulse(d time.Duration) error
}

// LightSensor reads the ambient light level, 0..1023.
type LightSensor interface {
	Level() (int, error)
}

// Clock is the monotonic time source used for visitor mode expiry.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Hardware groups the collaborators the controller drives.
// Nil members are replaced by no-op implementations.
type Hardware struct {
	Door      DoorActuator
	Indicator Indicator
	Buzzer    Buzzer
	Light     LightSensor
}

// Options tunes a Controller. The zero value is usable.
type Options struct {
	Clock     Clock
	Cycle     time.Duration
	InboxSize int
	Logger    *zap.SugaredLogger
}

// Controller runs the control cycle.
type Controller struct {
	hw       Hardware
	reporter Reporter
	clock    Clock
	cycle    time.Duration
	log      *zap.SugaredLogger

	state State
	inbox chan string
	bell  Doorbell
}

// New creates a Controller in its startup state.
func New(hw Hardware, reporter Reporter, opts Options) *Controller {
	if hw.Door == nil {
		hw.Door = noopHardware{}
	}
	if hw.Indicator == nil {
		hw.Indicator = noopHardware{}
	}
	if hw.Buzzer == nil {
		hw.Buzzer = noopHardware{}
	}
	if hw.Light == nil {
		hw.Light = noopHardware{}
	}
	if reporter == nil {
		reporter = ReporterFunc(func(Event) {})
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Cycle <= 0 {
		opts.Cycle = DefaultCycle
	}
	if opts.InboxSize <= 0 {
		opts.InboxSize = DefaultInboxSize
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("controller")
	}

	return &Controller{
		hw:       hw,
		reporter: reporter,
		clock:    opts.Clock,
		cycle:    opts.Cycle,
		log:      opts.Logger,
		state:    NewState(),
		inbox:    make(chan string, opts.InboxSize),
	}
}

// Submit queues a command line for the next cycles. It never blocks; it
// returns false when the inbox is full and the line was dropped.
// Safe for concurrent use.
func (c *Controller) Submit(line string) bool {
	select {
	case c.inbox <- line:
		return true
	default:
		c.log.Warnw("command inbox full, dropping line", "line", line)
		return false
	}
}

// Doorbell returns the flag doorbell backends raise.
func (c *Controller) Doorbell() *Doorbell {
	return &c.bell
}

// State returns a copy of the current state. Only call it from the
// goroutine that runs the cycle.
func (c *Controller) State() State {
	return c.state
}

// Run emits the startup event and then runs Step until ctx is cancelled.
// A Step in progress always completes.
func (c *Controller) Run(ctx context.Context) error {
	c.emit(startedEvent())

	timer := time.NewTimer(c.cycle)
	defer timer.Stop()

	for {
		c.Step()

		timer.Reset(c.cycle)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Step runs one control cycle: at most one inbound command, the doorbell
// flag, visitor mode expiry, the automatic policy and the door status report.
func (c *Controller) Step() {
	select {
	case line := <-c.inbox:
		c.Dispatch(line)
	default:
	}

	if c.bell.Take() {
		c.emit(visitorDetectedEvent())
	}

	c.checkVisitorExpiry()
	c.runAutoControl()
	c.reportDoorStatus()
}

func (c *Controller) emit(evt Event) {
	c.log.Infow(evt.Message, "kind", evt.Kind.String(), "code", evt.Code)
	c.reporter.Report(evt)
}

type noopHardware struct{}

func (noopHardware) Open() error                 { return nil }
func (noopHardware) Close() error                { return nil }
func (noopHardware) DoorOpen()                   {}
func (noopHardware) DoorClosed()                 {}
func (noopHardware) AlarmArmed()                 {}
func (noopHardware) AlarmDisarmed()              {}
func (noopHardware) Pulse(d time.Duration) error { return nil }
func (noopHardware) Level() (int, error)         { return 0, nil }

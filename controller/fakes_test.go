package controller

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

var errHardware = errors.New("hardware fault")

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

type fakeDoor struct {
	opens  int
	closes int
	err    error
}

func (f *fakeDoor) Open() error {
	f.opens++
	return f.err
}

func (f *fakeDoor) Close() error {
	f.closes++
	return f.err
}

type fakeIndicator struct {
	calls []string
}

func (f *fakeIndicator) DoorOpen()      { f.calls = append(f.calls, "door_open") }
func (f *fakeIndicator) DoorClosed()    { f.calls = append(f.calls, "door_closed") }
func (f *fakeIndicator) AlarmArmed()    { f.calls = append(f.calls, "alarm_armed") }
func (f *fakeIndicator) AlarmDisarmed() { f.calls = append(f.calls, "alarm_disarmed") }

type fakeBuzzer struct {
	pulses []time.Duration
}

func (f *fakeBuzzer) Pulse(d time.Duration) error {
	f.pulses = append(f.pulses, d)
	return nil
}

type fakeLight struct {
	level int
	err   error
	reads int
}

func (f *fakeLight) Level() (int, error) {
	f.reads++
	return f.level, f.err
}

// rig is a controller wired to fakes and an event recorder.
type rig struct {
	ctrl   *Controller
	clock  *fakeClock
	door   *fakeDoor
	ind    *fakeIndicator
	buzzer *fakeBuzzer
	light  *fakeLight
	events []Event
}

func newRig(t *testing.T) *rig {
	t.Helper()

	r := &rig{
		clock:  &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		door:   &fakeDoor{},
		ind:    &fakeIndicator{},
		buzzer: &fakeBuzzer{},
		light:  &fakeLight{},
	}
	r.ctrl = New(Hardware{
		Door:      r.door,
		Indicator: r.ind,
		Buzzer:    r.buzzer,
		Light:     r.light,
	}, ReporterFunc(func(evt Event) {
		r.events = append(r.events, evt)
	}), Options{
		Clock:  r.clock,
		Logger: zap.NewNop().Sugar(),
	})
	return r
}

// command submits a line and runs the cycle that consumes it.
func (r *rig) command(line string) {
	r.ctrl.Submit(line)
	r.ctrl.Step()
}

func (r *rig) steps(n int) {
	for i := 0; i < n; i++ {
		r.ctrl.Step()
	}
}

func (r *rig) clear() { r.events = nil }

// codes returns the status codes emitted so far, in order.
func (r *rig) codes() []string {
	var out []string
	for _, evt := range r.events {
		if evt.Code != "" {
			out = append(out, evt.Code)
		}
	}
	return out
}

func (r *rig) count(kind EventKind) int {
	n := 0
	for _, evt := range r.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

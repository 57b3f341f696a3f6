package door

import (
	"time"

	"github.com/hjkoskel/govattu"
)

// stepDelay is the pause between two PWM steps of a sweep.
const stepDelay = 2 * time.Millisecond

// Servo implements Actuator using hardware PWM0 servo control.
type Servo struct {
	hw       govattu.Vattu
	pin      uint8
	openPos  int
	closePos int
	pos      int
	settle   time.Duration
}

// NewServo creates a new servo-based actuator and parks it in the closed position.
func NewServo(hw govattu.Vattu, pin uint8, openPos, closePos int, settle time.Duration) (*Servo, error) {
	hw.PinMode(pin, govattu.ALT5) // ALT5 for PWM0
	hw.PwmSetMode(true, true, false, false)
	hw.PwmSetClock(19)     // 50Hz
	hw.Pwm0SetRange(20000) // 1ms - 2ms pulse width

	s := &Servo{
		hw:       hw,
		pin:      pin,
		openPos:  openPos,
		closePos: closePos,
		pos:      closePos,
		settle:   settle,
	}
	s.hw.Pwm0Set(uint32(closePos))
	return s, nil
}

// Open implements Actuator.Open.
func (s *Servo) Open() error {
	s.moveTo(s.openPos)
	return nil
}

// Close implements Actuator.Close.
func (s *Servo) Close() error {
	s.moveTo(s.closePos)
	return nil
}

// Release implements Actuator.Release.
func (s *Servo) Release() error {
	return s.hw.Close()
}

// moveTo sweeps from the current pulse to target and then waits out
// whatever is left of the settle time.
func (s *Servo) moveTo(target int) {
	start := time.Now()
	sweep(s.pos, target, func(v int) {
		s.hw.Pwm0Set(uint32(v))
		time.Sleep(stepDelay)
	})
	s.pos = target

	if rest := s.settle - time.Since(start); rest > 0 {
		time.Sleep(rest)
	}
}

// sweep calls set for every value from from to to, both included.
func sweep(from, to int, set func(int)) {
	inc := 1
	if to < from {
		inc = -1
	}
	for i := from; i != to; i += inc {
		set(i)
	}
	set(to)
}

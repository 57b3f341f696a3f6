package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		want   Command
		wantOK bool
	}{
		{line: "", wantOK: false},
		{line: "   \t", wantOK: false},
		{line: "A", want: Command{Letter: 'A'}, wantOK: true},
		{line: "  G1\r\n", want: Command{Letter: 'G', Value: 1}, wantOK: true},
		{line: "F250", want: Command{Letter: 'F', Value: 250}, wantOK: true},
		{line: "F 250", want: Command{Letter: 'F', Value: 250}, wantOK: true},
		{line: "F-5", want: Command{Letter: 'F', Value: -5}, wantOK: true},
		{line: "F+7", want: Command{Letter: 'F', Value: 7}, wantOK: true},
		{line: "G12abc", want: Command{Letter: 'G', Value: 12}, wantOK: true},
		{line: "Gabc", want: Command{Letter: 'G'}, wantOK: true},
		{line: "G-", want: Command{Letter: 'G'}, wantOK: true},
		{line: "F99999999999999999999999", want: Command{Letter: 'F'}, wantOK: true},
		{line: "a1", want: Command{Letter: 'a', Value: 1}, wantOK: true},
	}

	for _, tt := range tests {
		got, ok := ParseCommand(tt.line)
		assert.Equal(t, tt.wantOK, ok, "line %q", tt.line)
		assert.Equal(t, tt.want, got, "line %q", tt.line)
	}
}

func TestNegativeBuzzerDurationIsClamped(t *testing.T) {
	r := newRig(t)

	r.command("F-5")

	assert.Len(t, r.buzzer.pulses, 1)
	assert.Zero(t, r.buzzer.pulses[0])
}

func TestBuzzerDurationIsCapped(t *testing.T) {
	r := newRig(t)

	r.command("F9000000000")
	r.command("F9999999999999")
	r.command("F32767")

	want := time.Duration(MaxBuzzerPulseMs) * time.Millisecond
	assert.Equal(t, []time.Duration{want, want, want}, r.buzzer.pulses)
}

func TestVisitorOffWhenInactive(t *testing.T) {
	r := newRig(t)

	r.command("H")

	assert.Equal(t, 1, r.count(EventInvalidCommand))
	assert.False(t, r.ctrl.State().Visitor.Active)
	assert.Zero(t, r.count(EventVisitorModeOff))
}

func TestCommandEcho(t *testing.T) {
	r := newRig(t)

	r.command("F 30")

	assert.Equal(t, EventCommandReceived, r.events[0].Kind)
	assert.Equal(t, "Command received: F 30", r.events[0].Message)
}

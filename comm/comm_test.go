package comm

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipePort reads from an io.Pipe and records writes.
type pipePort struct {
	r *io.PipeReader

	mu  sync.Mutex
	out bytes.Buffer
}

func (p *pipePort) Read(b []byte) (int, error) { return p.r.Read(b) }

func (p *pipePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}

func (p *pipePort) Close() error { return p.r.Close() }

func (p *pipePort) written() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.String()
}

func newPipePort() (*pipePort, *io.PipeWriter) {
	r, w := io.Pipe()
	return &pipePort{r: r}, w
}

func TestListenDeliversTrimmedLines(t *testing.T) {
	t.Parallel()

	port, w := newPipePort()
	ch := New(port, "\r\n")

	go func() {
		_, _ = io.WriteString(w, "F250\r\n\r\n  G1 \nE\n")
		_ = w.Close()
	}()

	var lines []string
	err := ch.Listen(func(line string) { lines = append(lines, line) })
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"F250", "G1", "E"}, lines)
}

func TestListenEndsOnClose(t *testing.T) {
	t.Parallel()

	port, _ := newPipePort()
	ch := New(port, "\n")

	done := make(chan error, 1)
	go func() { done <- ch.Listen(func(string) {}) }()

	require.NoError(t, ch.Close())
	assert.ErrorIs(t, <-done, ErrClosed)
	assert.ErrorIs(t, ch.WriteLine("late"), ErrClosed)
	assert.NoError(t, ch.Close())
}

func TestWriteEvent(t *testing.T) {
	t.Parallel()

	port, _ := newPipePort()
	ch := New(port, "\r\n")

	require.NoError(t, ch.WriteEvent("Door -> OPEN", "PA"))
	require.NoError(t, ch.WriteEvent("Automatic control: ENABLED", ""))
	assert.Equal(t, "Door -> OPEN\r\nPA\r\nAutomatic control: ENABLED\r\n", port.written())
}

func TestOpenUnknownType(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{Type: "smoke-signals"})
	assert.Error(t, err)
}

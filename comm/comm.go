// Package comm is the line-oriented command channel: command lines in,
// status lines out.
package comm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrClosed is returned by Channel methods after Close.
var ErrClosed = errors.New("command channel closed")

// DefaultBaud matches the firmware the status code consumers were written against.
const DefaultBaud = 9600

// Config holds command channel configuration.
type Config struct {
	Type   string `yaml:"type" env:"TYPE"`     // "serial" (default), "tarm", "stdio"
	Device string `yaml:"device" env:"DEVICE"` // e.g. "/dev/ttyACM0"
	Baud   int    `yaml:"baud" env:"BAUD"`     // 0 = DefaultBaud
}

// Channel wraps a port with line framing. Reads happen in Listen; writes
// may come from any goroutine.
type Channel struct {
	port io.ReadWriteCloser
	eol  string

	mu     sync.Mutex
	closed bool
}

// Open opens the channel described by cfg.
func Open(cfg Config) (*Channel, error) {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}

	switch cfg.Type {
	case "serial", "":
		port, err := OpenSerial(cfg.Device, cfg.Baud)
		if err != nil {
			return nil, err
		}
		return New(port, "\r\n"), nil
	case "tarm":
		port, err := OpenTarm(cfg.Device, cfg.Baud)
		if err != nil {
			return nil, err
		}
		return New(port, "\r\n"), nil
	case "stdio":
		return New(stdio{}, "\n"), nil
	default:
		return nil, fmt.Errorf("unknown command channel type %q", cfg.Type)
	}
}

// New wraps an already open port. eol terminates every written line.
func New(port io.ReadWriteCloser, eol string) *Channel {
	return &Channel{port: port, eol: eol}
}

// Listen reads lines until the port fails or is closed, passing each
// trimmed non-empty line to handle. It returns ErrClosed after Close.
func (c *Channel) Listen(handle func(line string)) error {
	scanner := bufio.NewScanner(c.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		handle(line)
	}

	if c.isClosed() {
		return ErrClosed
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command line: %w", err)
	}
	return io.EOF
}

// WriteLine writes one line.
func (c *Channel) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if _, err := io.WriteString(c.port, line+c.eol); err != nil {
		return fmt.Errorf("write status line: %w", err)
	}
	return nil
}

// WriteEvent writes the human readable line and then, when code is not
// empty, the status code on its own line.
func (c *Channel) WriteEvent(message, code string) error {
	if err := c.WriteLine(message); err != nil {
		return err
	}
	if code == "" {
		return nil
	}
	return c.WriteLine(code)
}

// Close closes the port, which also ends Listen.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.port.Close()
}

func (c *Channel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// stdio is a port on the process' standard streams, for bench use.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return nil }

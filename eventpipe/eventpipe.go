// Package eventpipe injects bench events through a named pipe:
//
//	echo "cmd F250" > /tmp/godoor-events
//	echo bell > /tmp/godoor-events
//	echo "light 600" > /tmp/godoor-events
package eventpipe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"godoor/logger"
)

// Config holds configuration for the event pipe.
type Config struct {
	Path string `yaml:"path"` // Path to named pipe (e.g., "/tmp/godoor-events")
}

// Type identifies a pipe event.
type Type int

const (
	EventCommand Type = iota + 1
	EventBell
	EventLight
)

// Event is one parsed pipe line.
type Event struct {
	Type  Type
	Line  string // EventCommand
	Level int    // EventLight
}

// Handlers receive parsed events. Nil handlers drop their events.
type Handlers struct {
	OnCommand func(line string)
	OnBell    func()
	OnLight   func(level int)
}

// EventPipe listens for events on a named pipe.
type EventPipe struct {
	path     string
	handlers Handlers
	log      *zap.SugaredLogger
	ctx      context.Context
	cancel   context.CancelFunc
	started  atomic.Bool
	done     chan struct{}
}

// closeTimeout bounds how long Close waits for Start to return.
const closeTimeout = time.Second

// New creates the named pipe. Returns nil if path is empty.
func New(cfg Config, handlers Handlers) (*EventPipe, error) {
	if cfg.Path == "" {
		return nil, nil
	}

	os.Remove(cfg.Path)
	if err := syscall.Mkfifo(cfg.Path, 0666); err != nil {
		return nil, fmt.Errorf("create named pipe %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &EventPipe{
		path:     cfg.Path,
		handlers: handlers,
		log:      logger.Named("eventpipe"),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Start begins listening for events on the pipe.
// This should be called as a goroutine.
func (ep *EventPipe) Start() {
	ep.started.Store(true)
	defer close(ep.done)
	ep.log.Infow("event pipe listening", "path", ep.path)

	for {
		select {
		case <-ep.ctx.Done():
			return
		default:
		}

		// Blocks until a writer connects.
		file, err := os.OpenFile(ep.path, os.O_RDONLY, 0)
		if err != nil {
			if ep.ctx.Err() != nil {
				return
			}
			ep.log.Warnw("event pipe open failed", "error", err)
			continue
		}

		ep.consume(file)
		file.Close()
	}
}

func (ep *EventPipe) consume(file *os.File) {
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if ep.ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		evt, err := parseLine(line)
		if err != nil {
			ep.log.Warnw("event pipe parse error", "line", line, "error", err)
			continue
		}
		ep.dispatch(evt)
	}
}

func (ep *EventPipe) dispatch(evt Event) {
	switch evt.Type {
	case EventCommand:
		if ep.handlers.OnCommand != nil {
			ep.handlers.OnCommand(evt.Line)
		}
	case EventBell:
		if ep.handlers.OnBell != nil {
			ep.handlers.OnBell()
		}
	case EventLight:
		if ep.handlers.OnLight != nil {
			ep.handlers.OnLight(evt.Level)
		}
	}
}

// Close stops the event pipe listener and removes the pipe.
func (ep *EventPipe) Close() error {
	ep.cancel()
	if ep.started.Load() {
		ep.unblock()
	}
	return os.Remove(ep.path)
}

// unblock opens the pipe for writing until Start has returned. Start is
// usually parked in open waiting for a writer, and only a writer releases it.
func (ep *EventPipe) unblock() {
	deadline := time.NewTimer(closeTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()

	for {
		if f, err := os.OpenFile(ep.path, os.O_WRONLY|syscall.O_NONBLOCK, 0); err == nil {
			f.Close()
		}
		select {
		case <-ep.done:
			return
		case <-deadline.C:
			ep.log.Warnw("event pipe listener did not stop", "path", ep.path)
			return
		case <-tick.C:
		}
	}
}

// parseLine parses a pipe line into an Event.
// Command format:
//
//	cmd <line>     - Command line, as received on the serial channel
//	bell           - Doorbell press
//	light <level>  - Light level for a manual light sensor
func parseLine(line string) (Event, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Event{}, fmt.Errorf("empty command")
	}

	switch strings.ToLower(parts[0]) {
	case "cmd", "command":
		if len(parts) < 2 {
			return Event{}, fmt.Errorf("cmd requires a command line")
		}
		rest := strings.TrimSpace(line[len(parts[0]):])
		return Event{Type: EventCommand, Line: rest}, nil

	case "bell", "doorbell":
		return Event{Type: EventBell}, nil

	case "light":
		if len(parts) < 2 {
			return Event{}, fmt.Errorf("light requires a level")
		}
		level, err := strconv.Atoi(parts[1])
		if err != nil {
			return Event{}, fmt.Errorf("invalid light level: %s", parts[1])
		}
		return Event{Type: EventLight, Level: level}, nil

	default:
		return Event{}, fmt.Errorf("unknown command: %s", parts[0])
	}
}

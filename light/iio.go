package light

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// IIO reads a Linux industrial I/O ADC channel through sysfs, e.g.
// /sys/bus/iio/devices/iio:device0/in_voltage0_raw.
type IIO struct {
	path   string
	maxRaw int
}

// NewIIO creates an IIO sensor. maxRaw is the full scale raw value used to
// rescale readings to 0..MaxLevel; 0 leaves readings unscaled.
func NewIIO(path string, maxRaw int) (*IIO, error) {
	if path == "" {
		return nil, fmt.Errorf("iio light sensor needs a path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat iio channel: %w", err)
	}
	return &IIO{path: path, maxRaw: maxRaw}, nil
}

// Level implements Sensor.Level.
func (s *IIO) Level() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("read iio channel: %w", err)
	}

	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse iio value %q: %w", strings.TrimSpace(string(data)), err)
	}

	if s.maxRaw > 0 {
		raw = raw * MaxLevel / s.maxRaw
	}
	return clamp(raw), nil
}

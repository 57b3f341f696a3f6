package light

import "sync/atomic"

// Manual is a Sensor fed from outside, e.g. by an MQTT subscription or the
// event pipe. It reports ErrNoReading until the first Set.
type Manual struct {
	level atomic.Int64
	set   atomic.Bool
}

// Set stores a new level, clamped to 0..MaxLevel. Safe for concurrent use.
func (m *Manual) Set(level int) {
	m.level.Store(int64(clamp(level)))
	m.set.Store(true)
}

// Level implements Sensor.Level.
func (m *Manual) Level() (int, error) {
	if !m.set.Load() {
		return 0, ErrNoReading
	}
	return int(m.level.Load()), nil
}

// Package status provides a thread-safe status tracker for the radio-clock
// daemon. It is designed to be read by HTTP handlers.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/radio-clock/internal/mode"
)

// Config contains daemon configuration for display.
type Config struct {
	StationsFile string
	Broker       string
	HTTPAddr     string
	LongPressMs  int64
	FrameMs      int64
	ScrollMs     int64
	UpdateMs     int64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Mode          mode.Mode
	Highlighted   mode.Mode
	Station       int
	StationCount  int
	Track         string
	Playing       bool
	AlarmEnabled  bool
	AlarmTime     string
	TimeText      string
	OffsetSeconds int
	FramesDrawn   int
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the radio state. Called from the run loop on every tick.
func (t *Tracker) Update(s Snapshot) {
	t.mu.Lock()
	s.StartTime = t.snap.StartTime
	s.Config = t.snap.Config
	s.MQTTConnected = t.snap.MQTTConnected
	t.snap = s
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

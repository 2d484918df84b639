package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/radio-clock/internal/mode"
)

func testConfig() Config {
	return Config{
		StationsFile: "/etc/radio-clock/stations",
		Broker:       "tcp://192.168.1.200:1883",
		HTTPAddr:     ":8080",
		LongPressMs:  800,
		FrameMs:      150,
		ScrollMs:     300,
		UpdateMs:     1000,
	}
}

func TestTrackerInitialSnapshot(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("config broker: got %s", snap.Config.Broker)
	}
	if snap.Mode != mode.Station {
		t.Errorf("initial mode: got %v, want Station", snap.Mode)
	}
	if snap.Now.IsZero() {
		t.Error("Now should be set by Snapshot()")
	}
}

func TestTrackerUpdate(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	tr.Update(Snapshot{
		Mode:         mode.Time,
		Highlighted:  mode.Time,
		Station:      3,
		StationCount: 10,
		Track:        "Artist - Song",
		Playing:      true,
		AlarmEnabled: true,
		AlarmTime:    " 7:30",
		TimeText:     "13:37",
		FramesDrawn:  42,
	})

	snap := tr.Snapshot()
	if snap.Mode != mode.Time {
		t.Errorf("mode: got %v, want Time", snap.Mode)
	}
	if snap.Station != 3 || snap.StationCount != 10 {
		t.Errorf("station: got %d/%d, want 3/10", snap.Station, snap.StationCount)
	}
	if !snap.Playing {
		t.Error("playing not recorded")
	}
	if snap.AlarmTime != " 7:30" {
		t.Errorf("alarm time: got %q", snap.AlarmTime)
	}
}

func TestTrackerUpdatePreservesStartAndConfig(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())
	tr.SetMQTTConnected(true)

	// An update snapshot built by the run loop carries no lifecycle fields.
	tr.Update(Snapshot{Mode: mode.Alarm, Station: 1})

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Error("update clobbered start time")
	}
	if snap.Config.HTTPAddr != ":8080" {
		t.Error("update clobbered config")
	}
	if !snap.MQTTConnected {
		t.Error("update clobbered MQTT connection state")
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected connected")
	}
	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected disconnected")
	}
}

func TestSnapshotUptime(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 3, 1, 12, 15, 30, 0, time.UTC),
	}
	if got := snap.Uptime(); got != 15*time.Minute+30*time.Second {
		t.Errorf("uptime: got %v", got)
	}
}

func TestFormatJSON(t *testing.T) {
	snap := Snapshot{
		Mode:          mode.Station,
		Highlighted:   mode.Station,
		Station:       2,
		StationCount:  5,
		Track:         "News",
		Playing:       true,
		AlarmEnabled:  true,
		AlarmTime:     " 6:30",
		TimeText:      "13:37",
		OffsetSeconds: 90,
		FramesDrawn:   7,
		StartTime:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Now:           time.Date(2026, 3, 1, 12, 10, 0, 0, time.UTC),
		MQTTConnected: true,
		Config:        testConfig(),
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := parsed.Status
	if s.Mode != "STATION" {
		t.Errorf("mode: got %s", s.Mode)
	}
	if s.Station != 2 || s.StationCount != 5 {
		t.Errorf("station: got %d/%d", s.Station, s.StationCount)
	}
	if !s.Alarm.Enabled || s.Alarm.Time != " 6:30" {
		t.Errorf("alarm: got %+v", s.Alarm)
	}
	if s.UptimeSeconds != 600 {
		t.Errorf("uptime_seconds: got %d, want 600", s.UptimeSeconds)
	}
	if s.StartTime != "2026-03-01T12:00:00Z" {
		t.Errorf("start_time: got %s", s.StartTime)
	}
	if !s.MQTT.Connected || s.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("mqtt: got %+v", s.MQTT)
	}
	if s.Config.LongPressMs != 800 {
		t.Errorf("config long_press_ms: got %d", s.Config.LongPressMs)
	}
	if s.Event != "" || s.Reason != "" {
		t.Error("web JSON should not carry event/reason")
	}
}

func TestFormatStatusEvent(t *testing.T) {
	snap := Snapshot{
		Mode:      mode.Station,
		StartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC),
		Config:    testConfig(),
	}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %s", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %s", parsed.Status.Reason)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	tr.Update(Snapshot{Station: 1})

	snap := tr.Snapshot()
	snap.Station = 99

	if tr.Snapshot().Station != 1 {
		t.Error("mutating a snapshot leaked into the tracker")
	}
}

package main

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/sweeney/radio-clock/internal/clock"
	"github.com/sweeney/radio-clock/internal/display"
	"github.com/sweeney/radio-clock/internal/mode"
	"github.com/sweeney/radio-clock/internal/mqtt"
	"github.com/sweeney/radio-clock/internal/player"
	"github.com/sweeney/radio-clock/internal/radio"
	"github.com/sweeney/radio-clock/internal/status"
	"github.com/sweeney/radio-clock/internal/ui"
)

func TestParseAlarm(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"7:00", 7 * 60, false},
		{"0:00", 0, false},
		{"23:59", 23*60 + 59, false},
		{" 7:30 ", 7*60 + 30, false},
		{"12:05", 12*60 + 5, false},
		{"24:00", 0, true},
		{"7:60", 0, true},
		{"7:5", 0, true}, // minutes must be two digits
		{"7", 0, true},
		{"", 0, true},
		{"seven:00", 0, true},
		{"-1:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAlarm(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAlarm(%q): expected error, got %d", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAlarm(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseAlarm(%q): got %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSignalName(t *testing.T) {
	tests := []struct {
		sig  os.Signal
		want string
	}{
		{syscall.SIGINT, "SIGINT"},
		{syscall.SIGTERM, "SIGTERM"},
		{syscall.SIGHUP, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := signalName(tt.sig); got != tt.want {
			t.Errorf("signalName(%v): got %q, want %q", tt.sig, got, tt.want)
		}
	}
}

// harness wires runLoop's collaborators to fakes.
type harness struct {
	ctrl    *radio.Controller
	clk     *clock.Clock
	pl      *player.FakePlayer
	st      *ui.State
	pub     *mqtt.FakePublisher
	tracker *status.Tracker
	now     func() time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	start := time.Date(2026, 3, 1, 13, 37, 0, 0, time.UTC)
	nowFn := func() time.Time { return start }

	pl := player.NewFakePlayer(5)
	clk := clock.New(nowFn)
	st := ui.New(display.NewFakeDevice(), ui.Config{}, nowFn)
	ctrl := radio.New(clk, st, pl, nowFn, nil)
	return &harness{
		ctrl:    ctrl,
		clk:     clk,
		pl:      pl,
		st:      st,
		pub:     mqtt.NewFakePublisher(),
		tracker: status.NewTracker(start, status.Config{Broker: "tcp://test:1883"}),
		now:     nowFn,
	}
}

// runRunLoop drives runLoop with nTicks ticks, then the given trigger
// (a signal or a fatal error), returning runLoop's error.
func runRunLoop(t *testing.T, h *harness, pub mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, nTicks int, sigTrig os.Signal, fatalTrig error) error {
	t.Helper()
	tick := make(chan time.Time)
	sig := make(chan os.Signal, 1)
	fatal := make(chan error, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runLoop(h.ctrl, h.clk, h.pl, h.st, pub, mqttStatus, h.tracker, h.now, tick, sig, fatal)
	}()

	for i := 0; i < nTicks; i++ {
		tick <- time.Time{}
	}
	if fatalTrig != nil {
		fatal <- fatalTrig
	} else {
		sig <- sigTrig
	}

	return <-errCh
}

func TestRunLoopShutdownSIGTERM(t *testing.T) {
	h := newHarness(t)

	err := runRunLoop(t, h, h.pub, h.pub, 2, syscall.SIGTERM, nil)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(h.pub.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(h.pub.SystemEvents))
	}
	se := h.pub.SystemEvents[0]
	if se.Event != "SHUTDOWN" {
		t.Errorf("expected SHUTDOWN, got %q", se.Event)
	}
	if se.Reason != "SIGTERM" {
		t.Errorf("expected reason SIGTERM, got %q", se.Reason)
	}
	if !se.Retained {
		t.Error("expected Retained=true for SHUTDOWN")
	}
	if se.RawPayload == nil {
		t.Error("expected SHUTDOWN to carry a full status snapshot")
	}
}

func TestRunLoopShutdownSIGINT(t *testing.T) {
	h := newHarness(t)

	err := runRunLoop(t, h, h.pub, h.pub, 0, syscall.SIGINT, nil)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(h.pub.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(h.pub.SystemEvents))
	}
	if h.pub.SystemEvents[0].Reason != "SIGINT" {
		t.Errorf("expected reason SIGINT, got %q", h.pub.SystemEvents[0].Reason)
	}
}

func TestRunLoopFatalDeviceError(t *testing.T) {
	h := newHarness(t)
	cause := errors.New("display: render failed")

	err := runRunLoop(t, h, h.pub, h.pub, 1, nil, cause)
	if err != cause {
		t.Fatalf("expected the device error back, got %v", err)
	}

	if len(h.pub.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(h.pub.SystemEvents))
	}
	se := h.pub.SystemEvents[0]
	if se.Event != "SHUTDOWN" || se.Reason != "DEVICE_ERROR" {
		t.Errorf("expected SHUTDOWN/DEVICE_ERROR, got %s/%s", se.Event, se.Reason)
	}
}

func TestRunLoopNilPublisher(t *testing.T) {
	h := newHarness(t)

	// No broker configured: shutdown must not publish or panic.
	err := runRunLoop(t, h, nil, nil, 2, syscall.SIGTERM, nil)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}
}

func TestRunLoopTickUpdatesTracker(t *testing.T) {
	h := newHarness(t)
	h.pl.Index = 3
	h.pl.Metadata = "Artist - Song"
	h.pub.Connected = true

	err := runRunLoop(t, h, h.pub, h.pub, 1, syscall.SIGTERM, nil)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	snap := h.tracker.Snapshot()
	if snap.Station != 3 {
		t.Errorf("station: got %d, want 3", snap.Station)
	}
	if snap.StationCount != 5 {
		t.Errorf("station count: got %d, want 5", snap.StationCount)
	}
	if snap.Track != "Artist - Song" {
		t.Errorf("track: got %q", snap.Track)
	}
	if !snap.MQTTConnected {
		t.Error("expected MQTT connected in tracker")
	}
}

func TestSnapshotFrom(t *testing.T) {
	h := newHarness(t)
	h.pl.Index = 2
	h.clk.SetAlarmMinutes(6*60 + 30)
	h.clk.SetOffsetSeconds(90)

	snap := snapshotFrom(h.ctrl, h.clk, h.pl, h.st)
	if snap.Mode != mode.Station {
		t.Errorf("mode: got %v, want Station", snap.Mode)
	}
	if snap.Station != 2 {
		t.Errorf("station: got %d, want 2", snap.Station)
	}
	if snap.AlarmTime != " 6:30" {
		t.Errorf("alarm time: got %q, want ' 6:30'", snap.AlarmTime)
	}
	if snap.OffsetSeconds != 90 {
		t.Errorf("offset: got %d, want 90", snap.OffsetSeconds)
	}
	if snap.TimeText != "13:38" {
		t.Errorf("time text: got %q, want 13:38 (13:37 + 90s)", snap.TimeText)
	}
	if snap.Playing {
		t.Error("expected not playing")
	}
}

// Package radio is the top-level mode state machine. It owns the clock,
// the UI state, and the two blink schedulers, and translates the four
// input events into state transitions according to the active mode.
//
// Every mutating entry point — input callbacks, blink and alarm timer
// callbacks, the periodic update tick — serializes through one mutex, so
// the player and the UI are never driven concurrently.
package radio

import (
	"sync"
	"time"

	"github.com/sweeney/radio-clock/internal/clock"
	"github.com/sweeney/radio-clock/internal/mode"
	"github.com/sweeney/radio-clock/internal/player"
	"github.com/sweeney/radio-clock/internal/ui"
)

// blankTime is shown during the off phase of the clock blink. The colon
// stays so the layout does not jump.
const blankTime = "  :  "

// defaultTrack is shown before any metadata arrives.
const defaultTrack = "Sound off"

// Controller multiplexes the rotary knob across the four operating modes.
type Controller struct {
	mu sync.Mutex

	mode        mode.Mode
	highlighted mode.Mode

	stationActive bool
	alarmActive   bool
	trackName     string

	clk *clock.Clock
	st  *ui.State
	pl  player.Player

	clockBlink *blinker
	colonBlink *blinker

	now     func() time.Time
	onEvent func(Event) // invoked outside the lock; may be nil
}

// New wires a controller to its collaborators. A nil now means time.Now;
// onEvent may be nil when telemetry is disabled.
func New(clk *clock.Clock, st *ui.State, pl player.Player, now func() time.Time, onEvent func(Event)) *Controller {
	if now == nil {
		now = time.Now
	}
	c := &Controller{
		mode:        mode.Station,
		highlighted: mode.Station,
		trackName:   defaultTrack,
		clk:         clk,
		st:          st,
		pl:          pl,
		now:         now,
		onEvent:     onEvent,
	}
	after := func(d time.Duration, f func()) timer {
		return time.AfterFunc(d, f)
	}
	c.clockBlink = newBlinker(&c.mu, after, ClockBlinkOn, ClockBlinkOff, c.applyClockBlink)
	c.colonBlink = newBlinker(&c.mu, after, ColonBlinkOn, ColonBlinkOff, c.applyColonBlink)

	clk.SetAlarmCallback(c.alarmFired)
	return c
}

// Start paints the initial UI and begins the idle colon blink.
func (c *Controller) Start() {
	c.mu.Lock()
	c.st.SetTrackName(c.trackName)
	c.st.SetTimeText(c.clk.TimeText(true))
	c.st.SetStationNumber(c.pl.StationIndex())
	c.st.SetSelectedMode(c.mode)
	c.st.SetAlarmActive(c.alarmActive)
	c.st.SetStationActive(c.stationActive)
	// Station mode is the startup mode; the colon blink doubles as the
	// once-a-second time refresh.
	c.colonBlink.enableLocked()
	c.st.Draw()
	c.mu.Unlock()
}

// Stop disables the blink timers. Pending timer callbacks that already
// fired find their blinker disabled and do nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.clockBlink.disableLocked()
	c.colonBlink.disableLocked()
	c.mu.Unlock()
}

// applyClockBlink shows the edited time value during the on phase and
// blanks the digits during the off phase. Runs under the controller lock.
func (c *Controller) applyClockBlink(faceOn bool) {
	if !faceOn {
		c.st.SetTimeText(blankTime)
		c.st.Draw()
		return
	}
	switch c.highlighted {
	case mode.Time:
		c.st.SetTimeText(c.clk.TimeText(true))
	case mode.Alarm:
		c.st.SetTimeText(c.clk.AlarmText())
	}
	c.st.Draw()
}

// applyColonBlink redraws the current time with the colon tracking the
// blink phase. Runs under the controller lock.
func (c *Controller) applyColonBlink(faceOn bool) {
	c.st.SetTimeText(c.clk.TimeText(faceOn))
	c.st.Draw()
}

// RotateLeft handles one counter-clockwise detent.
func (c *Controller) RotateLeft() {
	c.rotate(-1)
}

// RotateRight handles one clockwise detent.
func (c *Controller) RotateRight() {
	c.rotate(1)
}

func (c *Controller) rotate(dir int) {
	c.mu.Lock()
	var evs []Event
	switch c.mode {
	case mode.Select:
		if dir > 0 {
			c.highlighted = c.highlighted.Next()
		} else {
			c.highlighted = c.highlighted.Prev()
		}
		c.applyHighlightLocked()

	case mode.Station:
		c.pl.ScrubStation(dir)
		c.st.SetStationNumber(c.pl.StationIndex())
		evs = append(evs, c.eventLocked(EventStationChanged))

	case mode.Time:
		c.clk.AdjustOffset(dir)
		// Re-enabling resets the phase so the digits stay visible while
		// the user is actively scrubbing.
		c.clockBlink.enableLocked()
		c.st.SetTimeText(c.clk.TimeText(true))

	case mode.Alarm:
		c.clk.AdjustAlarm(dir)
		c.clockBlink.enableLocked()
		c.st.SetTimeText(c.clk.AlarmText())
	}
	c.st.Draw()
	c.mu.Unlock()
	c.emit(evs)
}

// applyHighlightLocked switches blink behavior and the displayed value to
// match the newly highlighted mode.
func (c *Controller) applyHighlightLocked() {
	switch c.highlighted {
	case mode.Time, mode.Alarm:
		c.clockBlink.enableLocked()
		c.colonBlink.disableLocked()
		if c.highlighted == mode.Alarm {
			c.st.SetTimeText(c.clk.AlarmText())
		} else {
			c.st.SetTimeText(c.clk.TimeText(true))
		}
	case mode.Station:
		c.clockBlink.disableLocked()
		c.colonBlink.enableLocked()
	}
	c.st.SetSelectedMode(c.highlighted)
}

// ShortPress toggles between mode-select and the highlighted mode.
func (c *Controller) ShortPress() {
	c.mu.Lock()
	if c.mode == mode.Select {
		c.mode = c.highlighted
		c.st.SetHighlightSelector(false)
	} else {
		c.highlighted = c.mode
		c.mode = mode.Select
		c.st.SetHighlightSelector(true)
	}
	c.st.Draw()
	c.mu.Unlock()
}

// LongPress dispatches on the highlighted mode regardless of the active
// mode: toggle playback, toggle the alarm, or re-sync the clock.
func (c *Controller) LongPress() {
	c.mu.Lock()
	var evs []Event
	switch c.highlighted {
	case mode.Station:
		evs = append(evs, c.togglePlaybackLocked())
	case mode.Alarm:
		evs = append(evs, c.toggleAlarmLocked())
	case mode.Time:
		c.clk.SetOffsetToZero()
		c.st.SetTimeText(c.clk.TimeText(true))
	}
	c.st.Draw()
	c.mu.Unlock()
	c.emit(evs)
}

func (c *Controller) togglePlaybackLocked() Event {
	c.stationActive = !c.stationActive
	c.st.SetStationActive(c.stationActive)
	if c.stationActive {
		c.pl.Play()
		return c.eventLocked(EventPlaybackOn)
	}
	c.pl.Stop()
	return c.eventLocked(EventPlaybackOff)
}

func (c *Controller) toggleAlarmLocked() Event {
	c.alarmActive = !c.alarmActive
	c.st.SetAlarmActive(c.alarmActive)
	c.clk.SetAlarmEnabled(c.alarmActive)
	if c.alarmActive {
		return c.eventLocked(EventAlarmSet)
	}
	return c.eventLocked(EventAlarmCleared)
}

// alarmFired runs when the daily alarm goes off: start playback, exactly
// as a user long-press on station would.
func (c *Controller) alarmFired() {
	c.mu.Lock()
	evs := []Event{c.eventLocked(EventAlarmFired)}
	if !c.stationActive {
		c.stationActive = true
		c.st.SetStationActive(true)
		c.pl.Play()
		evs = append(evs, c.eventLocked(EventPlaybackOn))
	}
	c.st.Draw()
	c.mu.Unlock()
	c.emit(evs)
}

// Update is the periodic tick from the run loop: poll track metadata and
// keep the displayed time fresh.
func (c *Controller) Update() {
	c.mu.Lock()
	var evs []Event
	track := c.pl.TrackMetadata()
	if track == player.UnknownMetadata {
		track = defaultTrack
	}
	if track != c.trackName {
		c.trackName = track
		c.st.SetTrackName(track)
		evs = append(evs, c.eventLocked(EventTrackChanged))
	}
	// Refresh the edited value, but never during the blink's off phase:
	// the tick must not fight the blank.
	switch c.mode {
	case mode.Time:
		if c.clockBlink.faceOn {
			c.st.SetTimeText(c.clk.TimeText(true))
		}
	case mode.Alarm:
		if c.clockBlink.faceOn {
			c.st.SetTimeText(c.clk.AlarmText())
		}
	}
	c.st.Draw()
	c.mu.Unlock()
	c.emit(evs)
}

// eventLocked snapshots current state into an event.
func (c *Controller) eventLocked(t EventType) Event {
	return Event{
		Timestamp: c.now(),
		Type:      t,
		Station:   c.pl.StationIndex(),
		Track:     c.trackName,
		AlarmTime: c.clk.AlarmText(),
	}
}

// emit delivers events outside the lock so a slow telemetry sink never
// stalls input handling.
func (c *Controller) emit(evs []Event) {
	if c.onEvent == nil {
		return
	}
	for _, e := range evs {
		c.onEvent(e)
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() mode.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// HighlightedMode returns the mode under the selection cursor.
func (c *Controller) HighlightedMode() mode.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlighted
}

// StationActive reports whether playback is on.
func (c *Controller) StationActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stationActive
}

// AlarmActive reports whether the alarm is armed.
func (c *Controller) AlarmActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarmActive
}

// TrackName returns the last polled track metadata.
func (c *Controller) TrackName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trackName
}

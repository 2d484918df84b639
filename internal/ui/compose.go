package ui

import (
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"github.com/sweeney/radio-clock/internal/display"
	"github.com/sweeney/radio-clock/internal/mode"
)

// Panel layout. Coordinates are pre-rotation; the device flips the frame
// for the upside-down panel mount.
const (
	timeX, timeBaseline        = 5, 28
	stationX, bottomBaseline   = 5, 52
	trackX                     = 31
	separatorX                 = 27
	separatorTop, separatorBot = 42, 58
	dotX                       = 123
	dotRadius                  = 3
	selectorX                  = 115
)

// dotY maps a highlightable mode to its indicator dot center.
func dotY(m mode.Mode) int16 {
	switch m {
	case mode.Station:
		return 13
	case mode.Time:
		return 28
	default: // mode.Alarm
		return 43
	}
}

var (
	timeFont  = &freemono.Bold12pt7b
	smallFont = &tinyfont.Org01
)

// composeLocked redraws the frame from current state. Caller holds s.mu.
func (s *State) composeLocked() {
	f := s.frame
	f.Clear()

	tinyfont.WriteLine(f, timeFont, timeX, timeBaseline, s.timeText, display.On)
	tinyfont.WriteLine(f, smallFont, stationX, bottomBaseline, s.stationText, display.On)

	tinydraw.Line(f, separatorX, separatorTop, separatorX, separatorBot, display.On)

	track := scrollWindow(s.trackText, s.trackStart, s.now(), s.cfg.MaxVisibleChars, s.cfg.ScrollSpeed)
	tinyfont.WriteLine(f, smallFont, trackX, bottomBaseline, track, display.On)

	s.drawModeDotLocked(f, mode.Station, s.stationOn)
	s.drawModeDotLocked(f, mode.Time, false)
	s.drawModeDotLocked(f, mode.Alarm, s.alarmOn)

	s.drawSelectorLocked(f)
}

// drawModeDotLocked draws one mode indicator: filled while its function is
// active, outline otherwise.
func (s *State) drawModeDotLocked(f *display.Frame, m mode.Mode, filled bool) {
	y := dotY(m)
	if filled {
		tinydraw.FilledCircle(f, dotX, y, dotRadius, display.On)
	} else {
		tinydraw.Circle(f, dotX, y, dotRadius, display.On)
	}
}

// drawSelectorLocked draws the tick beside the selected mode; it thickens
// into a box edge while the highlight selector is active.
func (s *State) drawSelectorLocked(f *display.Frame) {
	if s.selected == mode.Select {
		return
	}
	y := dotY(s.selected)
	tinydraw.Line(f, selectorX, y-1, selectorX, y+1, display.On)
	if s.highlight {
		tinydraw.Line(f, selectorX-1, y-1, selectorX-1, y+1, display.On)
		tinydraw.Line(f, selectorX+1, y-1, selectorX+1, y+1, display.On)
	}
}

// Package ui holds all display-affecting state, the track marquee, and the
// frame-rate-limited redraw gate. Setters mark a dirty flag only on real
// change; a frame goes to the panel only when something actually changed
// and the minimum frame interval has elapsed.
package ui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sweeney/radio-clock/internal/display"
	"github.com/sweeney/radio-clock/internal/mode"
)

// Defaults for the redraw gate and the track marquee.
const (
	DefaultFrameMinInterval = 150 * time.Millisecond
	DefaultScrollSpeed      = 300 * time.Millisecond
	DefaultMaxVisibleChars  = 13
)

// timer is the cancellable handle produced by the timer factory.
// *time.Timer satisfies it.
type timer interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) timer

// Config tunes the redraw gate and marquee. Zero values select defaults.
type Config struct {
	FrameMinInterval time.Duration
	ScrollSpeed      time.Duration
	MaxVisibleChars  int
}

func (c Config) withDefaults() Config {
	if c.FrameMinInterval <= 0 {
		c.FrameMinInterval = DefaultFrameMinInterval
	}
	if c.ScrollSpeed <= 0 {
		c.ScrollSpeed = DefaultScrollSpeed
	}
	if c.MaxVisibleChars <= 0 {
		c.MaxVisibleChars = DefaultMaxVisibleChars
	}
	return c
}

// State is the single owner of everything the panel shows. It is safe for
// concurrent use; timer callbacks and controller calls serialize on one
// mutex.
type State struct {
	mu sync.Mutex

	timeText    string
	stationText string
	trackText   string
	trackStart  time.Time
	selected    mode.Mode
	highlight   bool
	alarmOn     bool
	stationOn   bool
	dirty       bool

	dev      display.Device
	frame    *display.Frame
	lastDraw time.Time

	pendingDraw     timer
	pendingDeadline time.Time
	scrollTimer     timer

	framesRendered int

	cfg     Config
	now     func() time.Time
	after   afterFunc
	onError func(error)
}

// New creates a State that renders to dev. A nil now means time.Now.
func New(dev display.Device, cfg Config, now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	s := &State{
		dev:   dev,
		frame: display.NewFrame(),
		cfg:   cfg.withDefaults(),
		now:   now,
		after: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
		onError: func(err error) {
			log.Printf("ui: render: %v", err)
		},
	}
	// First draw should not be throttled.
	s.lastDraw = now().Add(-s.cfg.FrameMinInterval)
	return s
}

// SetErrorHandler replaces the render-failure handler. A failing panel is a
// fatal device condition, so main routes this into shutdown.
func (s *State) SetErrorHandler(fn func(error)) {
	s.mu.Lock()
	s.onError = fn
	s.mu.Unlock()
}

// SetTimeText updates the large time readout.
func (s *State) SetTimeText(text string) {
	s.mu.Lock()
	if s.timeText != text {
		s.timeText = text
		s.dirty = true
	}
	s.mu.Unlock()
}

// SetStationNumber updates the station readout, zero-padded to three
// digits.
func (s *State) SetStationNumber(n int) {
	padded := fmt.Sprintf("%03d", n)
	s.mu.Lock()
	if s.stationText != padded {
		s.stationText = padded
		s.dirty = true
	}
	s.mu.Unlock()
}

// SetTrackName updates the marquee text. The scroll anchor resets only on
// a real change, so repeated metadata polls reporting the same string do
// not disturb the scroll position.
func (s *State) SetTrackName(name string) {
	s.mu.Lock()
	if s.trackText == name {
		s.mu.Unlock()
		return
	}
	s.trackText = name
	s.trackStart = s.now()
	s.dirty = true
	s.rescheduleScrollLocked()
	s.mu.Unlock()
}

// SetSelectedMode moves the mode indicator.
func (s *State) SetSelectedMode(m mode.Mode) {
	s.mu.Lock()
	if s.selected != m {
		s.selected = m
		s.dirty = true
	}
	s.mu.Unlock()
}

// SetHighlightSelector toggles the selection box shown while in
// mode-select.
func (s *State) SetHighlightSelector(on bool) {
	s.mu.Lock()
	if s.highlight != on {
		s.highlight = on
		s.dirty = true
	}
	s.mu.Unlock()
}

// SetAlarmActive updates the alarm indicator dot.
func (s *State) SetAlarmActive(on bool) {
	s.mu.Lock()
	if s.alarmOn != on {
		s.alarmOn = on
		s.dirty = true
	}
	s.mu.Unlock()
}

// SetStationActive updates the playback indicator dot.
func (s *State) SetStationActive(on bool) {
	s.mu.Lock()
	if s.stationOn != on {
		s.stationOn = on
		s.dirty = true
	}
	s.mu.Unlock()
}

// TimeText returns the current time readout.
func (s *State) TimeText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeText
}

// StationText returns the padded station readout.
func (s *State) StationText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stationText
}

// TrackText returns the full (unscrolled) marquee text.
func (s *State) TrackText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackText
}

// SelectedMode returns the mode the indicator points at.
func (s *State) SelectedMode() mode.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// HighlightSelector reports whether the selection box is shown.
func (s *State) HighlightSelector() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlight
}

// Dirty reports whether a visible change is waiting for a frame.
func (s *State) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// FramesRendered returns the number of frames submitted to the panel.
func (s *State) FramesRendered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.framesRendered
}

// Draw submits a frame if anything changed and the frame interval allows
// it. When throttled, a one-shot timer retries at the gate deadline, so a
// dirty state is never silently dropped.
func (s *State) Draw() {
	s.mu.Lock()
	s.drawLocked()
	s.mu.Unlock()
}

func (s *State) drawLocked() {
	if !s.dirty {
		return
	}
	now := s.now()
	elapsed := now.Sub(s.lastDraw)
	if elapsed < s.cfg.FrameMinInterval {
		// Too soon. Re-arm against the deadline fixed by the previous
		// frame; later changes never push it further out.
		deadline := s.lastDraw.Add(s.cfg.FrameMinInterval)
		if s.pendingDraw != nil {
			s.pendingDraw.Stop()
		}
		s.pendingDeadline = deadline
		s.pendingDraw = s.after(deadline.Sub(now), s.pendingFire)
		return
	}

	if s.pendingDraw != nil {
		s.pendingDraw.Stop()
		s.pendingDraw = nil
	}
	s.composeLocked()
	if err := s.dev.Render(s.frame); err != nil {
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.dirty = false
	s.lastDraw = now
	s.framesRendered++
}

func (s *State) pendingFire() {
	s.mu.Lock()
	s.pendingDraw = nil
	s.drawLocked()
	s.mu.Unlock()
}

// rescheduleScrollLocked keeps a repeating tick alive while the track
// overflows the visible window, advancing the marquee.
func (s *State) rescheduleScrollLocked() {
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
		s.scrollTimer = nil
	}
	if len([]rune(s.trackText)) <= s.cfg.MaxVisibleChars {
		return
	}
	s.scrollTimer = s.after(s.cfg.ScrollSpeed, s.scrollFire)
}

func (s *State) scrollFire() {
	s.mu.Lock()
	s.scrollTimer = nil
	if len([]rune(s.trackText)) > s.cfg.MaxVisibleChars {
		s.dirty = true
		s.drawLocked()
		s.scrollTimer = s.after(s.cfg.ScrollSpeed, s.scrollFire)
	}
	s.mu.Unlock()
}

// Stop cancels the pending redraw and scroll timers.
func (s *State) Stop() {
	s.mu.Lock()
	if s.pendingDraw != nil {
		s.pendingDraw.Stop()
		s.pendingDraw = nil
	}
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
		s.scrollTimer = nil
	}
	s.mu.Unlock()
}

// Package clock keeps the user-adjustable time-of-day and the daily alarm.
// The displayed time is system time plus a signed offset, so "setting the
// clock" never touches the system clock. The alarm is a minutes-from-midnight
// value with a recurring one-shot timer behind it.
package clock

import (
	"fmt"
	"sync"
	"time"
)

const (
	// MinutesPerDay is the alarm wraparound modulus.
	MinutesPerDay = 24 * 60
	// SecondsPerDay is the offset wraparound modulus.
	SecondsPerDay = MinutesPerDay * 60
)

// timer is the cancellable handle produced by the timer factory.
// *time.Timer satisfies it.
type timer interface {
	Stop() bool
}

// afterFunc creates a one-shot timer. Tests substitute a fake.
type afterFunc func(d time.Duration, f func()) timer

// Clock tracks the offset and alarm state behind a mutex. The alarm timer
// callback runs on an arbitrary timer goroutine; the registered alarm
// callback is invoked outside the clock's lock.
type Clock struct {
	mu            sync.Mutex
	offsetSeconds int
	alarmMinutes  int
	alarmEnabled  bool
	alarmTimer    timer

	onAlarm func()

	now   func() time.Time
	after afterFunc
}

// New creates a Clock reading time from now (nil means time.Now).
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now: now,
		after: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}
}

// SetAlarmCallback registers the function invoked when the alarm fires.
// Must be called before the alarm is enabled.
func (c *Clock) SetAlarmCallback(fn func()) {
	c.mu.Lock()
	c.onAlarm = fn
	c.mu.Unlock()
}

// SetOffsetToZero re-syncs the displayed time to true system time.
func (c *Clock) SetOffsetToZero() {
	c.mu.Lock()
	c.offsetSeconds = 0
	c.mu.Unlock()
}

// SetOffsetSeconds sets the offset, normalized into [0, SecondsPerDay).
// Negative values wrap forward.
func (c *Clock) SetOffsetSeconds(s int) {
	c.mu.Lock()
	c.offsetSeconds = mod(s, SecondsPerDay)
	c.mu.Unlock()
}

// AdjustOffset shifts the offset by delta seconds with wraparound.
func (c *Clock) AdjustOffset(delta int) {
	c.mu.Lock()
	c.offsetSeconds = mod(c.offsetSeconds+delta, SecondsPerDay)
	c.mu.Unlock()
}

// OffsetSeconds returns the current offset.
func (c *Clock) OffsetSeconds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offsetSeconds
}

// SetAlarmMinutes sets the alarm time-of-day, normalized into
// [0, MinutesPerDay). If the alarm is enabled the timer is re-armed so it
// always targets the next future occurrence of the new time.
func (c *Clock) SetAlarmMinutes(m int) {
	c.mu.Lock()
	c.alarmMinutes = mod(m, MinutesPerDay)
	if c.alarmEnabled {
		c.armLocked()
	}
	c.mu.Unlock()
}

// AdjustAlarm shifts the alarm time by delta minutes with wraparound.
func (c *Clock) AdjustAlarm(delta int) {
	c.SetAlarmMinutes(c.AlarmMinutes() + delta)
}

// AlarmMinutes returns the alarm time-of-day in minutes from midnight.
func (c *Clock) AlarmMinutes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarmMinutes
}

// SetAlarmEnabled arms or cancels the alarm timer. Disabling is idempotent;
// no callback fires while disabled.
func (c *Clock) SetAlarmEnabled(enabled bool) {
	c.mu.Lock()
	c.alarmEnabled = enabled
	if enabled {
		c.armLocked()
	} else {
		c.cancelLocked()
	}
	c.mu.Unlock()
}

// AlarmEnabled reports whether the alarm is armed.
func (c *Clock) AlarmEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarmEnabled
}

// armLocked arms the timer for the next occurrence of alarmMinutes.
// Any prior timer is cancelled first to avoid duplicate firings.
func (c *Clock) armLocked() {
	c.cancelLocked()
	d := untilAlarm(c.now(), c.alarmMinutes)
	c.alarmTimer = c.after(d, c.fire)
}

func (c *Clock) cancelLocked() {
	if c.alarmTimer != nil {
		c.alarmTimer.Stop()
		c.alarmTimer = nil
	}
}

// fire re-arms for the next day, then invokes the callback outside the lock.
func (c *Clock) fire() {
	c.mu.Lock()
	if !c.alarmEnabled {
		// Cancelled after the timer fired but before we got the lock.
		c.mu.Unlock()
		return
	}
	c.armLocked()
	fn := c.onAlarm
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// untilAlarm computes the duration from now to the next occurrence of the
// alarm time-of-day. A non-positive raw difference rolls to the next day so
// the alarm is always in the future.
func untilAlarm(now time.Time, alarmMinutes int) time.Duration {
	delta := alarmMinutes*60 - secondsThroughDay(now)
	if delta <= 0 {
		delta += SecondsPerDay
	}
	return time.Duration(delta) * time.Second
}

// secondsThroughDay returns whole seconds elapsed since local midnight.
func secondsThroughDay(t time.Time) int {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return int(t.Sub(midnight) / time.Second)
}

// TimeText returns the offset-adjusted time as "H:MM". A leading zero hour
// is replaced with a space to keep the fixed-width layout stable. When
// showColon is false the colon is blanked (colon-blink off phase).
func (c *Clock) TimeText(showColon bool) string {
	c.mu.Lock()
	offset := c.offsetSeconds
	c.mu.Unlock()

	secs := mod(secondsThroughDay(c.now())+offset, SecondsPerDay)
	return formatHM(secs/3600, secs/60%60, showColon)
}

// AlarmText returns the alarm time as "H:MM".
func (c *Clock) AlarmText() string {
	c.mu.Lock()
	m := c.alarmMinutes
	c.mu.Unlock()
	return formatHM(m/60, m%60, true)
}

func formatHM(h, m int, showColon bool) string {
	sep := ":"
	if !showColon {
		sep = " "
	}
	// %2d pads a single-digit hour with a space, matching the panel layout.
	return fmt.Sprintf("%2d%s%02d", h, sep, m)
}

// mod is a true modulo: the result is always in [0, m).
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

package radio

import (
	"sync"
	"time"
)

// Blink duty cycles. The clock blink marks live editing of a time value;
// the colon blink is the idle heartbeat in station mode.
const (
	ClockBlinkOn  = 500 * time.Millisecond
	ClockBlinkOff = 500 * time.Millisecond
	ColonBlinkOn  = 1000 * time.Millisecond
	ColonBlinkOff = 1000 * time.Millisecond
)

// timer is the cancellable handle produced by the timer factory.
type timer interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) timer

// blinker is one periodic face-on/face-off toggle. A live timer exists iff
// enabled. The apply function runs under the owning controller's lock; the
// timer callback takes that lock before stepping.
type blinker struct {
	onDur  time.Duration
	offDur time.Duration

	enabled bool
	faceOn  bool
	handle  timer

	mu    *sync.Mutex // the controller's lock
	after afterFunc
	apply func(faceOn bool)
}

func newBlinker(mu *sync.Mutex, after afterFunc, onDur, offDur time.Duration, apply func(bool)) *blinker {
	return &blinker{
		onDur:  onDur,
		offDur: offDur,
		mu:     mu,
		after:  after,
		apply:  apply,
	}
}

// enableLocked starts (or restarts) the blink with the face shown first.
// Caller holds the controller lock.
func (b *blinker) enableLocked() {
	b.enabled = true
	// Start from off so the first step shows the face immediately.
	b.faceOn = false
	b.stepLocked()
}

// disableLocked stops the blink. Idempotent.
func (b *blinker) disableLocked() {
	b.enabled = false
	b.cancelLocked()
}

func (b *blinker) cancelLocked() {
	if b.handle != nil {
		b.handle.Stop()
		b.handle = nil
	}
}

// stepLocked flips the phase, applies it, and arms the next flip.
func (b *blinker) stepLocked() {
	b.cancelLocked()
	if !b.enabled {
		return
	}
	b.faceOn = !b.faceOn
	b.apply(b.faceOn)
	d := b.offDur
	if b.faceOn {
		d = b.onDur
	}
	b.handle = b.after(d, b.fire)
}

// fire runs on the timer goroutine and re-enters through the controller
// lock. A step scheduled before a disable finds enabled false and stops.
func (b *blinker) fire() {
	b.mu.Lock()
	b.stepLocked()
	b.mu.Unlock()
}

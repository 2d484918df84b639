// Package input turns raw rotary-encoder edge events into the four
// application events: rotate left, rotate right, short press, long press.
// The real implementation reads the encoder through the Linux GPIO
// character device. The fake implementation feeds scripted events.
package input

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultLongPressThreshold separates short from long presses.
const DefaultLongPressThreshold = 800 * time.Millisecond

// ErrSourceClosed is returned by Classifier.Run when an input stream ends,
// which means the underlying device has gone away. There is no reconnection
// logic; the caller treats this as fatal.
var ErrSourceClosed = errors.New("input: source closed")

// Source delivers raw events from the two independent input devices.
type Source interface {
	// Rotations delivers one signed unit per encoder detent:
	// +1 clockwise, -1 counter-clockwise.
	Rotations() <-chan int

	// Buttons delivers edge transitions: true on press, false on release.
	Buttons() <-chan bool

	// Close releases the input devices.
	Close() error
}

// Callbacks are the four application event handlers. All four must be set
// before a Classifier can be constructed, so a half-wired classifier can
// never run.
type Callbacks struct {
	RotateLeft  func()
	RotateRight func()
	ShortPress  func()
	LongPress   func()
}

func (cb Callbacks) validate() error {
	if cb.RotateLeft == nil {
		return errors.New("input: RotateLeft callback not set")
	}
	if cb.RotateRight == nil {
		return errors.New("input: RotateRight callback not set")
	}
	if cb.ShortPress == nil {
		return errors.New("input: ShortPress callback not set")
	}
	if cb.LongPress == nil {
		return errors.New("input: LongPress callback not set")
	}
	return nil
}

// Classifier consumes a Source and invokes callbacks. Both streams and the
// long-press timer are serialized through a single select loop, so callbacks
// never run concurrently with each other.
type Classifier struct {
	src       Source
	cb        Callbacks
	threshold time.Duration
	now       func() time.Time
}

// NewClassifier creates a classifier. It fails if any callback is missing.
// A non-positive threshold selects DefaultLongPressThreshold.
func NewClassifier(src Source, cb Callbacks, threshold time.Duration) (*Classifier, error) {
	if err := cb.validate(); err != nil {
		return nil, err
	}
	if threshold <= 0 {
		threshold = DefaultLongPressThreshold
	}
	return &Classifier{
		src:       src,
		cb:        cb,
		threshold: threshold,
		now:       time.Now,
	}, nil
}

// Run processes events until the context is cancelled or a stream closes.
// Rotation units produce exactly one callback each, in arrival order, with
// no coalescing. The press state machine races button-up against the
// long-press timer; whichever arrives first decides, and the loser is a
// no-op.
func (c *Classifier) Run(ctx context.Context) error {
	var (
		pressed    bool
		pressStart time.Time
		longTimer  *time.Timer
		longC      <-chan time.Time
	)

	stopLong := func() {
		if longTimer != nil {
			longTimer.Stop()
			longTimer = nil
			longC = nil
		}
	}
	defer stopLong()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case unit, ok := <-c.src.Rotations():
			if !ok {
				return fmt.Errorf("rotation stream: %w", ErrSourceClosed)
			}
			switch {
			case unit > 0:
				c.cb.RotateRight()
			case unit < 0:
				c.cb.RotateLeft()
			}

		case down, ok := <-c.src.Buttons():
			if !ok {
				return fmt.Errorf("button stream: %w", ErrSourceClosed)
			}
			if down {
				if pressed {
					// Key repeat from the device; the press is already
					// being tracked.
					continue
				}
				pressed = true
				pressStart = c.now()
				stopLong()
				longTimer = time.NewTimer(c.threshold)
				longC = longTimer.C
			} else {
				if !pressed {
					// Release after the long-press timer already decided.
					continue
				}
				pressed = false
				stopLong()
				if c.now().Sub(pressStart) < c.threshold {
					c.cb.ShortPress()
				}
			}

		case <-longC:
			longTimer = nil
			longC = nil
			if pressed {
				// Fire at the threshold, without waiting for release.
				pressed = false
				c.cb.LongPress()
			}
		}
	}
}

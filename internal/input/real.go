//go:build linux

package input

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Pin definitions (BCM numbering) and chip for the rotary encoder.
const (
	DefaultChip      = "gpiochip0"
	DefaultPinA      = 17 // encoder phase A
	DefaultPinB      = 27 // encoder phase B
	DefaultPinButton = 22 // encoder push switch
)

// buttonDebounce filters switch bounce at the kernel level.
const buttonDebounce = 5 * time.Millisecond

// qdecTable maps (previous AB state << 2 | current AB state) to a partial
// step. A full detent accumulates +4 or -4.
var qdecTable = [16]int{
	0, -1, 1, 0,
	1, 0, 0, -1,
	-1, 0, 0, 1,
	0, 1, -1, 0,
}

// RealSource reads the encoder and its push button from the Linux GPIO
// character device, decoding the quadrature signal into signed detents.
type RealSource struct {
	lineA   *gpiocdev.Line
	lineB   *gpiocdev.Line
	lineBtn *gpiocdev.Line

	rotations chan int
	buttons   chan bool

	pinA int

	mu     sync.Mutex
	levelA int
	levelB int
	prev   int // previous AB state, 2 bits
	accum  int // partial detent accumulator
}

// NewRealSource requests the three GPIO lines with edge detection. The
// encoder lines use pull-ups (common modules switch to ground), so a low
// level reads as active.
func NewRealSource(chip string, pinA, pinB, pinButton int) (*RealSource, error) {
	s := &RealSource{
		// Rotation bursts are queued rather than dropped; a fast spin
		// produces a backlog, never a lost detent.
		rotations: make(chan int, 64),
		buttons:   make(chan bool, 16),
		pinA:      pinA,
	}

	lineA, err := gpiocdev.RequestLine(chip, pinA,
		gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(s.handleRotation))
	if err != nil {
		return nil, fmt.Errorf("request encoder pin A %d: %w", pinA, err)
	}
	s.lineA = lineA

	lineB, err := gpiocdev.RequestLine(chip, pinB,
		gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(s.handleRotation))
	if err != nil {
		lineA.Close()
		return nil, fmt.Errorf("request encoder pin B %d: %w", pinB, err)
	}
	s.lineB = lineB

	lineBtn, err := gpiocdev.RequestLine(chip, pinButton,
		gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.WithBothEdges,
		gpiocdev.WithDebounce(buttonDebounce),
		gpiocdev.WithEventHandler(s.handleButton))
	if err != nil {
		lineA.Close()
		lineB.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pinButton, err)
	}
	s.lineBtn = lineBtn

	// Seed the decoder with the resting line levels.
	a, err := lineA.Value()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("read encoder pin A: %w", err)
	}
	b, err := lineB.Value()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("read encoder pin B: %w", err)
	}
	s.levelA = a
	s.levelB = b
	s.prev = a<<1 | b

	return s, nil
}

// handleRotation runs on the gpiocdev event goroutine. It updates the
// quadrature state and emits one signed unit per completed detent.
func (s *RealSource) handleRotation(evt gpiocdev.LineEvent) {
	level := 0
	if evt.Type == gpiocdev.LineEventRisingEdge {
		level = 1
	}

	s.mu.Lock()
	if evt.Offset == s.pinA {
		s.levelA = level
	} else {
		s.levelB = level
	}
	state := s.levelA<<1 | s.levelB
	s.accum += qdecTable[s.prev<<2|state]
	s.prev = state

	var unit int
	if s.accum >= 4 {
		unit = 1
		s.accum = 0
	} else if s.accum <= -4 {
		unit = -1
		s.accum = 0
	}
	s.mu.Unlock()

	if unit != 0 {
		s.rotations <- unit
	}
}

// handleButton runs on the gpiocdev event goroutine. With a pull-up, a
// falling edge means the switch closed (pressed).
func (s *RealSource) handleButton(evt gpiocdev.LineEvent) {
	s.buttons <- evt.Type == gpiocdev.LineEventFallingEdge
}

// Rotations delivers signed detents.
func (s *RealSource) Rotations() <-chan int {
	return s.rotations
}

// Buttons delivers press/release transitions.
func (s *RealSource) Buttons() <-chan bool {
	return s.buttons
}

// Close releases the GPIO lines.
func (s *RealSource) Close() error {
	var errs []error
	for _, l := range []*gpiocdev.Line{s.lineA, s.lineB, s.lineBtn} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

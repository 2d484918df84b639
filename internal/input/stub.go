//go:build !linux

package input

import "errors"

// Pin definitions (BCM numbering) and chip for the rotary encoder.
const (
	DefaultChip      = "gpiochip0"
	DefaultPinA      = 17
	DefaultPinB      = 27
	DefaultPinButton = 22
)

// RealSource is not available on non-Linux platforms.
type RealSource struct{}

// NewRealSource returns an error on non-Linux platforms.
func NewRealSource(chip string, pinA, pinB, pinButton int) (*RealSource, error) {
	return nil, errors.New("input: not supported on this platform (requires Linux)")
}

// Rotations is not implemented on non-Linux platforms.
func (s *RealSource) Rotations() <-chan int {
	return nil
}

// Buttons is not implemented on non-Linux platforms.
func (s *RealSource) Buttons() <-chan bool {
	return nil
}

// Close is not implemented on non-Linux platforms.
func (s *RealSource) Close() error {
	return nil
}

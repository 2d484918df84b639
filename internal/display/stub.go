//go:build !linux

package display

import "errors"

// Default I2C wiring for the panel.
const (
	DefaultBus     = 1
	DefaultAddress = 0x3C
)

// RealDevice is not available on non-Linux platforms.
type RealDevice struct{}

// NewRealDevice returns an error on non-Linux platforms.
func NewRealDevice(busNum int, addr uint8) (*RealDevice, error) {
	return nil, errors.New("display: not supported on this platform (requires Linux)")
}

// Render is not implemented on non-Linux platforms.
func (d *RealDevice) Render(f *Frame) error {
	return errors.New("display: not supported")
}

// Clear is not implemented on non-Linux platforms.
func (d *RealDevice) Clear() error {
	return nil
}

// Close is not implemented on non-Linux platforms.
func (d *RealDevice) Close() error {
	return nil
}

// Package display provides the 128x64 monochrome frame buffer and the panel
// device abstraction. The real implementation drives an SSD1306 over I2C.
// The fake implementation records frames for testing without hardware.
package display

import "image/color"

// Panel dimensions (1.5 inch transparent OLED).
const (
	Width  = 128
	Height = 64
)

// Device transfers composed frames to the physical panel.
type Device interface {
	// Render pushes a fully composed frame to the panel. The frame may be
	// reused by the caller after Render returns.
	Render(f *Frame) error

	// Clear blanks the panel.
	Clear() error

	// Close clears the panel (best effort) and releases the bus.
	Close() error
}

// Frame is a 1-bit frame buffer. It implements drivers.Displayer so that
// tinyfont and tinydraw can draw into it directly.
type Frame struct {
	buf [Width * Height / 8]byte
}

// NewFrame returns a blank frame.
func NewFrame() *Frame {
	return &Frame{}
}

// Size returns the frame dimensions.
func (f *Frame) Size() (x, y int16) {
	return Width, Height
}

// SetPixel lights the pixel when c is any non-black color and clears it
// otherwise. Out-of-bounds coordinates are ignored.
func (f *Frame) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	idx := int(y)*Width/8 + int(x)/8
	bit := byte(1) << (uint(x) % 8)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		f.buf[idx] |= bit
	} else {
		f.buf[idx] &^= bit
	}
}

// Display satisfies drivers.Displayer. Drawing into a frame has no side
// effects; the frame is transferred explicitly via Device.Render.
func (f *Frame) Display() error {
	return nil
}

// Pixel reports whether the pixel at (x, y) is lit.
func (f *Frame) Pixel(x, y int16) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.buf[int(y)*Width/8+int(x)/8]&(1<<(uint(x)%8)) != 0
}

// Clear blanks the frame.
func (f *Frame) Clear() {
	f.buf = [Width * Height / 8]byte{}
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	c := *f
	return &c
}

// On is the lit pixel color for tinyfont/tinydraw calls.
var On = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Off is the dark pixel color.
var Off = color.RGBA{A: 255}

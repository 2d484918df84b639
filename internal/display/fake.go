package display

// FakeDevice records rendered frames for test assertions.
type FakeDevice struct {
	// Frames contains a copy of every frame passed to Render, in order.
	Frames []*Frame

	// Cleared counts calls to Clear.
	Cleared int

	// Closed tracks if Close was called.
	Closed bool

	// RenderError, if set, will be returned by Render.
	RenderError error
}

// NewFakeDevice creates a FakeDevice for testing.
func NewFakeDevice() *FakeDevice {
	return &FakeDevice{}
}

// Render records a copy of the frame.
func (d *FakeDevice) Render(f *Frame) error {
	if d.RenderError != nil {
		return d.RenderError
	}
	d.Frames = append(d.Frames, f.Clone())
	return nil
}

// Clear counts the clear request.
func (d *FakeDevice) Clear() error {
	d.Cleared++
	return nil
}

// Close marks the device as closed.
func (d *FakeDevice) Close() error {
	d.Closed = true
	return nil
}

// LastFrame returns the most recently rendered frame, or nil.
func (d *FakeDevice) LastFrame() *Frame {
	if len(d.Frames) == 0 {
		return nil
	}
	return d.Frames[len(d.Frames)-1]
}

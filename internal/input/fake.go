package input

// FakeSource feeds scripted events to a Classifier in tests.
type FakeSource struct {
	rotations chan int
	buttons   chan bool

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSource creates a FakeSource with buffered streams.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		rotations: make(chan int, 64),
		buttons:   make(chan bool, 64),
	}
}

// Rotations delivers the scripted rotation units.
func (s *FakeSource) Rotations() <-chan int {
	return s.rotations
}

// Buttons delivers the scripted button edges.
func (s *FakeSource) Buttons() <-chan bool {
	return s.buttons
}

// Rotate queues a signed rotation unit.
func (s *FakeSource) Rotate(unit int) {
	s.rotations <- unit
}

// Press queues a button-down edge.
func (s *FakeSource) Press() {
	s.buttons <- true
}

// Release queues a button-up edge.
func (s *FakeSource) Release() {
	s.buttons <- false
}

// CloseRotations ends the rotation stream, simulating device loss.
func (s *FakeSource) CloseRotations() {
	close(s.rotations)
}

// CloseButtons ends the button stream, simulating device loss.
func (s *FakeSource) CloseButtons() {
	close(s.buttons)
}

// Close marks the source as closed.
func (s *FakeSource) Close() error {
	s.Closed = true
	return nil
}

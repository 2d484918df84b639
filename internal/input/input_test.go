package input

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder collects callback invocations in order and signals each one.
type recorder struct {
	mu     sync.Mutex
	events []string
	notify chan struct{}
}

func newRecorder() *recorder {
	return &recorder{notify: make(chan struct{}, 128)}
}

func (r *recorder) add(name string) func() {
	return func() {
		r.mu.Lock()
		r.events = append(r.events, name)
		r.mu.Unlock()
		r.notify <- struct{}{}
	}
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		RotateLeft:  r.add("left"),
		RotateRight: r.add("right"),
		ShortPress:  r.add("short"),
		LongPress:   r.add("long"),
	}
}

// waitFor blocks until n callbacks have been recorded, then returns them.
func (r *recorder) waitFor(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-r.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %d callbacks, got %d", n, i)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// settle gives the classifier a moment to process queued events, then
// returns the recorded callbacks. Used to assert that nothing MORE fired.
func (r *recorder) settle() []string {
	time.Sleep(50 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func startClassifier(t *testing.T, src Source, rec *recorder, threshold time.Duration) (cancel func(), done <-chan error) {
	t.Helper()
	c, err := NewClassifier(src, rec.callbacks(), threshold)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	ctx, cancelCtx := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	t.Cleanup(cancelCtx)
	return cancelCtx, errCh
}

func TestNewClassifierRequiresAllCallbacks(t *testing.T) {
	src := NewFakeSource()
	full := newRecorder().callbacks()

	tests := []struct {
		name   string
		mutate func(*Callbacks)
	}{
		{"missingRotateLeft", func(cb *Callbacks) { cb.RotateLeft = nil }},
		{"missingRotateRight", func(cb *Callbacks) { cb.RotateRight = nil }},
		{"missingShortPress", func(cb *Callbacks) { cb.ShortPress = nil }},
		{"missingLongPress", func(cb *Callbacks) { cb.LongPress = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := full
			tt.mutate(&cb)
			if _, err := NewClassifier(src, cb, 0); err == nil {
				t.Error("expected error for missing callback")
			}
		})
	}

	if _, err := NewClassifier(src, full, 0); err != nil {
		t.Errorf("fully bound callbacks rejected: %v", err)
	}
}

func TestRotationOrderPreservedNoCoalescing(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	startClassifier(t, src, rec, time.Hour)

	src.Rotate(1)
	src.Rotate(1)
	src.Rotate(-1)
	src.Rotate(1)
	src.Rotate(-1)

	got := rec.waitFor(t, 5)
	want := []string{"right", "right", "left", "right", "left"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestShortPress(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	// Threshold far in the future: any release is a short press.
	startClassifier(t, src, rec, time.Hour)

	src.Press()
	src.Release()

	got := rec.waitFor(t, 1)
	if len(got) != 1 || got[0] != "short" {
		t.Fatalf("got %v, want [short]", got)
	}
	if got := rec.settle(); len(got) != 1 {
		t.Errorf("extra callbacks after short press: %v", got)
	}
}

func TestLongPressFiresAtThresholdNotRelease(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	startClassifier(t, src, rec, 20*time.Millisecond)

	src.Press()
	// No release yet: the long press must fire from the timer alone.
	got := rec.waitFor(t, 1)
	if got[0] != "long" {
		t.Fatalf("got %v, want [long]", got)
	}

	// The eventual release must be a no-op, not a short press.
	src.Release()
	if got := rec.settle(); len(got) != 1 {
		t.Errorf("release after long press fired callbacks: %v", got)
	}
}

func TestShortPressCancelsLongTimer(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	startClassifier(t, src, rec, 100*time.Millisecond)

	src.Press()
	src.Release()
	got := rec.waitFor(t, 1)
	if got[0] != "short" {
		t.Fatalf("got %v, want [short]", got)
	}

	// Well past the threshold: the cancelled timer must not produce a long.
	time.Sleep(150 * time.Millisecond)
	if got := rec.settle(); len(got) != 1 {
		t.Errorf("cancelled long timer still fired: %v", got)
	}
}

func TestRepeatedPressesClassifyIndependently(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	startClassifier(t, src, rec, time.Hour)

	for i := 0; i < 3; i++ {
		src.Press()
		src.Release()
	}
	got := rec.waitFor(t, 3)
	for i, e := range got {
		if e != "short" {
			t.Errorf("event %d: got %q, want short", i, e)
		}
	}
}

func TestClosedRotationStreamIsFatal(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	_, done := startClassifier(t, src, rec, time.Hour)

	src.CloseRotations()
	select {
	case err := <-done:
		if !errors.Is(err, ErrSourceClosed) {
			t.Errorf("got %v, want ErrSourceClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("classifier did not exit on closed stream")
	}
}

func TestClosedButtonStreamIsFatal(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	_, done := startClassifier(t, src, rec, time.Hour)

	src.CloseButtons()
	select {
	case err := <-done:
		if !errors.Is(err, ErrSourceClosed) {
			t.Errorf("got %v, want ErrSourceClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("classifier did not exit on closed stream")
	}
}

func TestContextCancelStopsRun(t *testing.T) {
	src := NewFakeSource()
	rec := newRecorder()
	cancel, done := startClassifier(t, src, rec, time.Hour)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("classifier did not exit on cancel")
	}
}

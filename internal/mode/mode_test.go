package mode

import "testing"

func TestHighlightCycle(t *testing.T) {
	tests := []struct {
		from Mode
		next Mode
		prev Mode
	}{
		{Station, Time, Alarm},
		{Time, Alarm, Station},
		{Alarm, Station, Time},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.next {
			t.Errorf("%v.Next() = %v, want %v", tt.from, got, tt.next)
		}
		if got := tt.from.Prev(); got != tt.prev {
			t.Errorf("%v.Prev() = %v, want %v", tt.from, got, tt.prev)
		}
	}
}

func TestCycleRoundTrip(t *testing.T) {
	for _, m := range []Mode{Station, Time, Alarm} {
		if got := m.Next().Prev(); got != m {
			t.Errorf("%v.Next().Prev() = %v", m, got)
		}
	}
	// Three forward steps return to the start.
	if got := Station.Next().Next().Next(); got != Station {
		t.Errorf("full cycle = %v, want Station", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		m    Mode
		want string
	}{
		{Station, "STATION"},
		{Time, "TIME"},
		{Alarm, "ALARM"},
		{Select, "MODE"},
		{Mode(99), "INVALID"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

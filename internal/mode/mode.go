// Package mode defines the operating modes of the radio interface.
package mode

// Mode is one of the four UI operating contexts. Station, Time and Alarm
// are the editable contexts; Select is the mode-selection context and is
// never a highlight target.
type Mode int

const (
	Station Mode = iota
	Time
	Alarm
	Select
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Station:
		return "STATION"
	case Time:
		return "TIME"
	case Alarm:
		return "ALARM"
	case Select:
		return "MODE"
	default:
		return "INVALID"
	}
}

// Next returns the following mode in the fixed highlight cycle
// Station -> Time -> Alarm -> Station. Select is not part of the cycle and
// maps to Station.
func (m Mode) Next() Mode {
	switch m {
	case Station:
		return Time
	case Time:
		return Alarm
	default:
		return Station
	}
}

// Prev returns the preceding mode in the highlight cycle.
func (m Mode) Prev() Mode {
	switch m {
	case Station:
		return Alarm
	case Alarm:
		return Time
	default:
		return Station
	}
}

package radio

import "time"

// EventType identifies a state change worth reporting over telemetry.
type EventType string

const (
	EventPlaybackOn     EventType = "PLAYBACK_ON"
	EventPlaybackOff    EventType = "PLAYBACK_OFF"
	EventStationChanged EventType = "STATION_CHANGED"
	EventTrackChanged   EventType = "TRACK_CHANGED"
	EventAlarmSet       EventType = "ALARM_SET"
	EventAlarmCleared   EventType = "ALARM_CLEARED"
	EventAlarmFired     EventType = "ALARM_FIRED"
)

// Event is a radio state transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Station   int    // current station index
	Track     string // current track metadata
	AlarmTime string // alarm time text, for alarm events
}

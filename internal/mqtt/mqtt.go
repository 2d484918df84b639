// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/radio-clock/internal/radio"
)

// Topic is the MQTT topic for radio state events.
const Topic = "home/radio-clock/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/radio-clock/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a radio event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event radio.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Radio RadioPayload `json:"radio"`
}

// RadioPayload contains the radio event details.
type RadioPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Station   int    `json:"station"`
	Track     string `json:"track"`
	AlarmTime string `json:"alarm_time,omitempty"`
}

// FormatPayload creates the JSON payload for a radio event.
func FormatPayload(event radio.Event) ([]byte, error) {
	payload := Payload{
		Radio: RadioPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Station:   event.Station,
			Track:     event.Track,
			AlarmTime: alarmField(event),
		},
	}
	return json.Marshal(payload)
}

// alarmField includes the alarm time only on alarm events; playback and
// station events do not carry it.
func alarmField(event radio.Event) string {
	switch event.Type {
	case radio.EventAlarmSet, radio.EventAlarmCleared, radio.EventAlarmFired:
		return event.AlarmTime
	}
	return ""
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

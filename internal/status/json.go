package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Mode          string      `json:"mode"`
	Highlighted   string      `json:"highlighted"`
	Station       int         `json:"station"`
	StationCount  int         `json:"station_count"`
	Track         string      `json:"track"`
	Playing       bool        `json:"playing"`
	Alarm         AlarmJSON   `json:"alarm"`
	TimeText      string      `json:"time_text"`
	OffsetSeconds int         `json:"offset_seconds"`
	FramesDrawn   int         `json:"frames_drawn"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Config        ConfigJSON  `json:"config"`
}

// AlarmJSON is the JSON representation of the alarm state.
type AlarmJSON struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	StationsFile string `json:"stations_file"`
	Broker       string `json:"broker"`
	HTTPAddr     string `json:"http_addr"`
	LongPressMs  int64  `json:"long_press_ms"`
	FrameMs      int64  `json:"frame_ms"`
	ScrollMs     int64  `json:"scroll_ms"`
	UpdateMs     int64  `json:"update_ms"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Mode:          snap.Mode.String(),
		Highlighted:   snap.Highlighted.String(),
		Station:       snap.Station,
		StationCount:  snap.StationCount,
		Track:         snap.Track,
		Playing:       snap.Playing,
		Alarm:         AlarmJSON{Enabled: snap.AlarmEnabled, Time: snap.AlarmTime},
		TimeText:      snap.TimeText,
		OffsetSeconds: snap.OffsetSeconds,
		FramesDrawn:   snap.FramesDrawn,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			StationsFile: snap.Config.StationsFile,
			Broker:       snap.Config.Broker,
			HTTPAddr:     snap.Config.HTTPAddr,
			LongPressMs:  snap.Config.LongPressMs,
			FrameMs:      snap.Config.FrameMs,
			ScrollMs:     snap.Config.ScrollMs,
			UpdateMs:     snap.Config.UpdateMs,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

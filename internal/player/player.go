// Package player provides audio playback with abstraction for testing.
// The real implementation streams the station URL over HTTP and decodes it
// with beep. The fake implementation is scripted.
package player

// UnknownMetadata is the sentinel returned when a stream carries no
// usable title or track information. Metadata lookups never fail.
const UnknownMetadata = "unknown"

// Player controls playback over a fixed station list.
type Player interface {
	// Play starts (or resumes) playback of the current station.
	Play()

	// Stop halts playback.
	Stop()

	// SetStation switches to the station at index i. It reports false and
	// changes nothing when i is out of range.
	SetStation(i int) bool

	// ScrubStation moves the station index by delta with wraparound, so
	// the result is always in range.
	ScrubStation(delta int)

	// StationIndex returns the current station index.
	StationIndex() int

	// StationCount returns the number of stations.
	StationCount() int

	// TrackTitle returns the station's advertised name, or UnknownMetadata.
	TrackTitle() string

	// TrackMetadata returns the now-playing track, or UnknownMetadata.
	TrackMetadata() string
}

// wrapIndex applies a signed delta to an index with true modulo wraparound
// over n. Any integer delta lands back in [0, n).
func wrapIndex(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	r := (i + delta) % n
	if r < 0 {
		r += n
	}
	return r
}

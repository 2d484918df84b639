package player

// FakePlayer is a scriptable test double implementing Player.
type FakePlayer struct {
	// Stations is the fixed station list.
	Stations []string

	// Index is the current station index.
	Index int

	// Playing reports playback state.
	Playing bool

	// Title is returned by TrackTitle.
	Title string

	// Metadata is returned by TrackMetadata.
	Metadata string

	// PlayCalls and StopCalls count invocations.
	PlayCalls int
	StopCalls int

	// SetStationCalls records every index passed to SetStation.
	SetStationCalls []int
}

// NewFakePlayer creates a FakePlayer over n stations.
func NewFakePlayer(n int) *FakePlayer {
	stations := make([]string, n)
	for i := range stations {
		stations[i] = "fake://station"
	}
	return &FakePlayer{
		Stations: stations,
		Title:    UnknownMetadata,
		Metadata: UnknownMetadata,
	}
}

// Play marks the player as playing.
func (p *FakePlayer) Play() {
	p.PlayCalls++
	p.Playing = true
}

// Stop marks the player as stopped.
func (p *FakePlayer) Stop() {
	p.StopCalls++
	p.Playing = false
}

// SetStation switches stations with a bounds check.
func (p *FakePlayer) SetStation(i int) bool {
	p.SetStationCalls = append(p.SetStationCalls, i)
	if i < 0 || i >= len(p.Stations) {
		return false
	}
	p.Index = i
	return true
}

// ScrubStation moves the index by delta with wraparound.
func (p *FakePlayer) ScrubStation(delta int) {
	p.SetStation(wrapIndex(p.Index, delta, len(p.Stations)))
}

// StationIndex returns the current index.
func (p *FakePlayer) StationIndex() int {
	return p.Index
}

// StationCount returns the station count.
func (p *FakePlayer) StationCount() int {
	return len(p.Stations)
}

// TrackTitle returns the scripted title.
func (p *FakePlayer) TrackTitle() string {
	return p.Title
}

// TrackMetadata returns the scripted metadata.
func (p *FakePlayer) TrackMetadata() string {
	return p.Metadata
}

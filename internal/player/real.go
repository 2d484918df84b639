package player

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

// speakerBufferLen sizes the playback buffer. Larger values ride out
// network jitter at the cost of latency; this is a radio, latency is fine.
const speakerBufferLen = 500 * time.Millisecond

// StreamPlayer plays internet radio streams with beep. Playback errors are
// logged and absorbed; the UI shows placeholder metadata instead.
type StreamPlayer struct {
	mu       sync.Mutex
	stations []string
	index    int
	playing  bool

	name  string // station name from the icy-name header
	title string // now-playing from inline metadata

	cancel context.CancelFunc
	closer io.Closer

	client *http.Client
}

// NewStreamPlayer creates a player over the given station URLs.
func NewStreamPlayer(stations []string) *StreamPlayer {
	return &StreamPlayer{
		stations: stations,
		name:     UnknownMetadata,
		title:    UnknownMetadata,
		client:   &http.Client{},
	}
}

// Play starts streaming the current station. Playing while already playing
// is a no-op.
func (p *StreamPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing || len(p.stations) == 0 {
		return
	}
	p.playing = true
	p.startLocked()
}

// Stop halts playback and tears down the stream.
func (p *StreamPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	p.playing = false
	p.stopLocked()
}

// SetStation switches to station i, restarting the stream if playing.
func (p *StreamPlayer) SetStation(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.stations) {
		return false
	}
	p.index = i
	p.name = UnknownMetadata
	p.title = UnknownMetadata
	if p.playing {
		p.stopLocked()
		p.startLocked()
	}
	log.Printf("player: station %d (%s)", i, p.stations[i])
	return true
}

// ScrubStation moves the station index by delta with wraparound.
func (p *StreamPlayer) ScrubStation(delta int) {
	p.mu.Lock()
	next := wrapIndex(p.index, delta, len(p.stations))
	p.mu.Unlock()
	p.SetStation(next)
}

// StationIndex returns the current station index.
func (p *StreamPlayer) StationIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// StationCount returns the number of stations.
func (p *StreamPlayer) StationCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stations)
}

// TrackTitle returns the station name advertised by the stream.
func (p *StreamPlayer) TrackTitle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// TrackMetadata returns the now-playing text from the stream.
func (p *StreamPlayer) TrackMetadata() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// startLocked launches the stream goroutine for the current station.
func (p *StreamPlayer) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	url := p.stations[p.index]
	go func() {
		if err := p.stream(ctx, url); err != nil && ctx.Err() == nil {
			log.Printf("player: stream %s: %v", url, err)
		}
	}()
}

// stopLocked cancels the stream goroutine and silences the speaker.
func (p *StreamPlayer) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.closer != nil {
		p.closer.Close()
		p.closer = nil
	}
	speaker.Clear()
}

// stream connects to the station, decodes the mp3 stream, and plays it
// until the context is cancelled or the stream ends.
func (p *StreamPlayer) stream(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	// Ask the server to interleave now-playing metadata.
	req.Header.Set("Icy-MetaData", "1")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("connect: status %s", resp.Status)
	}

	if name := resp.Header.Get("icy-name"); name != "" {
		p.setName(name)
	}
	metaInt, _ := strconv.Atoi(resp.Header.Get("icy-metaint"))
	icy := newICYReader(resp.Body, metaInt, p.setTitle)

	streamer, format, err := mp3.Decode(readCloser{icy, resp.Body})
	if err != nil {
		resp.Body.Close()
		return fmt.Errorf("decode: %w", err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerBufferLen)); err != nil {
		streamer.Close()
		return fmt.Errorf("speaker init: %w", err)
	}

	p.mu.Lock()
	p.closer = streamer
	p.mu.Unlock()

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() { close(done) })))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		// Stream ended on its own (network drop, server restart).
		return fmt.Errorf("stream ended")
	}
}

func (p *StreamPlayer) setName(name string) {
	p.mu.Lock()
	p.name = name
	p.mu.Unlock()
}

func (p *StreamPlayer) setTitle(title string) {
	p.mu.Lock()
	p.title = title
	p.mu.Unlock()
}

// readCloser pairs the metadata-stripping reader with the HTTP body closer.
type readCloser struct {
	io.Reader
	io.Closer
}

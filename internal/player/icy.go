package player

import (
	"fmt"
	"io"
	"strings"
)

// icyReader strips Shoutcast/Icecast inline metadata from an audio stream.
// When the server honors the Icy-MetaData request header it interleaves a
// metadata block after every metaInt audio bytes: one length byte (units of
// 16 bytes) followed by that many bytes of "StreamTitle='...';" text.
// The audio passed through to the decoder never contains these blocks.
type icyReader struct {
	r         io.Reader
	metaInt   int
	remaining int // audio bytes left before the next metadata block
	onTitle   func(string)
}

// newICYReader wraps r. A metaInt of zero or less means the stream carries
// no inline metadata and reads pass through untouched.
func newICYReader(r io.Reader, metaInt int, onTitle func(string)) *icyReader {
	return &icyReader{
		r:         r,
		metaInt:   metaInt,
		remaining: metaInt,
		onTitle:   onTitle,
	}
}

func (r *icyReader) Read(p []byte) (int, error) {
	if r.metaInt <= 0 {
		return r.r.Read(p)
	}
	if r.remaining == 0 {
		if err := r.readMetaBlock(); err != nil {
			return 0, err
		}
		r.remaining = r.metaInt
	}
	if len(p) > r.remaining {
		p = p[:r.remaining]
	}
	n, err := r.r.Read(p)
	r.remaining -= n
	return n, err
}

func (r *icyReader) readMetaBlock() error {
	var lenByte [1]byte
	if _, err := io.ReadFull(r.r, lenByte[:]); err != nil {
		return fmt.Errorf("icy metadata length: %w", err)
	}
	size := int(lenByte[0]) * 16
	if size == 0 {
		// Empty block: title unchanged.
		return nil
	}
	block := make([]byte, size)
	if _, err := io.ReadFull(r.r, block); err != nil {
		return fmt.Errorf("icy metadata block: %w", err)
	}
	if title, ok := parseStreamTitle(string(block)); ok && r.onTitle != nil {
		r.onTitle(title)
	}
	return nil
}

// parseStreamTitle extracts the StreamTitle value from a metadata block
// such as "StreamTitle='Artist - Song';StreamUrl='';". The block is padded
// with NULs to a 16-byte boundary.
func parseStreamTitle(block string) (string, bool) {
	const marker = "StreamTitle='"
	start := strings.Index(block, marker)
	if start < 0 {
		return "", false
	}
	rest := block[start+len(marker):]
	end := strings.Index(rest, "';")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

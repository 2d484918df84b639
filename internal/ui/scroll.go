package ui

import "time"

// endsHoldMultiple is how many scroll ticks the text holds still at each
// end of the scroll cycle before moving again.
const endsHoldMultiple = 3

// scrollWindow returns the visible slice of text for a marquee that holds
// at the start, scrolls left one character per tick, holds at the end, and
// repeats. The animation is derived purely from the elapsed time since
// anchor, so redundant redraws never disturb the scroll position.
func scrollWindow(text string, anchor, now time.Time, maxChars int, speed time.Duration) string {
	runes := []rune(text)
	overflow := len(runes) - maxChars
	if overflow <= 0 {
		return text
	}

	ticks := 2*endsHoldMultiple + overflow
	cycle := speed * time.Duration(ticks)
	position := now.Sub(anchor) % cycle
	if position < 0 {
		position += cycle
	}
	index := int(int64(position) * int64(ticks) / int64(cycle))

	offset := index - endsHoldMultiple
	if offset < 0 {
		offset = 0
	}
	if offset > overflow {
		offset = overflow
	}
	return string(runes[offset : offset+maxChars])
}

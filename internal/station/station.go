// Package station loads the newline-delimited station list handed to the
// player at startup.
package station

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadList reads station URLs from path, one per line. Blank lines and
// lines starting with '#' are skipped. An empty result is an error: a radio
// with no stations cannot do anything useful.
func LoadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open station list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read station list: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("station list %s contains no stations", path)
	}
	return urls, nil
}

// Package words loads the word corpus.
package words

import (
	"bufio"
	"os"
	"strings"
)

// Default is the built-in fallback corpus used when no word list can be loaded.
var Default = []string{
	"fast", "thumb", "type", "speed", "focus", "quick",
	"learn", "tap", "flow", "left", "right", "home",
}

// Load reads one word per line from the provided file path, keeping only
// lowercase alphabetic words. A missing or empty file falls back to Default.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]string(nil), Default...), nil
		}
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var out []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !alphabetic(word) {
			continue
		}
		out = append(out, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return append([]string(nil), Default...), nil
	}
	return out, nil
}

func alphabetic(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

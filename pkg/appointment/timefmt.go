package appointment

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	storedLayout  = "15:04:05"
	displayLayout = "15:04"
)

// NormalizeTime accepts "HH:MM" or "HH:MM:SS" and returns the stored
// "HH:MM:SS" form.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{storedLayout, displayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(storedLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time %q, want HH:MM", s)
}

// DisplayTime trims a stored time to "HH:MM". Anything unparsable is returned unchanged.
func DisplayTime(s string) string {
	if t, err := time.Parse(storedLayout, s); err == nil {
		return t.Format(displayLayout)
	}
	return s
}

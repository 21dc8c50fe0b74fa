package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeOfDay converts a "HH:MM" or "HH:MM:SS" value to minutes from
// midnight. It returns nil on unparseable input; consumers must treat such
// sessions as non-constraints rather than fail.
func ParseTimeOfDay(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) < 2 {
		return nil
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return nil
	}

	total := hours*60 + minutes
	return &total
}

// MinutesToClock renders minutes from midnight as "HH:MM".
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

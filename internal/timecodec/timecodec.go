// Package timecodec converts the heterogeneous time encodings found in raw
// attendance rows (HH:MM:SS wall-clock strings, minutes-as-text fields) into
// a canonical seconds representation, and formats durations for display.
package timecodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ClockSeconds parses a wall-clock time of day ("HH:MM:SS" or "HH:MM") into
// seconds since midnight.
func ClockSeconds(t string) (int, error) {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("malformed clock value %q", t)
	}

	seconds := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("malformed clock value %q", t)
		}
		seconds = seconds*60 + n
	}
	if len(parts) == 2 {
		seconds *= 60
	}
	return seconds, nil
}

// ParseClockDuration returns the signed span between two wall-clock endpoints
// in seconds. Either endpoint absent or unparseable yields 0. A logout before
// login yields a negative value; callers decide how to surface that.
func ParseClockDuration(login, logout string) int {
	if login == "" || logout == "" {
		return 0
	}
	start, err := ClockSeconds(login)
	if err != nil {
		return 0
	}
	end, err := ClockSeconds(logout)
	if err != nil {
		return 0
	}
	return end - start
}

// MinutesField converts a minutes value stored as text into seconds. The
// second return reports whether a non-empty value failed to parse, so
// callers can flag it; empty input is a normal absent field, not a defect.
func MinutesField(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)) * 60, true
}

// ParseMinutesField is MinutesField with the defect signal dropped:
// null, empty and non-numeric all default to 0.
func ParseMinutesField(v string) int {
	seconds, _ := MinutesField(v)
	return seconds
}

// FormatDuration renders a seconds count as "{H}h {M}m", truncated to whole
// minutes. The sign is preserved for negative durations.
func FormatDuration(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%dh %dm", sign, seconds/3600, (seconds%3600)/60)
}

// FormatClock renders a seconds count as "HH:MM:SS" for second-precision
// single-session views. The sign is preserved.
func FormatClock(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, (seconds%3600)/60, seconds%60)
}

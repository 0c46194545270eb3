// Package lifecycle decides, for a promotion's hours and a wall-clock reading,
// whether the promotion is hidden, about to start, or running, and how its
// map marker should look while it runs.
//
// Everything here is pure: no I/O, no logging, no shared state. Malformed
// hours never produce errors; they simply contribute no ranges.
package lifecycle

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a day in minutes.
const MinutesPerDay = 1440

// noonShift moves an ambiguous 12h morning hour into the afternoon.
const noonShift = 12 * 60

// TimeRange is a daily window in minutes since midnight.
// End <= Start means the window wraps into the next day; Start == End is
// zero-width and never active.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CrossesMidnight reports whether the range wraps into the next day.
func (r TimeRange) CrossesMidnight() bool {
	return r.End < r.Start
}

// ZeroWidth reports whether the range covers no time at all.
func (r TimeRange) ZeroWidth() bool {
	return r.Start == r.End
}

// Duration returns the window length in minutes, wrap-aware.
func (r TimeRange) Duration() int {
	if r.End > r.Start {
		return r.End - r.Start
	}
	if r.End < r.Start {
		return (MinutesPerDay - r.Start) + r.End
	}
	return 0
}

// Elapsed returns minutes since Start for a clock reading inside the range.
func (r TimeRange) Elapsed(now int) int {
	if now >= r.Start {
		return now - r.Start
	}
	return (MinutesPerDay - r.Start) + now
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%d:%02d-%d:%02d", r.Start/60, r.Start%60, r.End/60, r.End%60)
}

// ParseClockTime parses "H:MM" or "HH:MM" into minutes since midnight.
// Hours are not bounds-checked.
func ParseClockTime(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ParseRange parses "HH:MM-HH:MM". With assume24h false, hours 1 through 11
// are read as PM; this only exists for old 12h sheets.
func ParseRange(s string, assume24h bool) (TimeRange, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return TimeRange{}, false
	}
	start, ok := ParseClockTime(parts[0])
	if !ok {
		return TimeRange{}, false
	}
	end, ok := ParseClockTime(parts[1])
	if !ok {
		return TimeRange{}, false
	}

	if !assume24h {
		start = shiftAmbiguous(start)
		end = shiftAmbiguous(end)
	}
	return TimeRange{Start: start, End: end}, true
}

// ParseRange24h is ParseRange for the canonical 24h format.
func ParseRange24h(s string) (TimeRange, bool) {
	return ParseRange(s, true)
}

func shiftAmbiguous(minutes int) int {
	if h := minutes / 60; h >= 1 && h <= 11 {
		return minutes + noonShift
	}
	// 0:XX stays midnight, 12:XX stays noon
	return minutes
}

// ParseRanges splits a comma-separated cell and parses each range. Bad
// ranges are skipped without affecting their neighbours.
func ParseRanges(cell string, assume24h bool) []TimeRange {
	var out []TimeRange
	for _, raw := range strings.Split(cell, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if r, ok := ParseRange(raw, assume24h); ok {
			out = append(out, r)
		}
	}
	return out
}

// InRange reports whether the clock reading falls inside the range.
func InRange(now int, r TimeRange) bool {
	switch {
	case r.End > r.Start:
		return now >= r.Start && now < r.End
	case r.End < r.Start:
		return now >= r.Start || now < r.End
	default:
		return false
	}
}

// NormalizeRange rewrites a range as 24h "H:MM-H:MM" text. Unparseable input
// is returned unchanged.
func NormalizeRange(s string, assume24h bool) string {
	r, ok := ParseRange(s, assume24h)
	if !ok {
		return s
	}
	return r.String()
}

// DetectIs24h reports whether any hour in the given ranges is 13 or later,
// which settles a legacy row as 24h.
func DetectIs24h(ranges []string) bool {
	for _, raw := range ranges {
		for _, part := range strings.Split(raw, "-") {
			hourText := strings.Split(strings.TrimSpace(part), ":")[0]
			if h, err := strconv.Atoi(hourText); err == nil && h >= 13 {
				return true
			}
		}
	}
	return false
}

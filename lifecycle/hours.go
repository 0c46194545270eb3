package lifecycle

import (
	"strings"
	"time"
)

// HoursSource is anything that can say which ranges apply at a moment.
// Weekly column data and one-off dated data both implement it, so the
// evaluator does not care which sheet layout an entry came from.
type HoursSource interface {
	// RangesFor returns today's ranges in column order.
	RangesFor(m Moment) []TimeRange
	// LookbackRangesFor returns yesterday's ranges that cross midnight.
	LookbackRangesFor(m Moment) []TimeRange
	// HasHoursOn reports whether any non-empty range is listed for d.
	HasHoursOn(d time.Weekday) bool
	// Empty reports whether no hours are configured at all.
	Empty() bool
}

// WeeklyHours maps a day name ("Monday") to raw 24h range strings.
type WeeklyHours map[string][]string

func (w WeeklyHours) rawFor(d time.Weekday) []string {
	if w == nil {
		return nil
	}
	if ranges, ok := w[d.String()]; ok {
		return ranges
	}
	// Sheets are not always consistent about case.
	for name, ranges := range w {
		if strings.EqualFold(name, d.String()) {
			return ranges
		}
	}
	return nil
}

func (w WeeklyHours) rangesOn(d time.Weekday, assume24h bool) []TimeRange {
	var out []TimeRange
	for _, cell := range w.rawFor(d) {
		out = append(out, ParseRanges(cell, assume24h)...)
	}
	return out
}

func (w WeeklyHours) RangesFor(m Moment) []TimeRange {
	return w.rangesOn(m.Day, true)
}

func (w WeeklyHours) LookbackRangesFor(m Moment) []TimeRange {
	return crossing(w.rangesOn(m.Yesterday, true))
}

func (w WeeklyHours) HasHoursOn(d time.Weekday) bool {
	for _, cell := range w.rawFor(d) {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

func (w WeeklyHours) Empty() bool {
	for _, d := range dayColumns {
		if w.HasHoursOn(d) {
			return false
		}
	}
	return true
}

// Add appends ranges to a day, keeping column order.
func (w WeeklyHours) Add(day string, ranges ...string) {
	w[day] = append(w[day], ranges...)
}

// TwelveHourWeekly is WeeklyHours from an old sheet that wrote "3:00-7:00"
// for 3pm to 7pm.
type TwelveHourWeekly WeeklyHours

func (w TwelveHourWeekly) RangesFor(m Moment) []TimeRange {
	return WeeklyHours(w).rangesOn(m.Day, false)
}

func (w TwelveHourWeekly) LookbackRangesFor(m Moment) []TimeRange {
	return crossing(WeeklyHours(w).rangesOn(m.Yesterday, false))
}

func (w TwelveHourWeekly) HasHoursOn(d time.Weekday) bool {
	return WeeklyHours(w).HasHoursOn(d)
}

func (w TwelveHourWeekly) Empty() bool {
	return WeeklyHours(w).Empty()
}

// DatedHours maps a "M/D/YY" date key to that date's raw range(s). Dated
// hours never recur and have no lookback.
type DatedHours map[string]string

func (d DatedHours) RangesFor(m Moment) []TimeRange {
	if d == nil {
		return nil
	}
	if cell, ok := d[m.DateKey]; ok {
		return ParseRanges(cell, true)
	}
	// keys written by hand may be zero-padded
	var out []TimeRange
	for key, cell := range d {
		if canonical, ok := NormalizeDateKey(key); ok && canonical == m.DateKey {
			out = append(out, ParseRanges(cell, true)...)
		}
	}
	return out
}

func (d DatedHours) LookbackRangesFor(Moment) []TimeRange {
	return nil
}

func (d DatedHours) HasHoursOn(day time.Weekday) bool {
	for key, cell := range d {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		t, err := ParseDateKey(key, time.UTC)
		if err != nil {
			continue
		}
		if t.Weekday() == day {
			return true
		}
	}
	return false
}

func (d DatedHours) Empty() bool {
	for _, cell := range d {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Group evaluates several sources as one, e.g. all of a venue's happy hours
// behind a single marker.
type Group []HoursSource

func (g Group) RangesFor(m Moment) []TimeRange {
	var out []TimeRange
	for _, src := range g {
		out = append(out, src.RangesFor(m)...)
	}
	return out
}

func (g Group) LookbackRangesFor(m Moment) []TimeRange {
	var out []TimeRange
	for _, src := range g {
		out = append(out, src.LookbackRangesFor(m)...)
	}
	return out
}

func (g Group) HasHoursOn(d time.Weekday) bool {
	for _, src := range g {
		if src.HasHoursOn(d) {
			return true
		}
	}
	return false
}

func (g Group) Empty() bool {
	for _, src := range g {
		if !src.Empty() {
			return false
		}
	}
	return true
}

func crossing(ranges []TimeRange) []TimeRange {
	var out []TimeRange
	for _, r := range ranges {
		if r.CrossesMidnight() {
			out = append(out, r)
		}
	}
	return out
}

package lifecycle

import (
	"fmt"
	"sort"
	"strings"
)

const windowDash = "–"

// Status is the one-line popup footer for a promotion.
type Status struct {
	Text     string `json:"text"`
	Active   bool   `json:"active"`
	EndsSoon bool   `json:"ends_soon"`
}

// clockParts splits minutes into a 12h hour, minutes and a meridiem.
func clockParts(minutes int) (hour12, mins int, suffix string) {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	h := minutes / 60
	mins = minutes % 60
	suffix = "am"
	if h >= 12 {
		suffix = "pm"
	}
	switch {
	case h == 0:
		hour12 = 12
	case h > 12:
		hour12 = h - 12
	default:
		hour12 = h
	}
	return hour12, mins, suffix
}

func bareClock(hour12, mins int) string {
	if mins == 0 {
		return fmt.Sprintf("%d", hour12)
	}
	return fmt.Sprintf("%d:%02d", hour12, mins)
}

// FormatClock renders minutes since midnight as "6pm" or "6:30pm".
func FormatClock(minutes int) string {
	h, m, suffix := clockParts(minutes)
	return bareClock(h, m) + suffix
}

// FormatWindow renders a range as "3–6pm", keeping the start's meridiem
// only when the two ends differ ("11am–2pm").
func FormatWindow(r TimeRange) string {
	sh, sm, ssuf := clockParts(r.Start)
	eh, em, esuf := clockParts(r.End)
	start := bareClock(sh, sm)
	if ssuf != esuf {
		start += ssuf
	}
	return start + windowDash + bareClock(eh, em) + esuf
}

// FormatLiveWindow renders a comma-joined cell of raw ranges for display.
// Parts that do not parse are shown as written.
func FormatLiveWindow(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	var parts []string
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if r, ok := ParseRange24h(piece); ok {
			parts = append(parts, FormatWindow(r))
		} else {
			parts = append(parts, piece)
		}
	}
	return strings.Join(parts, ", ")
}

// Status builds the footer text for src at m.
//
// When nothing is running or still to come today, the last range's end is
// shown as "ends at ...". The map has always done this; it reads oddly but
// is kept so the popup does not change under people.
func (e *Evaluator) Status(src HoursSource, m Moment) Status {
	if src == nil {
		return Status{}
	}

	state := e.Evaluate(src, m)
	if state.Phase == PhaseActive {
		return Status{
			Text:     "ends at " + FormatClock(state.Range.End),
			Active:   true,
			EndsSoon: state.EndingSoon,
		}
	}

	today := src.RangesFor(m)
	if len(today) == 0 {
		return Status{}
	}

	var upcoming []TimeRange
	for _, r := range today {
		if r.Start > m.Minute {
			upcoming = append(upcoming, r)
		}
	}
	if len(upcoming) > 0 {
		sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Start < upcoming[j].Start })
		return Status{Text: "starts at " + FormatClock(upcoming[0].Start)}
	}

	ordered := append([]TimeRange(nil), today...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })
	last := ordered[len(ordered)-1]
	return Status{Text: "ends at " + FormatClock(last.End)}
}

package promotion

import (
	"hh-server/lifecycle"
)

const (
	// TypeSpecial is the sheet's label for the specials bucket. Every other
	// label is rendered like a happy hour.
	TypeSpecial = "Special"
	// TypeDefault labels a happy-hour row with no promotion type.
	TypeDefault = "Promotion"
	// TypeLimited labels entries adapted from limited-time offers.
	TypeLimited = "Limited"
)

// Entry is one promotion row: a label, some copy, and its hours. Weekly
// entries carry Hours; offers carry Dates.
type Entry struct {
	TypeLabel       string                `json:"type_label"`
	Name            string                `json:"name,omitempty"`
	Description     string                `json:"description,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	MenuURL         string                `json:"menu_url,omitempty"`
	MenuDescription string                `json:"menu_description,omitempty"`
	Hours           lifecycle.WeeklyHours `json:"hours,omitempty"`
	Dates           lifecycle.DatedHours  `json:"dates,omitempty"`
}

// Source returns the hours the evaluator should look at.
func (e *Entry) Source() lifecycle.HoursSource {
	if len(e.Dates) > 0 {
		return e.Dates
	}
	if e.Hours == nil {
		return lifecycle.WeeklyHours{}
	}
	return e.Hours
}

// IsSpecial reports whether the entry belongs in the specials bucket.
func (e *Entry) IsSpecial() bool {
	return e.TypeLabel == TypeSpecial
}

// Sources returns the hours of every entry, in order.
func Sources(entries []Entry) []lifecycle.HoursSource {
	out := make([]lifecycle.HoursSource, 0, len(entries))
	for i := range entries {
		out = append(out, entries[i].Source())
	}
	return out
}

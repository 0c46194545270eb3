package lifecycle

import (
	"errors"
	"strings"
	"time"
	// zone database for hosts without one
	_ "time/tzdata"
)

// DefaultTimezone is where the venues are. It is only a default; every
// computation takes its location explicitly.
const DefaultTimezone = "America/Los_Angeles"

// DateKeyLayout formats dated-column headers such as "3/14/25".
const DateKeyLayout = "1/2/06"

var dayColumns = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// DayNames returns the day names in spreadsheet column order (Monday first).
func DayNames() []string {
	names := make([]string, len(dayColumns))
	for i, d := range dayColumns {
		names[i] = d.String()
	}
	return names
}

// ParseDayName maps a case-insensitive day name to its weekday.
func ParseDayName(s string) (time.Weekday, bool) {
	s = strings.TrimSpace(s)
	for _, d := range dayColumns {
		if strings.EqualFold(d.String(), s) {
			return d, true
		}
	}
	return time.Sunday, false
}

// LoadLocation resolves an IANA zone name. An empty name is rejected rather
// than silently falling back to UTC or the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("timezone is required")
	}
	return time.LoadLocation(name)
}

// CurrentDayName returns the weekday of t in loc.
func CurrentDayName(t time.Time, loc *time.Location) time.Weekday {
	return t.In(loc).Weekday()
}

// PreviousDay returns the cyclic predecessor; Sunday's is Saturday.
func PreviousDay(d time.Weekday) time.Weekday {
	return (d + 6) % 7
}

// DateKey formats t as a dated-column key ("M/D/YY").
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a "M/D/YY" key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, strings.TrimSpace(key), loc)
}

// NormalizeDateKey rewrites a dated-column key in canonical form, so
// "03/14/25" becomes "3/14/25".
func NormalizeDateKey(key string) (string, bool) {
	t, err := ParseDateKey(key, time.UTC)
	if err != nil {
		return "", false
	}
	return DateKey(t), true
}

// Moment is a single wall-clock reading projected into the reference zone.
type Moment struct {
	Time         time.Time
	Minute       int
	Day          time.Weekday
	Yesterday    time.Weekday
	DateKey      string
	YesterdayKey string
}

// MomentAt projects t into loc.
func MomentAt(t time.Time, loc *time.Location) Moment {
	local := t.In(loc)
	yesterday := local.AddDate(0, 0, -1)
	return Moment{
		Time:         local,
		Minute:       local.Hour()*60 + local.Minute(),
		Day:          local.Weekday(),
		Yesterday:    PreviousDay(local.Weekday()),
		DateKey:      DateKey(local),
		YesterdayKey: DateKey(yesterday),
	}
}

// WithMinute returns the same day with a different clock reading. Handy for
// asking "what about at 5pm today".
func (m Moment) WithMinute(minute int) Moment {
	m.Minute = minute
	return m
}

// Clock reads the current time in a fixed reference zone.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// NewClock returns a Clock over the system time.
func NewClock(loc *time.Location) *Clock {
	return &Clock{Location: loc, Now: time.Now}
}

// Moment returns the current reading.
func (c *Clock) Moment() Moment {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return MomentAt(now(), c.Location)
}

package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousDay(t *testing.T) {
	assert.Equal(t, time.Saturday, PreviousDay(time.Sunday))
	assert.Equal(t, time.Sunday, PreviousDay(time.Monday))
	assert.Equal(t, time.Thursday, PreviousDay(time.Friday))
}

func TestDayNames(t *testing.T) {
	assert.Equal(t,
		[]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		DayNames())

	d, ok := ParseDayName(" saturday ")
	assert.True(t, ok)
	assert.Equal(t, time.Saturday, d)
	_, ok = ParseDayName("Funday")
	assert.False(t, ok)
}

func TestMomentAt_ProjectsIntoLocation(t *testing.T) {
	// 07:30 UTC Friday is 23:30 Thursday eight hours west
	utc := time.Date(2025, 3, 14, 7, 30, 0, 0, time.UTC)
	m := MomentAt(utc, pacific)

	assert.Equal(t, 1410, m.Minute)
	assert.Equal(t, time.Thursday, m.Day)
	assert.Equal(t, time.Wednesday, m.Yesterday)
	assert.Equal(t, "3/13/25", m.DateKey)
	assert.Equal(t, "3/12/25", m.YesterdayKey)
}

func TestMomentAt_SameInstantDifferentZones(t *testing.T) {
	instant := time.Date(2025, 3, 14, 2, 0, 0, 0, time.UTC)
	east := time.FixedZone("EST", -5*60*60)

	ev := NewEvaluator(DefaultThresholds())
	src := WeeklyHours{"Thursday": {"20:00-22:00"}}

	// 21:00 in the east, 18:00 in the west
	assert.True(t, ev.IsActive(src, MomentAt(instant, east)))
	assert.False(t, ev.IsActive(src, MomentAt(instant, pacific)))
}

func TestClock_UsesInjectedNow(t *testing.T) {
	fixed := time.Date(2025, 3, 13, 17, 15, 0, 0, pacific)
	c := &Clock{Location: pacific, Now: func() time.Time { return fixed }}
	m := c.Moment()
	assert.Equal(t, 17*60+15, m.Minute)
	assert.Equal(t, time.Thursday, m.Day)
}

func TestLoadLocation(t *testing.T) {
	_, err := LoadLocation("")
	assert.Error(t, err)

	loc, err := LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestDateKeyRoundTrip(t *testing.T) {
	d, err := ParseDateKey("12/5/25", pacific)
	require.NoError(t, err)
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, "12/5/25", DateKey(d))

	_, err = ParseDateKey("2025-12-05", pacific)
	assert.Error(t, err)
}

func TestNormalizeDateKey(t *testing.T) {
	key, ok := NormalizeDateKey(" 03/04/25 ")
	assert.True(t, ok)
	assert.Equal(t, "3/4/25", key)

	_, ok = NormalizeDateKey("Event Name")
	assert.False(t, ok)
}

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"15:00", 900, true},
		{"3:05", 185, true},
		{" 0:00 ", 0, true},
		{"25:00", 1500, true},
		{"ab:00", 0, false},
		{"15", 0, false},
		{"15:xx", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseClockTime(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseClockTime(%q) ok", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "ParseClockTime(%q)", tt.in)
		}
	}
}

func TestParseRange(t *testing.T) {
	r, ok := ParseRange("17:00-19:00", true)
	assert.True(t, ok)
	assert.Equal(t, TimeRange{Start: 1020, End: 1140}, r)

	r, ok = ParseRange("22:00-2:00", true)
	assert.True(t, ok)
	assert.True(t, r.CrossesMidnight())

	_, ok = ParseRange("17:00", true)
	assert.False(t, ok)
	_, ok = ParseRange("17:00-18:00-19:00", true)
	assert.False(t, ok)
	_, ok = ParseRange("five-19:00", true)
	assert.False(t, ok)
}

func TestParseRange_TwelveHourShift(t *testing.T) {
	r, ok := ParseRange("3:00-7:00", false)
	assert.True(t, ok)
	assert.Equal(t, TimeRange{Start: 900, End: 1140}, r)

	// midnight and noon are not shifted
	r, ok = ParseRange("12:00-0:30", false)
	assert.True(t, ok)
	assert.Equal(t, TimeRange{Start: 720, End: 30}, r)
}

func TestParseRanges_SkipsBadParts(t *testing.T) {
	got := ParseRanges("11:30-14:00, nonsense, 17:00-19:00,", true)
	assert.Equal(t, []TimeRange{{690, 840}, {1020, 1140}}, got)
	assert.Empty(t, ParseRanges("", true))
}

func TestInRange_NonWrapping(t *testing.T) {
	r := TimeRange{Start: 900, End: 1080}
	assert.False(t, InRange(899, r))
	assert.True(t, InRange(900, r))
	assert.True(t, InRange(1079, r))
	assert.False(t, InRange(1080, r))
}

func TestInRange_MidnightCrossing(t *testing.T) {
	r := TimeRange{Start: 1320, End: 120}
	assert.False(t, InRange(1319, r))
	assert.True(t, InRange(1320, r))
	assert.True(t, InRange(0, r))
	assert.True(t, InRange(119, r))
	assert.False(t, InRange(120, r))
}

func TestInRange_ZeroWidth(t *testing.T) {
	r := TimeRange{Start: 600, End: 600}
	for now := 0; now < MinutesPerDay; now += 7 {
		assert.False(t, InRange(now, r), "now=%d", now)
	}
}

func TestTimeRange_DurationAndElapsed(t *testing.T) {
	assert.Equal(t, 180, TimeRange{900, 1080}.Duration())
	assert.Equal(t, 240, TimeRange{1320, 120}.Duration())
	assert.Equal(t, 0, TimeRange{600, 600}.Duration())

	wrap := TimeRange{1320, 120}
	assert.Equal(t, 30, wrap.Elapsed(1350))
	assert.Equal(t, 150, wrap.Elapsed(30))
}

func TestNormalizeRangeAndDetect(t *testing.T) {
	assert.Equal(t, "15:00-19:00", NormalizeRange("3:00-7:00", false))
	assert.Equal(t, "garbage", NormalizeRange("garbage", false))

	assert.True(t, DetectIs24h([]string{"3:00-7:00", "17:00-19:00"}))
	assert.False(t, DetectIs24h([]string{"3:00-7:00", "11:00-12:30"}))
}

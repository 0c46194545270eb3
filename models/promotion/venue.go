package promotion

import (
	"fmt"
	"strings"

	"hh-server/lifecycle"
)

// Venue is a business with its happy hours and specials.
type Venue struct {
	Name        string  `json:"name"`
	Area        string  `json:"area,omitempty"`
	Instagram   string  `json:"instagram,omitempty"`
	Website     string  `json:"website,omitempty"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`

	HappyHours []Entry `json:"happy_hours"`
	Specials   []Entry `json:"specials"`
}

// VenueFlags are the per-venue booleans the map and filters key off.
type VenueFlags struct {
	HasActiveHappyHour  bool `json:"has_active_happy_hour"`
	HasActiveSpecial    bool `json:"has_active_special"`
	HasWeekendHappyHour bool `json:"has_weekend_happy_hour"`
	HasWeekendSpecial   bool `json:"has_weekend_special"`
}

// Flags computes the venue's flags at m. Weekend flags do not depend on m.
func (v *Venue) Flags(ev *lifecycle.Evaluator, m lifecycle.Moment) VenueFlags {
	hh := Sources(v.HappyHours)
	sp := Sources(v.Specials)
	return VenueFlags{
		HasActiveHappyHour:  ev.AnyActive(hh, m),
		HasActiveSpecial:    ev.AnyActive(sp, m),
		HasWeekendHappyHour: lifecycle.AnyWeekendHours(hh),
		HasWeekendSpecial:   lifecycle.AnyWeekendHours(sp),
	}
}

// Key identifies the venue in the geo index. Names alone are not unique
// across the sheet, so coordinates are part of it.
func (v *Venue) Key() string {
	return fmt.Sprintf("%s|%.5f|%.5f", strings.TrimSpace(v.Name), v.Lat, v.Lng)
}

// HasCoordinates reports whether both coordinates were supplied.
func (v *Venue) HasCoordinates() bool {
	return !(v.Lat == 0 && v.Lng == 0)
}

// LastEntry returns the most recent entry for continuation rows: the last
// happy hour if there are any, else the last special.
func (v *Venue) LastEntry() *Entry {
	if n := len(v.HappyHours); n > 0 {
		return &v.HappyHours[n-1]
	}
	if n := len(v.Specials); n > 0 {
		return &v.Specials[n-1]
	}
	return nil
}

func (v *Venue) ToString() string {
	return fmt.Sprintf("Venue(name=%s, area=%s, lat=%f, lng=%f, hh=%d, specials=%d)",
		v.Name, v.Area, v.Lat, v.Lng, len(v.HappyHours), len(v.Specials))
}

// Coordinates is a lat/lng pair supplied outside the sheet.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// MenuOverride points a venue's special at a fixed menu page when the row's
// menu, name or notes mention Contains.
type MenuOverride struct {
	Venue    string `json:"venue" yaml:"venue"`
	Contains string `json:"contains" yaml:"contains"`
	URL      string `json:"url" yaml:"url"`
}

package services

import (
	"fmt"
	"strings"
	"time"

	"hh-server/lifecycle"
	"hh-server/models/promotion"
)

// PromotionType narrows a listing to one bucket.
type PromotionType string

const (
	PromotionAll       PromotionType = "all"
	PromotionHappyHour PromotionType = "happy-hour"
	PromotionSpecial   PromotionType = "special"
)

// SelectedToday means "whatever day it is in the reference zone".
const SelectedToday = "today"

// FilterState is owned by the caller and passed in whole; nothing here keeps
// filter state between requests.
type FilterState struct {
	ActiveOnly    bool          `json:"active_only"`
	PromotionType PromotionType `json:"promotion_type"`
	SelectedDay   string        `json:"selected_day"`
	Neighborhoods []string      `json:"neighborhoods,omitempty"`
	WeekendOnly   bool          `json:"weekend_only"`
}

// DefaultFilterState is what the map opens with: everything running right now.
func DefaultFilterState() FilterState {
	return FilterState{
		ActiveOnly:    true,
		PromotionType: PromotionAll,
		SelectedDay:   SelectedToday,
	}
}

// Validate checks the enumerated fields. Empty values are read as defaults.
func (f FilterState) Validate() error {
	switch f.PromotionType {
	case "", PromotionAll, PromotionHappyHour, PromotionSpecial:
	default:
		return fmt.Errorf("unknown promotion type %q", f.PromotionType)
	}
	if f.SelectedDay != "" && !strings.EqualFold(f.SelectedDay, SelectedToday) {
		if _, ok := lifecycle.ParseDayName(f.SelectedDay); !ok {
			return fmt.Errorf("unknown day %q", f.SelectedDay)
		}
	}
	return nil
}

func (f FilterState) today() bool {
	return f.SelectedDay == "" || strings.EqualFold(f.SelectedDay, SelectedToday)
}

// ApplyFilters returns the venues matching f at m, in input order.
//
// With ActiveOnly and today selected a venue must be running now. With
// ActiveOnly and another day selected it only needs hours on that day.
func ApplyFilters(venues []promotion.Venue, f FilterState, ev *lifecycle.Evaluator, m lifecycle.Moment) []promotion.Venue {
	wantHH := f.PromotionType != PromotionSpecial
	wantSp := f.PromotionType != PromotionHappyHour

	areas := make(map[string]struct{}, len(f.Neighborhoods))
	for _, a := range f.Neighborhoods {
		areas[a] = struct{}{}
	}

	var out []promotion.Venue
	for _, v := range venues {
		hh := promotion.Sources(v.HappyHours)
		sp := promotion.Sources(v.Specials)

		if f.PromotionType == PromotionHappyHour && len(hh) == 0 {
			continue
		}
		if f.PromotionType == PromotionSpecial && len(sp) == 0 {
			continue
		}

		if f.ActiveOnly {
			var match bool
			if f.today() {
				match = (wantHH && ev.AnyActive(hh, m)) || (wantSp && ev.AnyActive(sp, m))
			} else {
				day, _ := lifecycle.ParseDayName(f.SelectedDay)
				match = (wantHH && anyHoursOn(hh, day)) || (wantSp && anyHoursOn(sp, day))
			}
			if !match {
				continue
			}
		}

		if len(areas) > 0 {
			if _, ok := areas[v.Area]; !ok {
				continue
			}
		}

		if f.WeekendOnly && !lifecycle.AnyWeekendHours(hh) && !lifecycle.AnyWeekendHours(sp) {
			continue
		}

		out = append(out, v)
	}
	return out
}

func anyHoursOn(srcs []lifecycle.HoursSource, day time.Weekday) bool {
	for _, src := range srcs {
		if src.HasHoursOn(day) {
			return true
		}
	}
	return false
}

package lifecycle

import (
	"math"
	"time"
)

// Phase is the coarse visibility of a promotion at a moment.
type Phase string

const (
	PhaseHidden  Phase = "hidden"
	PhasePreshow Phase = "preshow"
	PhaseActive  Phase = "active"
)

const (
	// DefaultPreshowMinutes is how long before its start a promotion is shown.
	DefaultPreshowMinutes = 30
	// DefaultEndingSoonMinutes is the final stretch that gets the alert ring.
	DefaultEndingSoonMinutes = 45
	// DefaultComingSoonMinutes is the "coming soon" filter horizon.
	DefaultComingSoonMinutes = 300

	preshowOpacity = 0.8
	baseOpacity    = 0.8
	midGlow        = 0.5
)

// Thresholds are the product-tuned windows. Do not change the defaults
// without asking whoever owns the map.
type Thresholds struct {
	PreshowMinutes    int `json:"preshow_minutes" yaml:"preshow_minutes"`
	EndingSoonMinutes int `json:"ending_soon_minutes" yaml:"ending_soon_minutes"`
	ComingSoonMinutes int `json:"coming_soon_minutes" yaml:"coming_soon_minutes"`
}

// DefaultThresholds returns 30 / 45 / 300 minutes.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PreshowMinutes:    DefaultPreshowMinutes,
		EndingSoonMinutes: DefaultEndingSoonMinutes,
		ComingSoonMinutes: DefaultComingSoonMinutes,
	}
}

// State is the evaluator's projection of one source at one moment. It is
// never stored; every poll recomputes it.
type State struct {
	Visible    bool      `json:"visible"`
	Phase      Phase     `json:"phase"`
	Opacity    float64   `json:"opacity"`
	Glow       float64   `json:"glow"`
	EndingSoon bool      `json:"ending_soon"`
	Range      TimeRange `json:"range"`
	Lookback   bool      `json:"lookback,omitempty"`
}

// Hidden is the state of anything with nothing to show.
var Hidden = State{Phase: PhaseHidden}

// Evaluator applies the lifecycle rules with a fixed set of thresholds.
type Evaluator struct {
	Thresholds Thresholds
}

// NewEvaluator returns an Evaluator. Non-positive thresholds fall back to
// their defaults.
func NewEvaluator(t Thresholds) *Evaluator {
	def := DefaultThresholds()
	if t.PreshowMinutes <= 0 {
		t.PreshowMinutes = def.PreshowMinutes
	}
	if t.EndingSoonMinutes <= 0 {
		t.EndingSoonMinutes = def.EndingSoonMinutes
	}
	if t.ComingSoonMinutes <= 0 {
		t.ComingSoonMinutes = def.ComingSoonMinutes
	}
	return &Evaluator{Thresholds: t}
}

// Evaluate computes the lifecycle state of src at m.
//
// An active range today beats an active lookback range from yesterday,
// which beats any preshow. Within each tier the first range in column order
// wins.
func (e *Evaluator) Evaluate(src HoursSource, m Moment) State {
	if src == nil {
		return Hidden
	}
	now := m.Minute
	today := src.RangesFor(m)

	for _, r := range today {
		if InRange(now, r) {
			return e.active(r, r.Elapsed(now), r.Duration(), false)
		}
	}

	for _, r := range src.LookbackRangesFor(m) {
		if now < r.End {
			elapsed := now + (MinutesPerDay - r.Start)
			duration := (MinutesPerDay - r.Start) + r.End
			return e.active(r, elapsed, duration, true)
		}
	}

	for _, r := range today {
		if r.ZeroWidth() {
			continue
		}
		if now >= r.Start-e.Thresholds.PreshowMinutes && now < r.Start {
			return State{
				Visible: true,
				Phase:   PhasePreshow,
				Opacity: preshowOpacity,
				Glow:    0,
				Range:   r,
			}
		}
	}

	return Hidden
}

func (e *Evaluator) active(r TimeRange, elapsed, duration int, lookback bool) State {
	remaining := duration - elapsed
	soon := e.Thresholds.EndingSoonMinutes

	return State{
		Visible:    true,
		Phase:      PhaseActive,
		Opacity:    e.opacity(elapsed, duration, remaining),
		Glow:       e.glow(elapsed, duration, remaining),
		EndingSoon: remaining <= soon,
		Range:      r,
		Lookback:   lookback,
	}
}

// opacity sharpens from 0.8 as the window progresses and snaps to 1 for
// the final stretch.
func (e *Evaluator) opacity(elapsed, duration, remaining int) float64 {
	if remaining <= e.Thresholds.EndingSoonMinutes || duration <= 0 {
		return 1
	}
	return math.Min(1, baseOpacity+(1-baseOpacity)*(float64(elapsed)/float64(duration)))
}

// glow ramps 0→0.5 until the final stretch, then 0.5→1 across it. A window
// no longer than the final stretch is all final stretch.
func (e *Evaluator) glow(elapsed, duration, remaining int) float64 {
	soon := e.Thresholds.EndingSoonMinutes
	if duration <= soon {
		if duration <= 0 {
			return 1
		}
		return clamp01(midGlow + midGlow*float64(elapsed)/float64(duration))
	}
	if remaining > soon {
		return clamp01(midGlow * float64(elapsed) / float64(duration-soon))
	}
	return clamp01(midGlow + midGlow*float64(soon-remaining)/float64(soon))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// IsActive reports whether src is in its active phase at m.
func (e *Evaluator) IsActive(src HoursSource, m Moment) bool {
	return e.Evaluate(src, m).Phase == PhaseActive
}

// AnyActive reports whether any of the sources is active at m.
func (e *Evaluator) AnyActive(srcs []HoursSource, m Moment) bool {
	for _, src := range srcs {
		if e.IsActive(src, m) {
			return true
		}
	}
	return false
}

// ComingSoon reports whether src is not active but one of today's ranges
// starts within the configured horizon. Zero-width ranges never start.
func (e *Evaluator) ComingSoon(src HoursSource, m Moment) bool {
	return e.ComingSoonWithin(src, m, e.Thresholds.ComingSoonMinutes)
}

// ComingSoonWithin is ComingSoon with an explicit horizon in minutes.
func (e *Evaluator) ComingSoonWithin(src HoursSource, m Moment, horizon int) bool {
	if src == nil || src.Empty() {
		return false
	}
	if e.IsActive(src, m) {
		return false
	}
	for _, r := range src.RangesFor(m) {
		if r.ZeroWidth() {
			continue
		}
		until := ((r.Start-m.Minute)%MinutesPerDay + MinutesPerDay) % MinutesPerDay
		if until <= horizon {
			return true
		}
	}
	return false
}

// HasWeekendHours reports whether src lists anything on Saturday or Sunday.
func HasWeekendHours(src HoursSource) bool {
	if src == nil {
		return false
	}
	return src.HasHoursOn(time.Saturday) || src.HasHoursOn(time.Sunday)
}

// AnyWeekendHours is HasWeekendHours over several sources.
func AnyWeekendHours(srcs []HoursSource) bool {
	for _, src := range srcs {
		if HasWeekendHours(src) {
			return true
		}
	}
	return false
}

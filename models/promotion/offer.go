package promotion

import "hh-server/lifecycle"

// Offer is a limited-time event that only runs on specific dates.
type Offer struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Instagram   string               `json:"instagram,omitempty"`
	Link        string               `json:"link,omitempty"`
	Lat         float64              `json:"lat"`
	Lng         float64              `json:"lng"`
	Times       lifecycle.DatedHours `json:"times"`
}

// Entry adapts the offer to the common promotion shape.
func (o *Offer) Entry() Entry {
	return Entry{
		TypeLabel:   TypeLimited,
		Name:        o.Name,
		Description: o.Description,
		MenuURL:     o.Link,
		Dates:       o.Times,
	}
}

// Today returns the raw ranges listed for m's date, or "".
func (o *Offer) Today(m lifecycle.Moment) string {
	return o.Times[m.DateKey]
}

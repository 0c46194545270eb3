package util

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"hh-server/lifecycle"
	"hh-server/models/promotion"
)

const (
	venueHeaderMarker = "Business DBA"
	offerHeaderMarker = "event name"
	headerSearchLines = 10
	byteOrderMark     = "\uFEFF"
)

// Promotion description columns, best first.
var promoDescriptionColumns = []string{
	"Promo Description",
	"Promotion Description",
	"Running Promo Description",
	"Promo Details",
	"Description",
}

var (
	urlPattern     = regexp.MustCompile(`(?i)https?://[^\s)"]+`)
	dateColPattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`)
)

// ErrHeaderNotFound is returned when a sheet has no recognizable header row.
var ErrHeaderNotFound = errors.New("header row not found")

// VenueParseOptions carries the lookups the sheet itself cannot provide.
type VenueParseOptions struct {
	MissingCoords map[string]promotion.Coordinates
	MenuOverrides []promotion.MenuOverride
}

// csvRow gives header-keyed access to one record.
type csvRow struct {
	index  map[string]int
	record []string
}

func (r csvRow) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, byteOrderMark))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return index
}

func readRecords(text string, delimiter rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseVenuesCSV turns the published venue sheet into venues.
//
// The sheet may carry junk lines above the header; the header is the first of
// the first ten lines mentioning "Business DBA". A row with a business name
// starts a venue. A row with neither a name nor a promotion type but with
// hours adds those hours to the venue's latest promotion. Venues that end up
// without coordinates are dropped.
func ParseVenuesCSV(text string, opts VenueParseOptions) ([]promotion.Venue, error) {
	lines := strings.Split(text, "\n")
	start := -1
	for i := 0; i < len(lines) && i < headerSearchLines; i++ {
		if strings.Contains(lines[i], venueHeaderMarker) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, fmt.Errorf("venues sheet: %w", ErrHeaderNotFound)
	}

	records, err := readRecords(strings.Join(lines[start:], "\n"), ',')
	if err != nil {
		return nil, fmt.Errorf("venues sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("venues sheet: %w", ErrHeaderNotFound)
	}

	index := headerIndex(records[0])
	var (
		venues    []promotion.Venue
		located   []bool
		current   *promotion.Venue
		hasCoords bool
	)
	flush := func() {
		if current != nil {
			venues = append(venues, *current)
			located = append(located, hasCoords)
		}
	}

	for _, rec := range records[1:] {
		row := csvRow{index: index, record: rec}
		name := row.get("Business DBA")
		promoType := row.get("Promotion Type")
		hours := rowHours(row)

		if promoType == "" && name == "" && len(hours) == 0 {
			continue
		}

		if promoType == "" && name == "" && current != nil {
			if last := current.LastEntry(); last != nil {
				if last.Hours == nil {
					last.Hours = lifecycle.WeeklyHours{}
				}
				for _, day := range lifecycle.DayNames() {
					if ranges, ok := hours[day]; ok {
						last.Hours.Add(day, ranges...)
					}
				}
			}
			continue
		}

		if name != "" {
			flush()
			current = &promotion.Venue{
				Name:        name,
				Area:        row.get("Area"),
				Instagram:   row.get("Instagram"),
				Website:     row.get("Website"),
				Description: row.get("Description"),
			}
			current.Lat, current.Lng, hasCoords = rowCoordinates(row, "Lat", "Long")
			if !hasCoords {
				if c, ok := opts.MissingCoords[name]; ok {
					current.Lat, current.Lng, hasCoords = c.Lat, c.Lng, true
				}
			}
		}

		if current == nil {
			continue
		}

		menuField := row.get("Menu")
		notes := row.get("Notes")
		menuURL, menuDescription := parseMenuField(menuField)
		entry := promotion.Entry{
			MenuURL:         menuURL,
			MenuDescription: menuDescription,
			Description:     promoDescription(row, current.Description),
			Notes:           notes,
			Hours:           hours,
			TypeLabel:       firstNonEmpty(promoType, promotion.TypeDefault),
		}

		if entry.IsSpecial() {
			entry.Name = firstNonEmpty(menuDescription, notes, promotion.TypeSpecial)
			if url := overrideMenuURL(opts.MenuOverrides, current.Name, menuField, notes); url != "" {
				entry.MenuURL = url
			}
			current.Specials = append(current.Specials, entry)
		} else {
			current.HappyHours = append(current.HappyHours, entry)
		}
	}
	flush()

	out := make([]promotion.Venue, 0, len(venues))
	for i, v := range venues {
		if located[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// rowHours collects the day columns into weekly hours. Days with nothing
// listed are left out.
func rowHours(row csvRow) lifecycle.WeeklyHours {
	hours := lifecycle.WeeklyHours{}
	for _, day := range lifecycle.DayNames() {
		val := row.get(day)
		if val == "" {
			continue
		}
		for _, r := range strings.Split(val, ",") {
			if r = strings.TrimSpace(r); r != "" {
				hours.Add(day, r)
			}
		}
	}
	return hours
}

func rowCoordinates(row csvRow, latCol, lngCol string) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(row.get(latCol), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(row.get(lngCol), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

// parseMenuField splits the Menu cell into a link or a free-text description.
func parseMenuField(s string) (url, description string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s, ""
	}
	return "", s
}

// promoDescription returns the first filled description column. A value that
// just repeats the venue description is not a promotion description.
func promoDescription(row csvRow, venueDescription string) string {
	for _, col := range promoDescriptionColumns {
		if val := row.get(col); val != "" {
			if venueDescription != "" && val == venueDescription {
				return ""
			}
			return val
		}
	}
	return ""
}

func overrideMenuURL(overrides []promotion.MenuOverride, venue string, fields ...string) string {
	text := strings.ToLower(firstNonEmpty(fields...))
	for _, o := range overrides {
		if !strings.EqualFold(o.Venue, venue) {
			continue
		}
		if strings.Contains(text, strings.ToLower(o.Contains)) {
			return o.URL
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseOffersCSV turns the limited-offers sheet into offers. The sheet is
// sometimes exported tab-separated; that is detected by a comma parse that
// finds at most one column.
func ParseOffersCSV(text string) ([]promotion.Offer, error) {
	records, err := readRecords(text, ',')
	if err != nil || maxColumns(records) <= 1 {
		records, err = readRecords(text, '\t')
		if err != nil {
			return nil, fmt.Errorf("offers sheet: %w", err)
		}
	}

	start := -1
	for i, rec := range records {
		if hasCell(rec, offerHeaderMarker) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, fmt.Errorf("offers sheet: %w", ErrHeaderNotFound)
	}

	header := records[start]
	index := headerIndex(header)
	var offers []promotion.Offer
	for _, rec := range records[start+1:] {
		row := csvRow{index: index, record: rec}
		name := row.get("Event Name")
		lat, lng, ok := rowCoordinates(row, "Lat", "Long")
		if name == "" || !ok {
			continue
		}

		times := lifecycle.DatedHours{}
		for c, h := range header {
			key := strings.TrimSpace(h)
			if !dateColPattern.MatchString(key) || c >= len(rec) {
				continue
			}
			canonical, valid := lifecycle.NormalizeDateKey(key)
			if !valid {
				continue
			}
			if val := strings.TrimSpace(rec[c]); val != "" {
				times[canonical] = val
			}
		}

		offers = append(offers, promotion.Offer{
			Name:        name,
			Description: row.get("Description"),
			Instagram:   row.get("Venue Instagram"),
			Link:        row.get("Link"),
			Lat:         lat,
			Lng:         lng,
			Times:       times,
		})
	}
	return offers, nil
}

func maxColumns(records [][]string) int {
	max := 0
	for _, rec := range records {
		if len(rec) > max {
			max = len(rec)
		}
	}
	return max
}

func hasCell(rec []string, want string) bool {
	for _, cell := range rec {
		cell = strings.TrimSpace(strings.TrimPrefix(cell, byteOrderMark))
		if strings.ToLower(cell) == want {
			return true
		}
	}
	return false
}

// Neighborhoods returns the distinct non-empty areas, sorted.
func Neighborhoods(venues []promotion.Venue) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range venues {
		if v.Area == "" {
			continue
		}
		if _, ok := seen[v.Area]; ok {
			continue
		}
		seen[v.Area] = struct{}{}
		out = append(out, v.Area)
	}
	sort.Strings(out)
	return out
}

// ExtractURL returns the first http(s) URL in s, or "".
func ExtractURL(s string) string {
	return urlPattern.FindString(s)
}

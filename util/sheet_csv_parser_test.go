package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hh-server/lifecycle"
	"hh-server/models/promotion"
)

const venuesSheet = `Venice Happy Hours,,,,,,,,,,,,,,,,,
Last updated 3/1/25,,,,,,,,,,,,,,,,,
Business DBA,Area,Lat,Long,Instagram,Website,Description,Promotion Type,Menu,Notes,Promo Description,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday
Hinano Cafe,Venice,33.9850,-118.4695,https://instagram.com/hinano,,Dive bar by the pier,Happy Hour,https://hinano.example/menu,,,16:00-18:00,16:00-18:00,16:00-18:00,16:00-18:00,16:00-18:00,,
,,,,,,,,,,,,,,,"21:00-23:00, 23:30-1:00",,
,,,,,,,Special,Taco night,"$3 tacos, see https://hinano.example/tacos",,,17:00-21:00,,,,,
Cou Cou,Venice,33.9901,-118.4650,,,French bistro,Special,Martini Monday,,,20:00-22:00,,,,,,
Amigos Birria Tacos,Mar Vista,,,,,Tacos,,,,,,,,,,12:00-15:00,
No Coords Bar,Venice,,,,,,Happy Hour,,,,15:00-17:00,,,,,,
,,,,,,,,,,,,,,,,,
Gjelina,Abbot Kinney,33.9907,-118.4649,,,Californian,Happy Hour,Small plates,,Californian,,,,,,,
`

func parseOpts() VenueParseOptions {
	return VenueParseOptions{
		MissingCoords: map[string]promotion.Coordinates{
			"Amigos Birria Tacos": {Lat: 33.9870, Lng: -118.4727},
		},
		MenuOverrides: []promotion.MenuOverride{
			{Venue: "cou cou", Contains: "martini monday", URL: "https://coucou.example/martini-monday"},
		},
	}
}

func TestParseVenuesCSV(t *testing.T) {
	venues, err := ParseVenuesCSV(venuesSheet, parseOpts())
	require.NoError(t, err)
	require.Len(t, venues, 4)

	names := make([]string, len(venues))
	for i, v := range venues {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"Hinano Cafe", "Cou Cou", "Amigos Birria Tacos", "Gjelina"}, names)
}

func TestParseVenuesCSV_VenueFieldsAndContinuation(t *testing.T) {
	venues, err := ParseVenuesCSV(venuesSheet, parseOpts())
	require.NoError(t, err)
	hinano := venues[0]

	assert.Equal(t, "Venice", hinano.Area)
	assert.InDelta(t, 33.9850, hinano.Lat, 1e-9)
	assert.InDelta(t, -118.4695, hinano.Lng, 1e-9)
	assert.Equal(t, "https://instagram.com/hinano", hinano.Instagram)

	require.Len(t, hinano.HappyHours, 1)
	hh := hinano.HappyHours[0]
	assert.Equal(t, "Happy Hour", hh.TypeLabel)
	assert.Equal(t, "https://hinano.example/menu", hh.MenuURL)
	assert.Empty(t, hh.MenuDescription)
	// continuation row lands on the happy hour, not the special that follows
	assert.Equal(t, []string{"16:00-18:00", "21:00-23:00", "23:30-1:00"}, hh.Hours["Friday"])

	require.Len(t, hinano.Specials, 1)
	sp := hinano.Specials[0]
	assert.Equal(t, promotion.TypeSpecial, sp.TypeLabel)
	assert.Equal(t, "Taco night", sp.Name)
	assert.Equal(t, "$3 tacos, see https://hinano.example/tacos", sp.Notes)
	assert.Equal(t, []string{"17:00-21:00"}, sp.Hours["Tuesday"])
}

func TestParseVenuesCSV_MenuOverride(t *testing.T) {
	venues, err := ParseVenuesCSV(venuesSheet, parseOpts())
	require.NoError(t, err)
	coucou := venues[1]
	require.Len(t, coucou.Specials, 1)
	assert.Equal(t, "https://coucou.example/martini-monday", coucou.Specials[0].MenuURL)
	assert.Equal(t, "Martini Monday", coucou.Specials[0].Name)
}

func TestParseVenuesCSV_MissingCoordsAndDefaultLabel(t *testing.T) {
	venues, err := ParseVenuesCSV(venuesSheet, parseOpts())
	require.NoError(t, err)
	amigos := venues[2]
	assert.InDelta(t, 33.9870, amigos.Lat, 1e-9)
	require.Len(t, amigos.HappyHours, 1)
	assert.Equal(t, promotion.TypeDefault, amigos.HappyHours[0].TypeLabel)
	assert.Equal(t, []string{"12:00-15:00"}, amigos.HappyHours[0].Hours["Saturday"])
}

func TestParseVenuesCSV_PromoDescriptionIgnoresVenueDescription(t *testing.T) {
	venues, err := ParseVenuesCSV(venuesSheet, parseOpts())
	require.NoError(t, err)
	gjelina := venues[3]
	require.Len(t, gjelina.HappyHours, 1)
	assert.Empty(t, gjelina.HappyHours[0].Description)
	assert.Equal(t, "Small plates", gjelina.HappyHours[0].MenuDescription)
}

func TestParseVenuesCSV_NoHeader(t *testing.T) {
	_, err := ParseVenuesCSV("a,b,c\n1,2,3\n", VenueParseOptions{})
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

const offersSheet = "\uFEFFEvent Name,Description,Venue Instagram,Link,Lat,Long,3/13/25,3/14/25\n" +
	"Pop-up Dinner,Chef collab,https://instagram.com/popup,https://popup.example,33.99,-118.47,18:00-21:00,\n" +
	"No Coords,,,,,,18:00-21:00,\n" +
	",Missing name,,,33.99,-118.47,18:00-21:00,\n" +
	"Late Show,,,,33.98,-118.46,,22:00-1:00\n"

func TestParseOffersCSV(t *testing.T) {
	offers, err := ParseOffersCSV(offersSheet)
	require.NoError(t, err)
	require.Len(t, offers, 2)

	popup := offers[0]
	assert.Equal(t, "Pop-up Dinner", popup.Name)
	assert.Equal(t, "Chef collab", popup.Description)
	assert.Equal(t, "https://instagram.com/popup", popup.Instagram)
	assert.Equal(t, "https://popup.example", popup.Link)
	assert.Equal(t, "18:00-21:00", popup.Times["3/13/25"])
	_, listed := popup.Times["3/14/25"]
	assert.False(t, listed)

	assert.Equal(t, "22:00-1:00", offers[1].Times["3/14/25"])
}

func TestParseOffersCSV_TabSeparated(t *testing.T) {
	sheet := "Limited offers\n" +
		"Event Name\tLat\tLong\t3/15/25\n" +
		"Beach Bonfire\t33.98\t-118.47\t19:00-22:00\n"
	offers, err := ParseOffersCSV(sheet)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "19:00-22:00", offers[0].Times["3/15/25"])
}

func TestParseOffersCSV_ZeroPaddedDates(t *testing.T) {
	sheet := "Event Name,Lat,Long,03/14/25,3/15/25\n" +
		"Pop-up Dinner,33.98,-118.47,18:00-21:00,\n"
	offers, err := ParseOffersCSV(sheet)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, lifecycle.DatedHours{"3/14/25": "18:00-21:00"}, offers[0].Times)
}

func TestParseOffersCSV_NoHeader(t *testing.T) {
	_, err := ParseOffersCSV("a,b\n1,2\n")
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestNeighborhoods(t *testing.T) {
	venues := []promotion.Venue{{Area: "Venice"}, {Area: ""}, {Area: "Abbot Kinney"}, {Area: "Venice"}}
	assert.Equal(t, []string{"Abbot Kinney", "Venice"}, Neighborhoods(venues))
	assert.Empty(t, Neighborhoods(nil))
}

func TestExtractURL(t *testing.T) {
	assert.Equal(t, "https://a.example/menu", ExtractURL("see (https://a.example/menu) today"))
	assert.Equal(t, "HTTP://b.example", ExtractURL("HTTP://b.example and more"))
	assert.Equal(t, "", ExtractURL("no links here"))
}

package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"hh-server/lifecycle"
)

var pacific = time.FixedZone("PST", -8*60*60)

// thursdayAt is Thursday 2025-03-13 at hour:minute.
func thursdayAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 13, hour, minute, 0, 0, pacific)
}

func momentAt(hour, minute int) lifecycle.Moment {
	return lifecycle.MomentAt(thursdayAt(hour, minute), pacific)
}

// stubSheets serves fixed sheet text and counts fetches.
type stubSheets struct {
	mu        sync.Mutex
	venues    string
	offers    string
	venuesErr error
	offersErr error
	fetches   int
}

func (s *stubSheets) FetchVenuesCSV(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.venues, s.venuesErr
}

func (s *stubSheets) FetchOffersCSV(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offers, s.offersErr
}

func (s *stubSheets) set(venues string, venuesErr, offersErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues, s.venuesErr, s.offersErr = venues, venuesErr, offersErr
}

func (s *stubSheets) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

var errSheetDown = errors.New("sheet down")

const testVenuesSheet = `Business DBA,Area,Lat,Long,Instagram,Website,Description,Promotion Type,Menu,Notes,Promo Description,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday
Hinano Cafe,Venice,33.9850,-118.4695,,,Dive bar,Happy Hour,https://hinano.example/menu,,,,,,16:00-18:00,16:00-18:00,,
,,,,,,,Special,Taco night,See https://hinano.example/tacos,,,,,20:00-23:00,,,
Gjelina,Abbot Kinney,33.9907,-118.4649,,,Californian,Happy Hour,,,Oysters https://gjelina.example/hh,,,,17:30-19:00,,12:00-15:00,
Downtown Bar,DTLA,34.0522,-118.2437,,,,Happy Hour,,,,,,,22:00-1:00,,,
`

const testOffersSheet = `Event Name,Description,Venue Instagram,Link,Lat,Long,3/13/25,3/14/25
Chef Pop-up Dinner,Six courses,,https://popup.example,33.9880,-118.4720,18:00-21:00,
`

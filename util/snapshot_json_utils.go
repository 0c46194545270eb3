package util

import (
	"encoding/json"
	"fmt"
	"os"

	"hh-server/models/promotion"
)

// ReadVenuesFromJSON loads a venue list from JSON on disk.
func ReadVenuesFromJSON(filePath string) ([]promotion.Venue, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var venues []promotion.Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venues: %w", err)
	}
	return venues, nil
}

// ReadOffersFromJSON loads an offer list from JSON on disk.
func ReadOffersFromJSON(filePath string) ([]promotion.Offer, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var offers []promotion.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offers: %w", err)
	}
	return offers, nil
}

// WriteJSON writes v to filePath, indented.
func WriteJSON(filePath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", filePath, err)
	}
	return nil
}

// PrintVenuesPartially prints key fields of each venue.
func PrintVenuesPartially(venues []promotion.Venue) {
	fmt.Printf("Venues: %d\n", len(venues))
	for _, v := range venues {
		fmt.Printf("  %s (%s) at (%.6f, %.6f): %d happy hours, %d specials\n",
			v.Name, v.Area, v.Lat, v.Lng, len(v.HappyHours), len(v.Specials))
	}
}

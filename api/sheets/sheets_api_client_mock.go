package sheets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const VENUES_CSV_FILE = "venues.csv"
const OFFERS_CSV_FILE = "limited_offers.csv"

// SheetsApiClientMock serves the sheets from files on disk.
type SheetsApiClientMock struct {
	VenuesPath string
	OffersPath string
}

// NewSheetsApiClientMock creates a new instance of SheetsApiClientMock reading
// the two sheets from resourceDir.
func NewSheetsApiClientMock(resourceDir string) *SheetsApiClientMock {
	return &SheetsApiClientMock{
		VenuesPath: filepath.Join(resourceDir, VENUES_CSV_FILE),
		OffersPath: filepath.Join(resourceDir, OFFERS_CSV_FILE),
	}
}

func (c *SheetsApiClientMock) FetchVenuesCSV(ctx context.Context) (string, error) {
	return readSheet(ctx, c.VenuesPath)
}

func (c *SheetsApiClientMock) FetchOffersCSV(ctx context.Context) (string, error) {
	return readSheet(ctx, c.OffersPath)
}

func readSheet(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read sheet %q: %w", path, err)
	}
	return string(data), nil
}

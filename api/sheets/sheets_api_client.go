package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"hh-server/api"
)

// SheetsApiClient embeds the common HTTPClient and reads published CSV links.
type SheetsApiClient struct {
	*api.HTTPClient

	venuesURL string
	offersURL string
}

// NewSheetsApiClient creates a new instance of SheetsApiClient. The URLs are
// complete, so the embedded client should have an empty base URL.
func NewSheetsApiClient(httpClient *api.HTTPClient, venuesURL, offersURL string) *SheetsApiClient {
	return &SheetsApiClient{
		HTTPClient: httpClient,
		venuesURL:  venuesURL,
		offersURL:  offersURL,
	}
}

// FetchVenuesCSV downloads the venue sheet.
func (c *SheetsApiClient) FetchVenuesCSV(ctx context.Context) (string, error) {
	if c.venuesURL == "" {
		return "", errors.New("venues sheet URL is not configured")
	}
	body, err := c.RequestText(ctx, http.MethodGet, c.venuesURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch venues sheet: %w", err)
	}
	return body, nil
}

// FetchOffersCSV downloads the limited-offers sheet. An unset URL means the
// deployment has no offers and yields an empty sheet.
func (c *SheetsApiClient) FetchOffersCSV(ctx context.Context) (string, error) {
	if c.offersURL == "" {
		return "", nil
	}
	body, err := c.RequestText(ctx, http.MethodGet, c.offersURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch offers sheet: %w", err)
	}
	return body, nil
}

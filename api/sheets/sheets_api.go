package sheets

import "context"

// SheetsAPI fetches the published spreadsheets as raw CSV text.
type SheetsAPI interface {
	FetchVenuesCSV(ctx context.Context) (string, error)
	FetchOffersCSV(ctx context.Context) (string, error)
}

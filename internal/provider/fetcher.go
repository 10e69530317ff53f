// Package provider contains the remote market-data collaborators. Each one
// returns the raw Table shape that ingestion.Normalize understands, so a
// downloaded series goes through the same column resolution as a file.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

// ErrMissingToken is returned when a provider that needs credentials is
// built without them.
var ErrMissingToken = errors.New("provider token is required")

// Fetcher downloads daily bars for one symbol.
//
// An empty Table (zero rows) is a valid answer meaning "no data in range".
type Fetcher interface {
	Name() string
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.Table, error)
}

// canonicalHeader is the header every fetcher emits.
var canonicalHeader = []string{
	string(models.ColumnDate),
	string(models.ColumnOpen),
	string(models.ColumnHigh),
	string(models.ColumnLow),
	string(models.ColumnClose),
	string(models.ColumnVolume),
}

func header() []string {
	return append([]string(nil), canonicalHeader...)
}

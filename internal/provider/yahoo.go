package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

// barIterator is the subset of *chart.Iter the fetcher consumes.
type barIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// YahooFetcher downloads daily bars from Yahoo Finance.
type YahooFetcher struct {
	open func(*chart.Params) barIterator
}

// NewYahooFetcher builds a fetcher backed by the finance-go chart API.
func NewYahooFetcher() *YahooFetcher {
	return &YahooFetcher{
		open: func(p *chart.Params) barIterator { return chart.Get(p) },
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// FetchDaily iterates the chart for [start, end] at one-day interval.
// Bar timestamps become UTC dates; prices keep four decimals.
func (f *YahooFetcher) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// The chart API treats End as exclusive.
	endExclusive := end.AddDate(0, 0, 1)
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&endExclusive),
		Interval: datetime.OneDay,
	}

	t := &models.Table{Header: header()}
	iter := f.open(params)
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar := iter.Bar()
		if bar == nil {
			continue
		}
		t.Rows = append(t.Rows, []string{
			time.Unix(int64(bar.Timestamp), 0).UTC().Format(models.DateLayout),
			bar.Open.StringFixed(4),
			bar.High.StringFixed(4),
			bar.Low.StringFixed(4),
			bar.Close.StringFixed(4),
			strconv.Itoa(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	logger.Component("provider").Info().
		Str("provider", f.Name()).
		Str("symbol", symbol).
		Int("rows", t.Len()).
		Msg("daily bars fetched")
	return t, nil
}

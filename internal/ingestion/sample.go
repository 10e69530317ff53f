package ingestion

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

// SampleConfig controls the synthetic fallback series.
//
// Fields:
//   - Start, End: inclusive date range; only weekdays produce bars.
//   - Seed: random walk seed. The same seed always yields the same frame.
//   - BasePrice: first close. Values <= 0 fall back to 100.
type SampleConfig struct {
	Symbol    string
	Start     time.Time
	End       time.Time
	Seed      uint64
	BasePrice float64
}

// DefaultSampleConfig covers the first quarter of 2024.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Symbol:    "SAMPLE",
		Start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Seed:      42,
		BasePrice: 100,
	}
}

// SampleFrame generates a seeded random-walk OHLCV frame with every column
// present. Each bar satisfies Bar.Consistent.
func SampleFrame(cfg SampleConfig) *models.Frame {
	base := cfg.BasePrice
	if base <= 0 {
		base = 100
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	days := Weekdays(cfg.Start, cfg.End)
	frame := &models.Frame{
		Symbol:  cfg.Symbol,
		Bars:    make([]models.Bar, 0, len(days)),
		Columns: make(map[models.Column]bool, len(models.PriceColumns)),
	}
	for _, c := range models.PriceColumns {
		frame.Columns[c] = true
	}

	prevClose := base
	for _, d := range days {
		open := prevClose * (1 + rng.NormFloat64()*0.005)
		closePx := open * (1 + rng.NormFloat64()*0.02)
		if closePx <= 0 {
			closePx = open
		}
		high := math.Max(open, closePx) * (1 + rng.Float64()*0.01)
		low := math.Min(open, closePx) * (1 - rng.Float64()*0.01)
		volume := float64(1_000_000 + rng.IntN(9_000_000))

		frame.Bars = append(frame.Bars, models.Bar{
			Date:   d,
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePx),
			Volume: volume,
		})
		prevClose = closePx
	}

	logger.Component("ingestion").Info().
		Str("symbol", cfg.Symbol).
		Int("rows", frame.Len()).
		Uint64("seed", cfg.Seed).
		Msg("generated sample data")
	return frame
}

// round2 rounds to cents. Rounding is monotonic, so the OHLC ordering holds.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

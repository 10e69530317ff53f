package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot/vg"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/series"
)

// Volatility draws the rolling standard deviation of daily returns over
// o.VolatilityWindow bars as a purple line.
func Volatility(w io.Writer, f *models.Frame, o Options) error {
	p := newPlot(titleFor(f, fmt.Sprintf("%d-Day Rolling Volatility", o.VolatilityWindow)))
	p.Y.Label.Text = "Volatility (%)"
	useDateAxis(p, f, o)

	if f.Has(models.ColumnClose) {
		vol, err := series.RollingVolatility(f, o.VolatilityWindow)
		if err != nil {
			return fmt.Errorf("volatility: %w", err)
		}
		drawn, err := addLine(p, vol, "Volatility", lineStyle(colorPurple, vg.Points(1.5), false))
		if err != nil {
			return err
		}
		if !drawn {
			logger.Component("chart").Warn().
				Int("rows", f.Len()).
				Int("window", o.VolatilityWindow).
				Msg("series shorter than volatility window, nothing to draw")
		}
	} else {
		logger.Component("chart").Warn().Str("kind", string(KindVolatility)).Msg("close column missing, volatility omitted")
	}
	p.X.Min, p.X.Max = -0.5, float64(f.Len())-0.5

	return writePNG(w, o, p.Draw)
}

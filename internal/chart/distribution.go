package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/series"
)

// ReturnDistribution draws a histogram of the defined daily returns with a
// Gaussian kernel density curve scaled to bin counts.
func ReturnDistribution(w io.Writer, f *models.Frame, o Options) error {
	lg := logger.Component("chart")
	p := newPlot(titleFor(f, "Daily Return Distribution"))
	p.X.Label.Text = "Daily Return (%)"
	p.Y.Label.Text = "Frequency"

	var returns []float64
	if f.Has(models.ColumnClose) {
		r, err := series.DailyReturn(f)
		if err != nil {
			return fmt.Errorf("distribution: %w", err)
		}
		returns = series.Defined(r)
	} else {
		lg.Warn().Str("kind", string(KindDistribution)).Msg("close column missing, distribution omitted")
	}

	if len(returns) > 0 {
		bins := o.Bins
		if bins < 1 {
			bins = 1
		}
		h, err := plotter.NewHist(plotter.Values(returns), bins)
		if err != nil {
			return fmt.Errorf("histogram: %w", err)
		}
		h.FillColor = colorHist
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add("Returns", h)

		if kde, err := series.KernelDensity(returns); err == nil {
			// Density integrates to 1; counts integrate to n * bin width.
			scale := float64(len(returns)) * h.Width
			xs, ys := kde.Evaluate(200)
			pts := make(plotter.XYs, len(xs))
			for i := range xs {
				pts[i] = plotter.XY{X: xs[i], Y: ys[i] * scale}
			}
			curve, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("density: %w", err)
			}
			curve.LineStyle = lineStyle(colorDown, vg.Points(1.5), false)
			p.Add(curve)
			p.Legend.Add("KDE", curve)
		} else {
			lg.Debug().Err(err).Msg("density curve omitted")
		}
	}

	return writePNG(w, o, p.Draw)
}

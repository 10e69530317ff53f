package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/series"
)

// candles draws one body and wick per consistent bar at x = bar index.
type candles struct {
	bars      []models.Bar
	dirs      []models.Direction
	bodyWidth float64 // in x units
}

func (c *candles) Plot(cv draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&cv)
	half := c.bodyWidth / 2
	for i, b := range c.bars {
		if !b.Consistent() {
			continue
		}
		col := directionColor(c.dirs[i])
		x := float64(i)
		wick := draw.LineStyle{Color: col, Width: vg.Points(1)}
		cv.StrokeLine2(wick, trX(x), trY(b.Low), trX(x), trY(b.High))

		x0, x1 := trX(x-half), trX(x+half)
		y0, y1 := trY(math.Min(b.Open, b.Close)), trY(math.Max(b.Open, b.Close))
		if y1-y0 < vg.Points(1) {
			cv.StrokeLine2(wick, x0, y0, x1, y0)
			continue
		}
		cv.FillPolygon(col, cv.ClipPolygonXY([]vg.Point{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		}))
	}
}

func (c *candles) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(c.bars))-0.5
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, b := range c.bars {
		if !b.Consistent() {
			continue
		}
		ymin = math.Min(ymin, b.Low)
		ymax = math.Max(ymax, b.High)
	}
	if math.IsInf(ymin, 0) {
		ymin, ymax = 0, 1
	}
	return xmin, xmax, ymin, ymax
}

// Candlestick draws daily candles colored by the sign of the daily return,
// overlaid with the moving averages in o.MAWindows.
//
// Behavior:
//   - Bars missing a price or violating low <= open/close <= high are
//     skipped; the count is logged.
//   - Without a close column the moving averages are omitted.
func Candlestick(w io.Writer, f *models.Frame, o Options) error {
	lg := logger.Component("chart")
	p := newPlot(titleFor(f, "Candlestick"))
	p.Y.Label.Text = "Price"
	useDateAxis(p, f, o)

	dirs := make([]models.Direction, f.Len())
	if returns, err := series.DailyReturn(f); err == nil {
		dirs = series.Directions(returns)
	}

	skipped := 0
	for _, b := range f.Bars {
		if !b.Consistent() {
			skipped++
		}
	}
	if skipped > 0 {
		lg.Warn().Int("skipped", skipped).Str("kind", string(KindCandlestick)).Msg("bars without consistent OHLC skipped")
	}
	p.Add(&candles{bars: f.Bars, dirs: dirs, bodyWidth: 0.6})

	if f.Has(models.ColumnClose) {
		for i, window := range o.MAWindows {
			ma, err := series.MovingAverage(f, window)
			if err != nil {
				return fmt.Errorf("candlestick ma%d: %w", window, err)
			}
			style := lineStyle(overlayColors[i%len(overlayColors)], vg.Points(1.5), false)
			if _, err := addLine(p, ma, "MA"+strconv.Itoa(window), style); err != nil {
				return err
			}
		}
	} else {
		lg.Warn().Str("kind", string(KindCandlestick)).Msg("close column missing, moving averages omitted")
	}

	return writePNG(w, o, p.Draw)
}

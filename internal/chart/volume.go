package chart

import (
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/series"
)

// volumeBars draws one bar per defined volume at x = bar index.
type volumeBars struct {
	volumes []float64
	dirs    []models.Direction
	width   float64
}

func (v *volumeBars) Plot(cv draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&cv)
	half := v.width / 2
	for i, vol := range v.volumes {
		if math.IsNaN(vol) || vol <= 0 {
			continue
		}
		x := float64(i)
		x0, x1 := trX(x-half), trX(x+half)
		y0, y1 := trY(0), trY(vol)
		cv.FillPolygon(directionColor(v.dirs[i]), cv.ClipPolygonXY([]vg.Point{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		}))
	}
}

func (v *volumeBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(v.volumes))-0.5
	for _, vol := range v.volumes {
		if !math.IsNaN(vol) {
			ymax = math.Max(ymax, vol)
		}
	}
	if ymax == 0 {
		ymax = 1
	}
	return xmin, xmax, 0, ymax
}

// VolumePanel draws the close price over the top three quarters of the
// canvas and direction-colored volume bars with a dashed mean line below.
// A missing close or vol column leaves its panel empty.
func VolumePanel(w io.Writer, f *models.Frame, o Options) error {
	lg := logger.Component("chart")

	price := newPlot(titleFor(f, "Price and Volume"))
	price.Y.Label.Text = "Price"
	price.X.Tick.Marker = dateTicker{dates: f.Dates(), count: o.DateTicks, unlabeled: true}
	if f.Has(models.ColumnClose) {
		if _, err := addLine(price, f.Closes(), "Close", lineStyle(colorPrice, vg.Points(1.5), false)); err != nil {
			return err
		}
	} else {
		lg.Warn().Str("kind", string(KindVolume)).Msg("close column missing, price line omitted")
	}

	volume := newPlot("")
	volume.Y.Label.Text = "Volume"
	useDateAxis(volume, f, o)
	if f.Has(models.ColumnVolume) {
		dirs := make([]models.Direction, f.Len())
		if returns, err := series.DailyReturn(f); err == nil {
			dirs = series.Directions(returns)
		}
		vols := f.Values(models.ColumnVolume)
		volume.Add(&volumeBars{volumes: vols, dirs: dirs, width: 0.8})

		if mean := series.Mean(vols); !math.IsNaN(mean) {
			ref := plotter.NewFunction(func(float64) float64 { return mean })
			ref.LineStyle = lineStyle(colorMean, vg.Points(1.5), true)
			volume.Add(ref)
			volume.Legend.Add("Mean volume: "+strconv.FormatFloat(mean, 'f', 0, 64), ref)
		}
	} else {
		lg.Warn().Str("kind", string(KindVolume)).Msg("vol column missing, volume bars omitted")
	}

	// Both panels share the bar index as x.
	xmin, xmax := -0.5, float64(f.Len())-0.5
	price.X.Min, price.X.Max = xmin, xmax
	volume.X.Min, volume.X.Max = xmin, xmax

	return writePNG(w, o, func(dc draw.Canvas) {
		h := dc.Max.Y - dc.Min.Y
		price.Draw(draw.Crop(dc, 0, 0, h/4, 0))
		volume.Draw(draw.Crop(dc, 0, 0, 0, -3*h/4))
	})
}

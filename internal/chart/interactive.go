package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/series"
)

// Interactive writes a self-contained HTML page with the close price (with
// point markers) and a dashed moving average of o.InteractiveMA bars. The
// page has an axis tooltip, a legend and a data-zoom slider.
func Interactive(w io.Writer, f *models.Frame, o Options) error {
	title := titleFor(f, "Interactive Price Analysis")
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price", Scale: opts.Bool(true)}),
	)

	dates := make([]string, f.Len())
	for i, d := range f.Dates() {
		dates[i] = d.Format(models.DateLayout)
	}
	line.SetXAxis(dates)

	if f.Has(models.ColumnClose) {
		line.AddSeries("Close", lineData(f.Closes()),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		)
		ma, err := series.MovingAverage(f, o.InteractiveMA)
		if err != nil {
			return fmt.Errorf("interactive ma%d: %w", o.InteractiveMA, err)
		}
		line.AddSeries("MA"+strconv.Itoa(o.InteractiveMA), lineData(ma),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
		)
	} else {
		logger.Component("chart").Warn().Str("kind", string(KindInteractive)).Msg("close column missing, price series omitted")
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// lineData maps undefined values to "-", which echarts draws as a gap.
func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = opts.LineData{Value: "-"}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}

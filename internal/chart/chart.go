// Package chart renders a normalized frame into image and HTML artifacts.
//
// Static charts are drawn with gonum/plot onto a PNG canvas; the
// interactive chart is a self-contained go-echarts page. Every renderer
// writes to an io.Writer and recomputes the series it needs.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

// Kind identifies one chart artifact.
type Kind string

const (
	KindCandlestick  Kind = "candlestick"
	KindVolume       Kind = "volume"
	KindVolatility   Kind = "volatility"
	KindDistribution Kind = "distribution"
	KindInteractive  Kind = "interactive"
)

// Kinds lists every chart kind in the order they are produced.
var Kinds = []Kind{KindCandlestick, KindVolume, KindVolatility, KindDistribution, KindInteractive}

// ErrUnknownKind is returned by ParseKind for an unsupported name.
var ErrUnknownKind = errors.New("unknown chart kind")

// ParseKind converts a name (case-insensitive) into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// FileName returns the artifact file name for the given prefix.
func (k Kind) FileName(prefix string) string {
	switch k {
	case KindCandlestick:
		return prefix + "_candlestick.png"
	case KindVolume:
		return prefix + "_volume_analysis.png"
	case KindVolatility:
		return prefix + "_volatility.png"
	case KindDistribution:
		return prefix + "_return_distribution.png"
	case KindInteractive:
		return prefix + "_interactive_analysis.html"
	default:
		return prefix + "_" + string(k)
	}
}

// ContentType returns the MIME type of the artifact.
func (k Kind) ContentType() string {
	if k == KindInteractive {
		return "text/html; charset=utf-8"
	}
	return "image/png"
}

// Options tunes every renderer.
//
// Fields:
//   - Width, Height, DPI: PNG canvas size.
//   - MAWindows: moving averages drawn over the candlesticks.
//   - InteractiveMA: moving average window on the interactive chart.
//   - VolatilityWindow: window of the rolling volatility line.
//   - Bins: histogram bins for the return distribution.
//   - DateTicks: approximate number of labeled dates on the x axis.
type Options struct {
	Width            vg.Length
	Height           vg.Length
	DPI              int
	MAWindows        []int
	InteractiveMA    int
	VolatilityWindow int
	Bins             int
	DateTicks        int
}

// DefaultOptions mirrors the classic 12x6 inch figures.
func DefaultOptions() Options {
	return Options{
		Width:            12 * vg.Inch,
		Height:           6 * vg.Inch,
		DPI:              100,
		MAWindows:        []int{5, 20},
		InteractiveMA:    10,
		VolatilityWindow: 20,
		Bins:             50,
		DateTicks:        10,
	}
}

var (
	colorUp       = color.RGBA{R: 0x2e, G: 0x9e, B: 0x44, A: 0xff}
	colorDown     = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	colorFlat     = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorPrice    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	colorPurple   = color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}
	colorHist     = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	colorMean     = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	overlayColors = []color.Color{
		color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
		color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
		color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	}
)

func directionColor(d models.Direction) color.Color {
	switch d {
	case models.Up:
		return colorUp
	case models.Down:
		return colorDown
	default:
		return colorFlat
	}
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	return p
}

func titleFor(f *models.Frame, what string) string {
	if f.Symbol == "" {
		return what
	}
	return f.Symbol + " " + what
}

// writePNG renders onto a fresh canvas and encodes it as PNG. The canvas is
// discarded when the call returns.
func writePNG(w io.Writer, o Options, render func(dc draw.Canvas)) error {
	img := vgimg.NewWith(vgimg.UseWH(o.Width, o.Height), vgimg.UseDPI(o.DPI))
	render(draw.New(img))
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// dateTicker labels integer bar positions with their trading date.
type dateTicker struct {
	dates     []time.Time
	count     int
	unlabeled bool
}

func (t dateTicker) Ticks(min, max float64) []plot.Tick {
	n := len(t.dates)
	if n == 0 {
		return nil
	}
	count := t.count
	if count < 1 {
		count = 10
	}
	step := n / count
	if step < 1 {
		step = 1
	}
	var ticks []plot.Tick
	for i := 0; i < n; i += step {
		x := float64(i)
		if x < min || x > max {
			continue
		}
		tick := plot.Tick{Value: x}
		if !t.unlabeled {
			tick.Label = t.dates[i].Format(models.DateLayout)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

func useDateAxis(p *plot.Plot, f *models.Frame, o Options) {
	p.X.Tick.Marker = dateTicker{dates: f.Dates(), count: o.DateTicks}
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Label.Text = "Date"
}

// definedXYs pairs each defined value with its bar index.
func definedXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

// addLine adds a line over the defined points of values. It returns false
// when nothing could be drawn.
func addLine(p *plot.Plot, values []float64, label string, style draw.LineStyle) (bool, error) {
	pts := definedXYs(values)
	if len(pts) == 0 {
		return false, nil
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return false, fmt.Errorf("line %s: %w", label, err)
	}
	l.LineStyle = style
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return true, nil
}

func lineStyle(c color.Color, width vg.Length, dashed bool) draw.LineStyle {
	s := draw.LineStyle{Color: c, Width: width}
	if dashed {
		s.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	}
	return s
}

package models

import (
	"math"
	"strconv"
	"time"
)

// Column is a canonical OHLCV column name.
type Column string

const (
	ColumnDate   Column = "trade_date"
	ColumnOpen   Column = "open"
	ColumnHigh   Column = "high"
	ColumnLow    Column = "low"
	ColumnClose  Column = "close"
	ColumnVolume Column = "vol"
)

// PriceColumns lists the value columns in the order they are exported.
var PriceColumns = []Column{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}

// DateLayout is the layout used when a frame is written back to text.
const DateLayout = "2006-01-02"

// Bar is one trading day of a normalized series.
//
// Values the source did not provide are NaN.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Value returns the bar's value for a canonical price column.
func (b Bar) Value(c Column) float64 {
	switch c {
	case ColumnOpen:
		return b.Open
	case ColumnHigh:
		return b.High
	case ColumnLow:
		return b.Low
	case ColumnClose:
		return b.Close
	case ColumnVolume:
		return b.Volume
	default:
		return math.NaN()
	}
}

// Consistent reports whether all four prices are defined and
// low <= min(open, close) <= max(open, close) <= high holds.
func (b Bar) Consistent() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) {
			return false
		}
	}
	lo, hi := math.Min(b.Open, b.Close), math.Max(b.Open, b.Close)
	return b.Low <= lo && hi <= b.High
}

// Frame is a normalized daily OHLCV series for a single symbol.
//
// Bars are sorted by Date, strictly increasing. Columns records which
// canonical columns the source actually provided.
type Frame struct {
	Symbol  string
	Bars    []Bar
	Columns map[Column]bool
}

// Len returns the number of bars.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Bars)
}

// Has reports whether the source provided column c.
func (f *Frame) Has(c Column) bool {
	return f != nil && f.Columns[c]
}

// Dates returns the trading dates in order.
func (f *Frame) Dates() []time.Time {
	out := make([]time.Time, f.Len())
	for i, b := range f.Bars {
		out[i] = b.Date
	}
	return out
}

// Values extracts one column as a slice aligned with Bars.
func (f *Frame) Values(c Column) []float64 {
	out := make([]float64, f.Len())
	for i, b := range f.Bars {
		out[i] = b.Value(c)
	}
	return out
}

// Closes is shorthand for Values(ColumnClose).
func (f *Frame) Closes() []float64 {
	return f.Values(ColumnClose)
}

// Table exports the frame with canonical headers. Absent columns are
// omitted, NaN cells are written empty.
func (f *Frame) Table() *Table {
	header := []string{string(ColumnDate)}
	var cols []Column
	for _, c := range PriceColumns {
		if f.Has(c) {
			header = append(header, string(c))
			cols = append(cols, c)
		}
	}

	t := &Table{Header: header, Rows: make([][]string, 0, f.Len())}
	for _, b := range f.Bars {
		row := make([]string, 0, len(header))
		row = append(row, b.Date.Format(DateLayout))
		for _, c := range cols {
			row = append(row, FormatCell(b.Value(c)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FormatCell renders a value with the shortest exact representation.
func FormatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

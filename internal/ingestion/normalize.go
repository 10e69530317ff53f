package ingestion

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

// columnAliases is the single lookup table used to map source headers to
// canonical columns. The canonical name is always tried first, then the
// aliases in order.
var columnAliases = []struct {
	column  models.Column
	aliases []string
}{
	{models.ColumnDate, []string{"date", "datetime"}},
	{models.ColumnOpen, []string{"opening_price"}},
	{models.ColumnHigh, []string{"highest_price"}},
	{models.ColumnLow, []string{"lowest_price"}},
	{models.ColumnClose, []string{"close_price"}},
	{models.ColumnVolume, []string{"volume"}},
}

// dateLayouts are tried in order for every date cell.
var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// resolveColumns maps each canonical column to its index in header.
// Columns that cannot be resolved are reported as warnings and left out.
func resolveColumns(header []string) (map[models.Column]int, []MissingColumnWarning) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	idx := make(map[models.Column]int, len(columnAliases))
	var missing []MissingColumnWarning
	for _, entry := range columnAliases {
		tried := append([]string{string(entry.column)}, entry.aliases...)
		found := false
		for _, name := range tried {
			if i, ok := pos[name]; ok {
				idx[entry.column] = i
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, MissingColumnWarning{Column: entry.column, Tried: tried})
		}
	}
	return idx, missing
}

// Normalize converts a raw table into a Frame sorted ascending by date with
// canonical columns.
//
// Behavior:
//   - A table without rows returns ErrEmptyData.
//   - A missing date column, an unparseable date or a repeated date returns
//     a *DataLoadError.
//   - A missing price/volume column is logged as a MissingColumnWarning;
//     its values are NaN and Frame.Has reports false.
//   - Blank or non-numeric value cells become NaN.
func Normalize(t *models.Table) (*models.Frame, error) {
	if t.Len() == 0 {
		return nil, ErrEmptyData
	}

	idx, missing := resolveColumns(t.Header)
	dateCol, ok := idx[models.ColumnDate]
	if !ok {
		return nil, loadErr("table", fmt.Errorf("%w (tried %s)", ErrNoDateColumn, strings.Join(missing[0].Tried, ", ")))
	}

	lg := logger.Component("normalizer")
	for _, w := range missing {
		lg.Warn().Err(w).Str("column", string(w.Column)).Msg("missing column, dependent features will be omitted")
	}

	frame := &models.Frame{
		Bars:    make([]models.Bar, 0, t.Len()),
		Columns: make(map[models.Column]bool, len(models.PriceColumns)),
	}
	for _, c := range models.PriceColumns {
		if _, ok := idx[c]; ok {
			frame.Columns[c] = true
		}
	}

	for i, row := range t.Rows {
		d, err := parseDate(cell(row, dateCol))
		if err != nil {
			return nil, loadErr("table", fmt.Errorf("row %d: %w", i+1, err))
		}
		frame.Bars = append(frame.Bars, models.Bar{
			Date:   d,
			Open:   numericCell(row, idx, models.ColumnOpen),
			High:   numericCell(row, idx, models.ColumnHigh),
			Low:    numericCell(row, idx, models.ColumnLow),
			Close:  numericCell(row, idx, models.ColumnClose),
			Volume: numericCell(row, idx, models.ColumnVolume),
		})
	}

	sort.SliceStable(frame.Bars, func(i, j int) bool {
		return frame.Bars[i].Date.Before(frame.Bars[j].Date)
	})
	for i := 1; i < len(frame.Bars); i++ {
		if frame.Bars[i].Date.Equal(frame.Bars[i-1].Date) {
			return nil, loadErr("table", fmt.Errorf("%w: %s", ErrDuplicateDate, frame.Bars[i].Date.Format(models.DateLayout)))
		}
	}
	return frame, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func numericCell(row []string, idx map[models.Column]int, c models.Column) float64 {
	i, ok := idx[c]
	if !ok {
		return math.NaN()
	}
	s := strings.ReplaceAll(cell(row, i), ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// parseDate truncates to a UTC calendar date.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

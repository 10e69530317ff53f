package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

// Load reads and normalizes one CSV file.
//
// Returns:
//   - *models.Frame: the normalized frame, labeled with symbol.
//   - error: ErrEmptyData when the file has no rows, a *DataLoadError
//     (possibly wrapping ErrInputNotFound) when it cannot be used.
func Load(ctx context.Context, path, symbol string) (*models.Frame, error) {
	start := time.Now()
	lg := logger.Component("ingestion")

	t, err := ReadCSV(ctx, path)
	if err != nil {
		return nil, err
	}

	frame, err := Normalize(t)
	if err != nil {
		var dle *DataLoadError
		if errors.As(err, &dle) {
			dle.Source = path
		}
		return nil, err
	}
	frame.Symbol = symbol

	lg.Info().
		Str("file", filepath.Base(path)).
		Int("rows", frame.Len()).
		Str("first", frame.Bars[0].Date.Format(models.DateLayout)).
		Str("last", frame.Bars[frame.Len()-1].Date.Format(models.DateLayout)).
		Dur("elapsed", time.Since(start)).
		Msg("input loaded")
	return frame, nil
}

// WriteCSV stores a frame as a canonical CSV file, creating parent
// directories as needed. The file is closed on every path and a close
// error is reported.
func WriteCSV(path string, frame *models.Frame) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	t := frame.Table()
	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

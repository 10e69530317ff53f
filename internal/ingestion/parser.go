package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

// ReadCSV opens a comma separated file and returns its header and rows as
// text. No column is interpreted here; see Normalize.
//
// It fails on:
//   - a missing file (wraps ErrInputNotFound)
//   - unreadable content or a missing header
//
// It tolerates:
//   - rows shorter or longer than the header (padded / truncated)
//   - a UTF-8 byte order mark before the first header cell
//   - blank lines
func ReadCSV(ctx context.Context, path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, loadErr(path, fmt.Errorf("%w: %v", ErrInputNotFound, err))
		}
		return nil, loadErr(path, fmt.Errorf("open: %w", err))
	}
	defer func() { _ = f.Close() }()

	t, err := readTable(ctx, f)
	if err != nil {
		return nil, loadErr(path, err)
	}
	return t, nil
}

func readTable(ctx context.Context, src io.Reader) (*models.Table, error) {
	r := csv.NewReader(src)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// A file with nothing in it is "no data", not a broken file.
			return &models.Table{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &models.Table{Header: header}
	lineNumber := 1
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

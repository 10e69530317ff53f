package ingestion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

var (
	// ErrEmptyData signals a readable source with zero data rows. Callers
	// substitute sample data instead of aborting.
	ErrEmptyData = errors.New("source contains no rows")

	// ErrInputNotFound signals a missing input file.
	ErrInputNotFound = errors.New("input file not found")

	// ErrDuplicateDate signals two rows with the same trading date.
	ErrDuplicateDate = errors.New("duplicate trading date")

	// ErrNoDateColumn signals a header without a recognizable date column.
	ErrNoDateColumn = errors.New("no date column")
)

// DataLoadError reports a source that could not be read or parsed.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Remedy returns a short hint for the operator.
func (e *DataLoadError) Remedy() string {
	switch {
	case errors.Is(e.Err, ErrNoDateColumn):
		return "add a trade_date (or date) column to the input"
	case errors.Is(e.Err, ErrDuplicateDate):
		return "remove repeated trading dates from the input"
	default:
		return fmt.Sprintf("check that %q exists, is readable and is a comma separated file with a trade_date column", e.Source)
	}
}

func loadErr(source string, err error) error {
	return &DataLoadError{Source: source, Err: err}
}

// MissingColumnWarning is logged when neither a canonical column nor any of
// its aliases is present. It is never returned as a failure.
type MissingColumnWarning struct {
	Column models.Column
	Tried  []string
}

func (w MissingColumnWarning) Error() string {
	return fmt.Sprintf("column %q not found (tried %s)", w.Column, strings.Join(w.Tried, ", "))
}

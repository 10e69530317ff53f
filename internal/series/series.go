// Package series computes the derived indicators charts are drawn from.
//
// Every function returns a slice aligned with the frame's bars. NaN marks a
// point where the indicator is undefined. Nothing is cached; callers
// recompute on each request.
package series

import (
	"errors"
	"fmt"
	"math"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidWindow is returned for a window too small for the indicator.
	ErrInvalidWindow = errors.New("invalid window")

	// ErrMissingColumn is returned when the frame lacks the close column.
	ErrMissingColumn = errors.New("missing close column")
)

// isUndefined treats NaN and ±Inf alike so one bad value cannot poison a
// running sum.
func isUndefined(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func requireClose(f *models.Frame) error {
	if !f.Has(models.ColumnClose) {
		return ErrMissingColumn
	}
	return nil
}

// MovingAverage returns the simple rolling mean of close over window bars.
//
// Behavior:
//   - The first window-1 points are NaN.
//   - A point whose window contains a NaN or infinite close is NaN.
//   - Runs in a single pass with a sliding sum.
func MovingAverage(f *models.Frame, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: moving average needs window >= 1, got %d", ErrInvalidWindow, window)
	}
	if err := requireClose(f); err != nil {
		return nil, err
	}

	closes := f.Closes()
	out := make([]float64, len(closes))
	var sum float64
	undefined := 0
	for i, v := range closes {
		if isUndefined(v) {
			undefined++
		} else {
			sum += v
		}
		if i >= window {
			old := closes[i-window]
			if isUndefined(old) {
				undefined--
			} else {
				sum -= old
			}
		}
		if i < window-1 || undefined > 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out, nil
}

// DailyReturn returns the percentage change of close from the prior bar.
// The first point is NaN, as is any point next to an undefined close or
// after a close of 0.
func DailyReturn(f *models.Frame) ([]float64, error) {
	if err := requireClose(f); err != nil {
		return nil, err
	}
	closes := f.Closes()
	out := make([]float64, len(closes))
	for i := range closes {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		prev, cur := closes[i-1], closes[i]
		if isUndefined(prev) || isUndefined(cur) || prev == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (cur - prev) / prev * 100
	}
	return out, nil
}

// RollingVolatility returns the rolling sample standard deviation (n-1
// denominator) of DailyReturn over window bars. Because the first return is
// undefined, the first window points are NaN.
func RollingVolatility(f *models.Frame, window int) ([]float64, error) {
	if window < 2 {
		return nil, fmt.Errorf("%w: volatility needs window >= 2, got %d", ErrInvalidWindow, window)
	}
	returns, err := DailyReturn(f)
	if err != nil {
		return nil, err
	}
	return rollingStdDev(returns, window), nil
}

func rollingStdDev(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	n := float64(window)
	var sum, sumSq float64
	undefined := 0
	for i, v := range values {
		if isUndefined(v) {
			undefined++
		} else {
			sum += v
			sumSq += v * v
		}
		if i >= window {
			old := values[i-window]
			if isUndefined(old) {
				undefined--
			} else {
				sum -= old
				sumSq -= old * old
			}
		}
		if i < window-1 || undefined > 0 {
			out[i] = math.NaN()
			continue
		}
		variance := (sumSq - sum*sum/n) / (n - 1)
		// Cancellation in the running sums can dip just below zero.
		out[i] = math.Sqrt(math.Max(variance, 0))
	}
	return out
}

// Directions classifies each return: positive is Up, negative is Down, and
// zero or undefined is Flat.
func Directions(returns []float64) []models.Direction {
	out := make([]models.Direction, len(returns))
	for i, r := range returns {
		out[i] = Classify(r)
	}
	return out
}

// Classify maps one return to its Direction.
func Classify(r float64) models.Direction {
	switch {
	case r > 0:
		return models.Up
	case r < 0:
		return models.Down
	default:
		return models.Flat
	}
}

// Defined returns the finite values in order.
func Defined(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !isUndefined(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean averages the defined values. It is NaN when none are defined.
func Mean(values []float64) float64 {
	d := Defined(values)
	if len(d) == 0 {
		return math.NaN()
	}
	return stat.Mean(d, nil)
}

package series

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrTooFewSamples is returned when a density cannot be estimated.
var ErrTooFewSamples = errors.New("at least two defined samples are required")

// Density is a Gaussian kernel density estimate over a fixed sample.
type Density struct {
	samples   []float64
	Bandwidth float64
}

// KernelDensity fits a Gaussian KDE to the defined values using Silverman's
// rule of thumb for the bandwidth. NaN values are ignored.
func KernelDensity(values []float64) (*Density, error) {
	d := Defined(values)
	if len(d) < 2 {
		return nil, ErrTooFewSamples
	}
	sort.Float64s(d)

	n := float64(len(d))
	sd := stat.StdDev(d, nil)
	iqr := stat.Quantile(0.75, stat.Empirical, d, nil) - stat.Quantile(0.25, stat.Empirical, d, nil)
	spread := sd
	if iqr > 0 {
		spread = math.Min(sd, iqr/1.34)
	}
	if spread == 0 {
		// All samples equal: any positive width gives a valid spike.
		spread = math.Max(math.Abs(d[0])*0.01, 1e-3)
	}
	return &Density{
		samples:   d,
		Bandwidth: 0.9 * spread * math.Pow(n, -0.2),
	}, nil
}

// At evaluates the density at x.
func (k *Density) At(x float64) float64 {
	kernel := distuv.Normal{Mu: 0, Sigma: k.Bandwidth}
	var sum float64
	for _, s := range k.samples {
		sum += kernel.Prob(x - s)
	}
	return sum / float64(len(k.samples))
}

// Range returns the sample extent widened by three bandwidths on each side.
func (k *Density) Range() (lo, hi float64) {
	pad := 3 * k.Bandwidth
	return floats.Min(k.samples) - pad, floats.Max(k.samples) + pad
}

// Evaluate samples the density at n evenly spaced points over Range.
func (k *Density) Evaluate(n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	lo, hi := k.Range()
	xs = floats.Span(make([]float64, n), lo, hi)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = k.At(x)
	}
	return xs, ys
}

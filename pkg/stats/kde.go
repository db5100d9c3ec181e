package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"
)

// ErrSingular is returned when a density cannot be estimated from the sample.
var ErrSingular = errors.New("kde: need at least two distinct values")

// KDE is a univariate Gaussian kernel density estimate.
type KDE struct {
	Data      []float64
	Bandwidth float64
}

// NewKDE fits a Gaussian KDE to the finite values of x using Scott's rule
// for the bandwidth: std * n^(-1/5).
func NewKDE(x []float64) (*KDE, error) {
	vals := Finite(x)
	if len(vals) < 2 {
		return nil, ErrSingular
	}
	sd := Std(vals)
	if sd == 0 || math.IsNaN(sd) {
		return nil, ErrSingular
	}
	return &KDE{
		Data:      vals,
		Bandwidth: sd * math.Pow(float64(len(vals)), -0.2),
	}, nil
}

// Density evaluates the estimated probability density at v.
func (k *KDE) Density(v float64) float64 {
	norm := 1 / (k.Bandwidth * math.Sqrt(2*math.Pi) * float64(len(k.Data)))
	sum := 0.0
	for _, d := range k.Data {
		z := (v - d) / k.Bandwidth
		sum += math.Exp(-0.5 * z * z)
	}
	return sum * norm
}

// Curve samples the density at n evenly spaced points over [lo, hi],
// multiplying every value by scale.
func (k *KDE) Curve(lo, hi float64, n int, scale float64) plotter.XYs {
	if n < 2 {
		n = 2
	}
	xs := make([]float64, n)
	floats.Span(xs, lo, hi)
	pts := make(plotter.XYs, n)
	for i, x := range xs {
		pts[i].X = x
		pts[i].Y = k.Density(x) * scale
	}
	return pts
}

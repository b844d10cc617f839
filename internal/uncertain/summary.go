package uncertain

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Quantiles reported by Summarize as Lower and Upper.
const (
	LowerQuantile = 0.05
	UpperQuantile = 0.95
)

// Summary describes the distribution of an uncertain scalar.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Lower  float64 // 5th percentile
	Upper  float64 // 95th percentile
	N      int
}

// Summarize computes descriptive statistics over a set of draws. NaN draws
// are propagated into every statistic rather than silently dropped.
func Summarize(draws []float32) Summary {
	if len(draws) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan, Lower: nan, Upper: nan}
	}

	x := make([]float64, len(draws))
	for i, v := range draws {
		x[i] = float64(v)
	}
	if floats.HasNaN(x) {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan, Lower: nan, Upper: nan, N: len(x)}
	}

	s := Summary{N: len(x), Min: floats.Min(x), Max: floats.Max(x)}
	if len(x) == 1 {
		s.Mean, s.Lower, s.Upper = x[0], x[0], x[0]
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	sort.Float64s(x)
	s.Lower = stat.Quantile(LowerQuantile, stat.Empirical, x, nil)
	s.Upper = stat.Quantile(UpperQuantile, stat.Empirical, x, nil)
	return s
}

// SummarizeAngle computes statistics for draws of an angle in radians. The
// mean is the circular mean direction, normalized into [0, 2π). Every other
// statistic is taken over the draws unwrapped to within π of that mean, so
// a cloud straddling 0 and 2π stays in one piece; Min, Lower, Upper and Max
// may therefore fall slightly outside [0, 2π).
func SummarizeAngle(draws []float32) Summary {
	if len(draws) < 2 {
		return Summarize(draws)
	}

	x := make([]float64, len(draws))
	for i, v := range draws {
		x[i] = float64(v)
	}
	if floats.HasNaN(x) {
		return Summarize(draws)
	}

	mean := normalizeAngle(stat.CircularMean(x, nil))
	for i, v := range x {
		x[i] = mean + math.Remainder(v-mean, 2*math.Pi)
	}

	s := Summary{N: len(x), Mean: mean, Min: floats.Min(x), Max: floats.Max(x)}
	s.StdDev = stat.StdDev(x, nil)
	sort.Float64s(x)
	s.Lower = stat.Quantile(LowerQuantile, stat.Empirical, x, nil)
	s.Upper = stat.Quantile(UpperQuantile, stat.Empirical, x, nil)
	return s
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// String formats the summary as "mean ± stddev", or just the mean when the
// value is deterministic.
func (s Summary) String() string {
	if s.StdDev == 0 {
		return fmt.Sprintf("%g", float32(s.Mean))
	}
	return fmt.Sprintf("%g ± %g", float32(s.Mean), float32(s.StdDev))
}

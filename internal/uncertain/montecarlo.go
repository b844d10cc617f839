package uncertain

import (
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultSamples is the sample count used when none is configured.
	DefaultSamples = 1000
	// MinSamples is the smallest sample count for which a spread can be
	// estimated.
	MinSamples = 2
)

// Samples is the Monte Carlo representation of an uncertain scalar: a vector
// of equally weighted draws. Values produced by the same MonteCarlo engine
// always have the same length, and arithmetic pairs draws by index so that
// correlations introduced by shared inputs are preserved.
type Samples []float32

// MonteCarlo is a sampling Engine. Uniform draws come from a single seeded
// source guarded by a mutex, so one engine may be shared by runs on several
// goroutines. All other operations are pure.
type MonteCarlo struct {
	n int

	mu  sync.Mutex
	src rand.Source
}

var _ Engine[Samples] = (*MonteCarlo)(nil)

// NewMonteCarlo creates an engine producing n draws per value. Counts below
// MinSamples are raised to MinSamples. The same seed yields the same draws.
func NewMonteCarlo(n int, seed uint64) *MonteCarlo {
	if n < MinSamples {
		n = MinSamples
	}
	return &MonteCarlo{
		n:   n,
		src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// N returns the number of draws per value.
func (m *MonteCarlo) N() int { return m.n }

// Const returns n copies of v.
func (m *MonteCarlo) Const(v float32) Samples {
	out := make(Samples, m.n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Uniform draws n values from Uniform(lo, hi). A degenerate interval
// (lo == hi) yields a point mass.
func (m *MonteCarlo) Uniform(lo, hi float32) Samples {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return m.Const(lo)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dist := distuv.Uniform{Min: float64(lo), Max: float64(hi), Src: m.src}
	out := make(Samples, m.n)
	for i := range out {
		v := float32(dist.Rand())
		// Narrowing to float32 can round onto the open upper bound.
		if v > hi {
			v = hi
		}
		out[i] = v
	}
	return out
}

func (m *MonteCarlo) Add(a, b Samples) Samples {
	return m.zip(a, b, func(x, y float32) float32 { return x + y })
}

func (m *MonteCarlo) Sub(a, b Samples) Samples {
	return m.zip(a, b, func(x, y float32) float32 { return x - y })
}

func (m *MonteCarlo) Mul(a, b Samples) Samples {
	return m.zip(a, b, func(x, y float32) float32 { return x * y })
}

func (m *MonteCarlo) Div(a, b Samples) Samples {
	return m.zip(a, b, func(x, y float32) float32 { return x / y })
}

func (m *MonteCarlo) DivConst(a Samples, k float32) Samples {
	return m.Map(a, func(x float32) float32 { return x / k })
}

func (m *MonteCarlo) Scale(a Samples, k float32) Samples {
	return m.Map(a, func(x float32) float32 { return x * k })
}

func (m *MonteCarlo) Cos(a Samples) Samples {
	return m.Map(a, func(x float32) float32 { return float32(math.Cos(float64(x))) })
}

func (m *MonteCarlo) Sin(a Samples) Samples {
	return m.Map(a, func(x float32) float32 { return float32(math.Sin(float64(x))) })
}

// Map applies f to every draw of a.
func (m *MonteCarlo) Map(a Samples, f func(float32) float32) Samples {
	out := make(Samples, len(a))
	for i, x := range a {
		out[i] = f(x)
	}
	return out
}

func (m *MonteCarlo) Values(a Samples) []float32 { return a }

func (m *MonteCarlo) Summarize(a Samples) Summary { return Summarize(a) }

func (m *MonteCarlo) SummarizeAngle(a Samples) Summary { return SummarizeAngle(a) }

// zip combines a and b draw by draw. The shorter operand bounds the result;
// values built by one engine are always the same length.
func (m *MonteCarlo) zip(a, b Samples, f func(x, y float32) float32) Samples {
	n := min(len(a), len(b))
	out := make(Samples, n)
	for i := 0; i < n; i++ {
		out[i] = f(a[i], b[i])
	}
	return out
}

package uncertain

import "math"

// Exact is a deterministic Engine over float32. Uniform distributions are
// represented by their midpoint, so a run through Exact reproduces the
// point-estimate behaviour of the pipeline.
type Exact struct{}

var _ Engine[float32] = Exact{}

func (Exact) Const(v float32) float32 { return v }

// Uniform returns the midpoint of [lo, hi].
func (Exact) Uniform(lo, hi float32) float32 { return lo + (hi-lo)/2 }

func (Exact) Add(a, b float32) float32 { return a + b }

func (Exact) Sub(a, b float32) float32 { return a - b }

func (Exact) Mul(a, b float32) float32 { return a * b }

func (Exact) Div(a, b float32) float32 { return a / b }

func (Exact) DivConst(a, k float32) float32 { return a / k }

func (Exact) Scale(a, k float32) float32 { return a * k }

func (Exact) Cos(a float32) float32 { return float32(math.Cos(float64(a))) }

func (Exact) Sin(a float32) float32 { return float32(math.Sin(float64(a))) }

func (Exact) Map(a float32, f func(float32) float32) float32 { return f(a) }

func (Exact) Values(a float32) []float32 { return []float32{a} }

// Summarize returns a degenerate summary where every statistic equals a.
func (Exact) Summarize(a float32) Summary {
	v := float64(a)
	return Summary{Mean: v, Min: v, Max: v, Lower: v, Upper: v, N: 1}
}

// SummarizeAngle is Summarize: a single angle has no spread to unwrap.
func (e Exact) SummarizeAngle(a float32) Summary { return e.Summarize(a) }

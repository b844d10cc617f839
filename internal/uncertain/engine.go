// Package uncertain provides the arithmetic used to carry measurement
// uncertainty through the odometry pipeline.
//
// An Engine constructs and combines values of some scalar type S. Callers
// never inspect S directly; they build values with Const and Uniform, combine
// them with the arithmetic methods, and read results back with Summarize or
// Values. Two engines are provided: Exact, which carries a single float32 and
// collapses every distribution to its midpoint, and MonteCarlo, which carries
// a fixed-size vector of samples and propagates them element-wise.
package uncertain

// Engine is the set of operations the estimation pipeline needs from an
// uncertainty representation. Every method returns a new value; arguments are
// never modified.
type Engine[S any] interface {
	// Const returns a point mass at v.
	Const(v float32) S
	// Uniform returns a value uniformly distributed over [lo, hi].
	Uniform(lo, hi float32) S

	Add(a, b S) S
	Sub(a, b S) S
	Mul(a, b S) S
	// Div divides a by an uncertain divisor.
	Div(a, b S) S
	// DivConst divides a by a deterministic divisor.
	DivConst(a S, k float32) S
	// Scale multiplies a by a deterministic factor.
	Scale(a S, k float32) S

	Cos(a S) S
	Sin(a S) S
	// Map applies f to every realisation of a.
	Map(a S, f func(float32) float32) S

	// Values returns the realisations backing a. The slice must not be
	// modified by the caller.
	Values(a S) []float32
	// Summarize reduces a to descriptive statistics.
	Summarize(a S) Summary

	// SummarizeAngle reduces an angle in radians using circular statistics.
	SummarizeAngle(a S) Summary
}

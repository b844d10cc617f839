package odometry

import (
	"math"

	"github.com/banshee-data/deadreckoning/internal/uncertain"
)

// TwoPi is one full turn in float32.
const TwoPi = float32(2 * math.Pi)

// NormalizeHeading wraps h into [0, 2π). Any number of whole turns is
// removed, in either direction. NaN and ±Inf have no meaningful wrap and are
// returned as NaN.
func NormalizeHeading(h float32) float32 {
	if h >= 0 && h < TwoPi {
		return h
	}
	// Repeated subtraction in float32 stalls once 2π is below the spacing of
	// h, so reduce in float64 instead.
	r := math.Mod(float64(h), 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	out := float32(r)
	// A remainder just below 2π can round up to it when narrowed.
	if out >= TwoPi {
		out = 0
	}
	return out
}

// derivative evaluates the unicycle model at pose p under velocity u.
func derivative[S any](e uncertain.Engine[S], p Pose[S], u VehicleVelocity[S]) Pose[S] {
	return Pose[S]{
		X:       e.Mul(u.Linear, e.Cos(p.Heading)),
		Y:       e.Mul(u.Linear, e.Sin(p.Heading)),
		Heading: u.Angular,
	}
}

// Step advances pose by dt using Heun's method: an Euler predictor under the
// velocity at t, followed by a trapezoidal corrector that averages the slopes
// at t and at the predicted pose under the velocity at t+dt. The returned
// heading is normalized into [0, 2π).
func Step[S any](e uncertain.Engine[S], pose Pose[S], u, uNext VehicleVelocity[S], dt float32) Pose[S] {
	k1 := derivative(e, pose, u)

	predicted := Pose[S]{
		X:       e.Add(pose.X, e.Scale(k1.X, dt)),
		Y:       e.Add(pose.Y, e.Scale(k1.Y, dt)),
		Heading: e.Add(pose.Heading, e.Scale(k1.Heading, dt)),
	}

	k2 := derivative(e, predicted, uNext)

	half := dt / 2
	next := Pose[S]{
		X:       e.Add(pose.X, e.Scale(e.Add(k1.X, k2.X), half)),
		Y:       e.Add(pose.Y, e.Scale(e.Add(k1.Y, k2.Y), half)),
		Heading: e.Add(pose.Heading, e.Scale(e.Add(k1.Heading, k2.Heading), half)),
	}
	next.Heading = e.Map(next.Heading, NormalizeHeading)
	return next
}

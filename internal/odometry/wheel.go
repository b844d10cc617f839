package odometry

import "github.com/banshee-data/deadreckoning/internal/uncertain"

// Bounds of the creep distribution used when a count is within one tick of
// zero and the inverse relationship cannot be applied.
const (
	creepMin = 0.1
	creepMax = 0.5
)

// quantizationHalfWidth is the half-width of the interval the true count is
// assumed to lie in around the measured integer count.
const quantizationHalfWidth = 0.5

// EstimateWheelSpeed converts one raw timer count into an uncertain wheel
// speed. The cases are tried in order:
//
//   - count ≥ max: saturated forward, Uniform(0, k/max)
//   - count ≤ -max: saturated reverse, Uniform(-k/max, 0)
//   - 0 ≤ count < 1: forward creep, Uniform(0.1, 0.5)
//   - -1 < count < 0: reverse creep, Uniform(-0.5, -0.1)
//   - otherwise k / t with t ~ Uniform(count-0.5, count+0.5)
//
// In the last case |count| ≥ 1, so the sampled count never reaches zero.
func EstimateWheelSpeed[S any](e uncertain.Engine[S], count, wheelConstant, maximumTimerCount float32) S {
	switch {
	case count >= maximumTimerCount:
		return e.Uniform(0, wheelConstant/maximumTimerCount)
	case count <= -maximumTimerCount:
		return e.Uniform(-wheelConstant/maximumTimerCount, 0)
	case count >= 0 && count < 1:
		return e.Uniform(creepMin, creepMax)
	case count > -1 && count < 0:
		return e.Uniform(-creepMax, -creepMin)
	}

	t := e.Uniform(count-quantizationHalfWidth, count+quantizationHalfWidth)
	return e.Div(e.Const(wheelConstant), t)
}

// EstimateWheelSpeeds applies EstimateWheelSpeed to both wheels of a reading.
func EstimateWheelSpeeds[S any](e uncertain.Engine[S], r RawReading, p Parameters) WheelSpeed[S] {
	return WheelSpeed[S]{
		Right: EstimateWheelSpeed(e, float32(r.Right), p.WheelConstant, p.MaximumTimerCount),
		Left:  EstimateWheelSpeed(e, float32(r.Left), p.WheelConstant, p.MaximumTimerCount),
	}
}

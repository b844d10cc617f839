package odometry

import "fmt"

// RawReading is one sample of the encoder timers: the number of timer ticks
// counted between encoder edges on each wheel. Negative counts indicate the
// wheel turning in reverse.
type RawReading struct {
	Right int32
	Left  int32
}

// State is a deterministic pose, used for the initial condition.
type State struct {
	X       float32
	Y       float32
	Heading float32 // radians
}

func (s State) String() string {
	return fmt.Sprintf("x=%g, y=%g, θ=%g", s.X, s.Y, s.Heading)
}

// Parameters configures one estimation run. A Parameters value is never
// modified by the pipeline and may be shared between runs.
type Parameters struct {
	TrackWidth        float32 // distance between the wheels
	WheelConstant     float32 // wheel speed = WheelConstant / timer count
	MaximumTimerCount float32 // saturation threshold of the encoder timer
	Timestep          float32 // seconds between consecutive readings
	InitialState      State
}

// WheelSpeed holds the estimated speed of each wheel.
type WheelSpeed[S any] struct {
	Right S
	Left  S
}

// VehicleVelocity is the body velocity of the robot.
type VehicleVelocity[S any] struct {
	Linear  S // distance per second along the heading
	Angular S // radians per second, counter-clockwise positive
}

// Pose is the estimated position and heading of the robot. After every
// integration step Heading lies in [0, 2π).
type Pose[S any] struct {
	X       S
	Y       S
	Heading S
}

package odometry

import "github.com/banshee-data/deadreckoning/internal/uncertain"

// MinReadings is the number of readings needed for one integration step.
const MinReadings = 2

// Estimator runs the full pipeline over an ordered sequence of readings.
// It holds no mutable state, so one Estimator may be reused across runs.
type Estimator[S any] struct {
	engine uncertain.Engine[S]
	params Parameters
}

// NewEstimator creates an Estimator using engine e and parameters p.
func NewEstimator[S any](e uncertain.Engine[S], p Parameters) *Estimator[S] {
	return &Estimator[S]{engine: e, params: p}
}

// Engine returns the uncertainty engine used by the estimator.
func (est *Estimator[S]) Engine() uncertain.Engine[S] { return est.engine }

// Parameters returns the run parameters.
func (est *Estimator[S]) Parameters() Parameters { return est.params }

// InitialPose lifts the configured initial state into the engine's scalar
// type.
func (est *Estimator[S]) InitialPose() Pose[S] {
	s := est.params.InitialState
	return Pose[S]{
		X:       est.engine.Const(s.X),
		Y:       est.engine.Const(s.Y),
		Heading: est.engine.Const(s.Heading),
	}
}

// Velocity estimates the vehicle velocity implied by a single reading.
func (est *Estimator[S]) Velocity(r RawReading) (VehicleVelocity[S], error) {
	ws := EstimateWheelSpeeds(est.engine, r, est.params)
	return ConvertVelocity(est.engine, est.params.TrackWidth, ws)
}

// Run integrates across all readings and returns the trajectory: the initial
// pose followed by one pose per step, len(readings) poses in total.
func (est *Estimator[S]) Run(readings []RawReading) ([]Pose[S], error) {
	if err := checkReadings(readings); err != nil {
		return nil, err
	}
	trajectory := make([]Pose[S], 0, len(readings))
	trajectory = append(trajectory, est.InitialPose())
	err := est.walk(readings, func(_ int, p Pose[S]) {
		trajectory = append(trajectory, p)
	})
	if err != nil {
		return nil, err
	}
	return trajectory, nil
}

// Final integrates across all readings and returns only the last pose.
func (est *Estimator[S]) Final(readings []RawReading) (Pose[S], error) {
	if err := checkReadings(readings); err != nil {
		return Pose[S]{}, err
	}
	last := est.InitialPose()
	err := est.walk(readings, func(_ int, p Pose[S]) { last = p })
	if err != nil {
		return Pose[S]{}, err
	}
	return last, nil
}

// walk threads the pose through every consecutive pair of readings and
// calls visit with the step index (1-based) and the pose it produced. Each
// reading's velocity is estimated once and serves as the "next" velocity of
// one step and the "current" velocity of the following one.
func (est *Estimator[S]) walk(readings []RawReading, visit func(step int, p Pose[S])) error {
	pose := est.InitialPose()
	u, err := est.Velocity(readings[0])
	if err != nil {
		return err
	}
	for i := 1; i < len(readings); i++ {
		uNext, err := est.Velocity(readings[i])
		if err != nil {
			return err
		}
		pose = Step(est.engine, pose, u, uNext, est.params.Timestep)
		visit(i, pose)
		u = uNext
	}
	return nil
}

func checkReadings(readings []RawReading) error {
	if len(readings) < MinReadings {
		return &InputError{Got: len(readings), Need: MinReadings}
	}
	return nil
}

// Run is a convenience wrapper around NewEstimator(e, p).Run(readings).
func Run[S any](e uncertain.Engine[S], p Parameters, readings []RawReading) ([]Pose[S], error) {
	return NewEstimator(e, p).Run(readings)
}

// Package odometry estimates the planar pose of a differential-drive robot
// from raw wheel-encoder timer counts.
//
// The pipeline runs once per time step:
//
//	RawReading ──EstimateWheelSpeeds──▶ WheelSpeed
//	WheelSpeed ──ConvertVelocity──────▶ VehicleVelocity
//	Pose + VehicleVelocity(t, t+dt) ──Step──▶ Pose
//
// Every quantity downstream of the raw counts is expressed in the scalar type
// of an uncertain.Engine, so quantization noise in the encoder counts is
// carried all the way through to the estimated pose. Estimator threads the
// pose across an ordered sequence of readings.
//
// All values are float32: the estimator targets the same precision as the
// embedded controllers that produce the encoder counts.
package odometry

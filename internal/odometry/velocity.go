package odometry

import "github.com/banshee-data/deadreckoning/internal/uncertain"

// ConvertVelocity turns wheel speeds into the vehicle's linear and angular
// velocity. A zero track width makes the angular velocity undefined and is
// reported as a *ParameterError.
func ConvertVelocity[S any](e uncertain.Engine[S], trackWidth float32, ws WheelSpeed[S]) (VehicleVelocity[S], error) {
	if trackWidth == 0 {
		return VehicleVelocity[S]{}, &ParameterError{
			Name:   "track width",
			Value:  float64(trackWidth),
			Reason: "cannot be zero",
		}
	}

	return VehicleVelocity[S]{
		Linear:  e.DivConst(e.Add(ws.Right, ws.Left), 2),
		Angular: e.DivConst(e.Sub(ws.Right, ws.Left), trackWidth),
	}, nil
}

package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Predict integrates a ballistic path starting at origin with velocity
// dir*speed. Each step records the current position, then applies gravity to
// the velocity and the velocity to the position. Generation stops at
// maxSteps points or once maxT seconds of flight are covered.
func Predict(origin, dir mgl64.Vec3, speed float64, gravity mgl64.Vec3, dt, maxT float64, maxSteps int) []mgl64.Vec3 {
	if dt <= 0 || maxSteps <= 0 {
		return nil
	}

	points := make([]mgl64.Vec3, 0, maxSteps)
	v := dir.Mul(speed)
	p := origin
	for i := 0; float64(i)*dt < maxT && len(points) < maxSteps; i++ {
		points = append(points, p)
		v = v.Add(gravity.Mul(dt))
		p = p.Add(v.Mul(dt))
	}
	return points
}

// PredictFrom is Predict driven by a pose and p.
func (p Params) PredictFrom(pose Pose, speed float64) []mgl64.Vec3 {
	return Predict(pose.Origin, pose.Direction, speed, p.GravityVec(), p.TimeStep, p.MaxTime, p.MaxSteps)
}

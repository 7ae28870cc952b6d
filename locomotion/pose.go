package locomotion

import "github.com/go-gl/mathgl/mgl64"

// forward is the controller's local pointing axis.
var forward = mgl64.Vec3{0, 0, -1}

// Pose is one sample of a tracked controller.
type Pose struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// SamplePose extracts the origin and world-space forward direction from a
// controller's world transform. It reports false when the controller is not
// tracked this frame or the transform has no usable rotation.
func SamplePose(world mgl64.Mat4, tracked bool) (Pose, bool) {
	if !tracked {
		return Pose{}, false
	}

	// Normalize the basis columns so scale never leaks into the direction.
	var cols [3]mgl64.Vec3
	for i := range cols {
		c := world.Col(i).Vec3()
		l := c.Len()
		if l < 1e-9 {
			return Pose{}, false
		}
		cols[i] = c.Mul(1 / l)
	}
	rot := mgl64.Mat3FromCols(cols[0], cols[1], cols[2])

	dir := rot.Mul3x1(forward)
	l := dir.Len()
	if l < 1e-9 {
		return Pose{}, false
	}

	return Pose{
		Origin:    world.Col(3).Vec3(),
		Direction: dir.Mul(1 / l),
	}, true
}

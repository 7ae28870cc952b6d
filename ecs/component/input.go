package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/locomotion"
)

// Controller is one hand controller as sampled this frame. Grip, Yaw and
// Pitch are relative to the rig.
type Controller struct {
	ID     locomotion.ControllerID
	Source string

	Grip  mgl64.Vec3
	Yaw   float64
	Pitch float64

	Tracked  bool
	Pressed  bool
	AimStart bool
	Release  bool
	Axes     []float64
}

// Local returns the controller pose in rig space. Pitch tilts the -Z
// pointing ray up for positive values.
func (c Controller) Local() mgl64.Mat4 {
	return mgl64.Translate3D(c.Grip.X(), c.Grip.Y(), c.Grip.Z()).
		Mul4(mgl64.HomogRotate3DY(c.Yaw)).
		Mul4(mgl64.HomogRotate3DX(c.Pitch))
}

var ControllerComponent = NewComponent[Controller]()

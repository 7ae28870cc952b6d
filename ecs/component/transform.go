package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places an entity in the scene. Y is up; yaw turns about +Y.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Matrix returns the world transform.
func (t Transform) Matrix() mgl64.Mat4 {
	p := t.Position
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl64.HomogRotate3DY(t.Yaw))
}

var TransformComponent = NewComponent[Transform]()

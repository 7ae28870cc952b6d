package component

import "github.com/go-gl/mathgl/mgl64"

// Camera frames the preview. Zoom is pixels per metre; Center eases toward
// the rig at Smoothness per frame.
type Camera struct {
	Center     mgl64.Vec3
	Zoom       float64
	MinZoom    float64
	MaxZoom    float64
	Smoothness float64
	SideView   bool
}

var CameraComponent = NewComponent[Camera]()

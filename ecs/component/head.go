package component

import "github.com/go-gl/mathgl/mgl64"

// Head is the tracked headset, in the rig's local frame. Eye.X and Eye.Z
// drift as the player walks around the play area.
type Head struct {
	Eye mgl64.Vec3
}

var HeadComponent = NewComponent[Head]()

package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/templehub/common"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
)

// CameraSystem keeps the preview centred on the player's head. The mouse
// wheel zooms and V toggles the side view.
type CameraSystem struct {
	camEntity ecs.Entity
	hasCam    bool

	// Enabled is false while the pointer is over the sidebar.
	Enabled bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{Enabled: true}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !cs.hasCam || !ecs.IsAlive(w, cs.camEntity) {
		e, ok := ecs.First(w, component.CameraComponent)
		if !ok {
			return
		}
		cs.camEntity, cs.hasCam = e, true
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}

	if cs.Enabled {
		if _, wy := ebiten.Wheel(); wy != 0 {
			Zoom(cam, wy)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			cam.SideView = !cam.SideView
		}
	}

	rig, ok := ecs.First(w, component.RigTagComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, rig, component.TransformComponent)
	if !ok {
		return
	}
	target := t.Position
	if head, ok := ecs.Get(w, rig, component.HeadComponent); ok {
		target = t.Position.Add(mgl64.Rotate3DY(t.Yaw).Mul3x1(head.Eye))
	}
	Follow(cam, target)
}

// Follow eases the camera centre toward target by the camera's smoothness.
// A smoothness of zero or one snaps.
func Follow(cam *component.Camera, target mgl64.Vec3) {
	s := cam.Smoothness
	if s <= 0 || s >= 1 {
		cam.Center = target
		return
	}
	for i := range cam.Center {
		cam.Center[i] = common.Lerp(cam.Center[i], target[i], s)
	}
}

// Zoom scales the zoom by 10% per wheel notch within the camera's limits.
func Zoom(cam *component.Camera, notches float64) {
	z := cam.Zoom * math.Pow(1.1, notches)
	if cam.MaxZoom > 0 {
		z = common.Clamp(z, cam.MinZoom, cam.MaxZoom)
	}
	cam.Zoom = z
}

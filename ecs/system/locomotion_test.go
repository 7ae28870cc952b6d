package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/locomotion"
)

type rigFixture struct {
	w          *ecs.World
	rig        ecs.Entity
	curve      ecs.Entity
	marker     ecs.Entity
	controller ecs.Entity
}

func newRigFixture(t *testing.T, eye mgl64.Vec3) rigFixture {
	t.Helper()
	w := ecs.NewWorld()
	f := rigFixture{w: w}

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	f.rig = ecs.CreateEntity(w)
	must(ecs.Add(w, f.rig, component.RigTagComponent, component.RigTag{}))
	must(ecs.Add(w, f.rig, component.TransformComponent, component.Transform{}))
	must(ecs.Add(w, f.rig, component.HeadComponent, component.Head{Eye: eye}))

	f.curve = ecs.CreateEntity(w)
	must(ecs.Add(w, f.curve, component.CurveComponent, component.Curve{}))
	f.marker = ecs.CreateEntity(w)
	must(ecs.Add(w, f.marker, component.MarkerComponent, component.Marker{}))

	f.controller = ecs.CreateEntity(w)
	must(ecs.Add(w, f.controller, component.ControllerComponent, component.Controller{
		ID:      "right",
		Grip:    mgl64.Vec3{0, 1.2, 0},
		Pitch:   0.35,
		Tracked: true,
	}))
	return f
}

func (f rigFixture) press(t *testing.T, pressed bool) {
	t.Helper()
	c, ok := ecs.Get(f.w, f.controller, component.ControllerComponent)
	if !ok {
		t.Fatalf("controller missing")
	}
	SetButton(c, pressed)
}

func vecNear(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func hasEvent(w *ecs.World, typ ecs.EventType) bool {
	for _, evt := range w.Events().Peek() {
		if evt.Type == typ {
			return true
		}
	}
	return false
}

func TestLocomotionSystemAimAndTeleport(t *testing.T) {
	eye := mgl64.Vec3{0.5, 1.7, 0}
	f := newRigFixture(t, eye)
	sys := NewLocomotionSystem(locomotion.DefaultParams(), nil, locomotion.Rig{}, time.Second/60)

	f.press(t, true)
	sys.Update(f.w)

	curve, _ := ecs.Get(f.w, f.curve, component.CurveComponent)
	if !curve.Visible || len(curve.Points) < 2 {
		t.Fatalf("aiming should show the arc, got visible=%v points=%d", curve.Visible, len(curve.Points))
	}
	marker, _ := ecs.Get(f.w, f.marker, component.MarkerComponent)
	if !marker.Visible {
		t.Fatalf("a forward arc should find the floor")
	}
	if marker.Position.Z() >= 0 {
		t.Fatalf("landing should be in front of the rig, got %v", marker.Position)
	}
	landing := marker.Position
	f.w.Events().Drain()

	f.press(t, false)
	sys.Update(f.w)

	rig, _ := ecs.Get(f.w, f.rig, component.TransformComponent)
	want := mgl64.Vec3{landing.X() - eye.X(), 0, landing.Z() - eye.Z()}
	if !vecNear(rig.Position, want, 1e-9) {
		t.Fatalf("rig should put the head on the landing: want %v, got %v", want, rig.Position)
	}
	if !hasEvent(f.w, ecs.EventTeleport) || !hasEvent(f.w, ecs.EventStatus) {
		t.Fatalf("expected teleport and status events, got %+v", f.w.Events().Peek())
	}
	if curve.Visible || marker.Visible {
		t.Fatalf("feedback should hide after release")
	}
	if sys.State().Aiming() {
		t.Fatalf("session should be over")
	}
}

func TestLocomotionSystemSnapTurn(t *testing.T) {
	f := newRigFixture(t, mgl64.Vec3{0, 1.7, 0})
	sys := NewLocomotionSystem(locomotion.DefaultParams(), nil, locomotion.Rig{}, time.Second/60)

	c, _ := ecs.Get(f.w, f.controller, component.ControllerComponent)
	c.Axes = []float64{0, 0, 1, 0}
	sys.Update(f.w)

	rig, _ := ecs.Get(f.w, f.rig, component.TransformComponent)
	want := -30 * math.Pi / 180
	if math.Abs(rig.Yaw-want) > 1e-9 {
		t.Fatalf("expected yaw %.4f, got %.4f", want, rig.Yaw)
	}
	if !hasEvent(f.w, ecs.EventSnapTurn) {
		t.Fatalf("expected a snap-turn event")
	}
}

func TestLocomotionSystemBlockedLanding(t *testing.T) {
	f := newRigFixture(t, mgl64.Vec3{0, 1.7, 0})
	sys := NewLocomotionSystem(locomotion.DefaultParams(), blockEverything{}, locomotion.Rig{}, time.Second/60)

	f.press(t, true)
	sys.Update(f.w)
	marker, _ := ecs.Get(f.w, f.marker, component.MarkerComponent)
	if marker.Visible {
		t.Fatalf("blocked landings should hide the marker")
	}

	f.press(t, false)
	sys.Update(f.w)
	rig, _ := ecs.Get(f.w, f.rig, component.TransformComponent)
	if rig.Position != (mgl64.Vec3{}) {
		t.Fatalf("release without a landing must not move the rig, got %v", rig.Position)
	}
}

func TestLocomotionSystemSetParamsCancels(t *testing.T) {
	f := newRigFixture(t, mgl64.Vec3{0, 1.7, 0})
	sys := NewLocomotionSystem(locomotion.DefaultParams(), nil, locomotion.Rig{}, time.Second/60)

	f.press(t, true)
	sys.Update(f.w)

	p := locomotion.DefaultParams()
	p.ArcSpeed = 12
	sys.SetParams(f.w, p)

	if sys.State().Aiming() {
		t.Fatalf("reload should cancel the aim")
	}
	if sys.State().ArcSpeed != 12 {
		t.Fatalf("expected arc speed 12, got %.1f", sys.State().ArcSpeed)
	}
	curve, _ := ecs.Get(f.w, f.curve, component.CurveComponent)
	if curve.Visible {
		t.Fatalf("arc should be hidden after cancel")
	}
}

func TestLocomotionSystemResetRig(t *testing.T) {
	f := newRigFixture(t, mgl64.Vec3{0, 1.7, 0})
	sys := NewLocomotionSystem(locomotion.DefaultParams(), nil, locomotion.Rig{}, time.Second/60)

	sys.ResetRig(f.w, locomotion.Rig{Position: mgl64.Vec3{1, 0, 6}, Yaw: 0.5})
	rig, _ := ecs.Get(f.w, f.rig, component.TransformComponent)
	if rig.Position != (mgl64.Vec3{1, 0, 6}) || rig.Yaw != 0.5 {
		t.Fatalf("unexpected rig %+v", rig)
	}
	if hasEvent(f.w, ecs.EventTeleport) {
		t.Fatalf("reset is not a teleport")
	}
}

func TestLocomotionSystemSuspendDoesNotCommit(t *testing.T) {
	f := newRigFixture(t, mgl64.Vec3{0, 1.7, 0})
	sys := NewLocomotionSystem(locomotion.DefaultParams(), nil, locomotion.Rig{}, time.Second/60)

	f.press(t, true)
	sys.Update(f.w)
	if _, ok := sys.State().Target(); !ok {
		t.Fatalf("expected a landing while aiming")
	}
	f.w.Events().Drain()

	// A text field takes focus while the button is still held.
	c, _ := ecs.Get(f.w, f.controller, component.ControllerComponent)
	Suspend(c)
	if c.Release || c.AimStart || c.Pressed {
		t.Fatalf("suspend must clear the button without edges, got %+v", c)
	}
	sys.Update(f.w)

	rig, _ := ecs.Get(f.w, f.rig, component.TransformComponent)
	if rig.Position != (mgl64.Vec3{}) {
		t.Fatalf("suspended input must not teleport, got %v", rig.Position)
	}
	if hasEvent(f.w, ecs.EventTeleport) {
		t.Fatalf("unexpected teleport event")
	}

	sys.Cancel(f.w)
	if sys.State().Aiming() {
		t.Fatalf("cancel should end the held aim")
	}
	marker, _ := ecs.Get(f.w, f.marker, component.MarkerComponent)
	if marker.Visible {
		t.Fatalf("cancel should hide the marker")
	}
}

func TestLocomotionSystemSnapAndTeleportSameFrame(t *testing.T) {
	eye := mgl64.Vec3{0.5, 1.7, 0}
	f := newRigFixture(t, eye)
	sys := NewLocomotionSystem(locomotion.DefaultParams(), nil, locomotion.Rig{}, time.Second/60)

	f.press(t, true)
	sys.Update(f.w)
	landing, ok := sys.State().Target()
	if !ok {
		t.Fatalf("expected a landing while aiming")
	}

	c, _ := ecs.Get(f.w, f.controller, component.ControllerComponent)
	c.Axes = []float64{0, 0, 1, 0}
	f.press(t, false)
	sys.Update(f.w)

	rig, _ := ecs.Get(f.w, f.rig, component.TransformComponent)
	if math.Abs(rig.Yaw+30*math.Pi/180) > 1e-9 {
		t.Fatalf("expected a snap-turn, got yaw %.4f", rig.Yaw)
	}
	camera := rig.Position.Add(mgl64.Rotate3DY(rig.Yaw).Mul3x1(eye))
	if math.Abs(camera.X()-landing.X()) > 1e-9 || math.Abs(camera.Z()-landing.Z()) > 1e-9 {
		t.Fatalf("head should land on %v, got %v", landing, camera)
	}
}

type blockEverything struct{}

func (blockEverything) Blocked(mgl64.Vec3) bool { return true }

package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/prefabs"
	"github.com/milk9111/templehub/scene"
	"golang.org/x/image/colornames"
)

const idolRadius = 0.35

// Scene lists the entities built from a scene prefab so a reload can tear
// them down again.
type Scene struct {
	Rig    ecs.Entity
	Curve  ecs.Entity
	Marker ecs.Entity
	Camera ecs.Entity
	HUD    ecs.Entity
	Idol   ecs.Entity
	Props  []ecs.Entity

	// Blockers holds the floor areas a teleport may not land in.
	Blockers *scene.Blockers
}

// RigOf returns the starting rig described by spec.
func RigOf(spec prefabs.SceneSpec) locomotion.Rig {
	return locomotion.Rig{Position: spec.Rig.Position, Yaw: spec.Rig.Yaw}
}

// BuildScene creates the temple's entities. modelURL overrides the model
// URL in spec when set.
func BuildScene(w *ecs.World, spec prefabs.SceneSpec, modelURL string) (*Scene, error) {
	s := &Scene{Blockers: scene.BlockersFromSpec(spec)}
	if err := s.build(w, spec, modelURL); err != nil {
		s.Destroy(w)
		return nil, err
	}
	return s, nil
}

func (s *Scene) build(w *ecs.World, spec prefabs.SceneSpec, modelURL string) error {
	var err error

	if s.Rig, err = s.newRig(w, spec); err != nil {
		return err
	}

	s.Curve = ecs.CreateEntity(w)
	if err := ecs.Add(w, s.Curve, component.CurveComponent, component.Curve{
		Width:     spec.Curve.Width,
		Color:     spec.Curve.Color.Or(colornames.Cyan),
		AntiAlias: true,
	}); err != nil {
		return fmt.Errorf("scene: add curve: %w", err)
	}

	inner, outer := spec.Marker.Inner, spec.Marker.Outer
	if outer <= 0 {
		inner, outer = 0.45, 0.55
	}
	s.Marker = ecs.CreateEntity(w)
	if err := ecs.Add(w, s.Marker, component.MarkerComponent, component.Marker{
		Inner: inner,
		Outer: outer,
		Color: spec.Marker.Color.Or(colornames.Lightgreen),
	}); err != nil {
		return fmt.Errorf("scene: add marker: %w", err)
	}

	dais := spec.Dais
	if _, err := s.newProp(w, mgl64.Vec3{}, component.Prop{
		Name:     "dais",
		Shape:    component.ShapeLotus,
		Radius:   dais.Radius,
		Height:   dais.Height,
		Petals:   dais.Petals,
		Color:    dais.Color.Or(colornames.Lavender),
		Blocking: dais.Blocking,
	}); err != nil {
		return err
	}

	if modelURL == "" {
		modelURL = spec.Model.URL
	}
	s.Idol, err = s.newProp(w, mgl64.Vec3{0, dais.Height, 0}, component.Prop{
		Name:   "idol",
		Shape:  component.ShapeIdol,
		Radius: idolRadius,
		Height: spec.Model.Height,
		Layer:  1,
		Color:  spec.Model.Color.Or(colornames.Goldenrod),
	})
	if err != nil {
		return err
	}
	if err := ecs.Add(w, s.Idol, component.ModelComponent, component.Model{
		URL:    modelURL,
		State:  component.ModelPending,
		Height: spec.Model.Height,
		Lift:   spec.Model.Lift,
	}); err != nil {
		return fmt.Errorf("scene: add model: %w", err)
	}

	for _, b := range spec.Blockers {
		prop := component.Prop{
			Name:     b.Name,
			Radius:   b.Radius,
			Width:    b.Width,
			Depth:    b.Depth,
			Height:   b.Height,
			Color:    b.Color.Or(colornames.Sienna),
			Blocking: true,
		}
		switch b.Shape {
		case "box":
			prop.Shape = component.ShapeBox
		default:
			prop.Shape = component.ShapeDisc
		}
		if _, err := s.newProp(w, b.Position, prop); err != nil {
			return err
		}
	}

	s.HUD = ecs.CreateEntity(w)
	if err := ecs.Add(w, s.HUD, component.HUDTagComponent, component.HUDTag{}); err != nil {
		return fmt.Errorf("scene: add hud tag: %w", err)
	}
	if err := ecs.Add(w, s.HUD, component.StatusComponent, component.Status{}); err != nil {
		return fmt.Errorf("scene: add status: %w", err)
	}

	center := RigOf(spec).Transform().Mul4x1(spec.Head.Eye.Vec4(1)).Vec3()
	if s.Camera, err = NewCamera(w, spec.Camera, center); err != nil {
		return err
	}
	return nil
}

func (s *Scene) newRig(w *ecs.World, spec prefabs.SceneSpec) (ecs.Entity, error) {
	rig := ecs.CreateEntity(w)
	if err := ecs.Add(w, rig, component.RigTagComponent, component.RigTag{}); err != nil {
		return rig, fmt.Errorf("scene: add rig tag: %w", err)
	}
	if err := ecs.Add(w, rig, component.TransformComponent, component.Transform{
		Position: spec.Rig.Position,
		Yaw:      spec.Rig.Yaw,
	}); err != nil {
		return rig, fmt.Errorf("scene: add rig transform: %w", err)
	}
	if err := ecs.Add(w, rig, component.HeadComponent, component.Head{Eye: spec.Head.Eye}); err != nil {
		return rig, fmt.Errorf("scene: add head: %w", err)
	}
	return rig, nil
}

func (s *Scene) newProp(w *ecs.World, pos mgl64.Vec3, prop component.Prop) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	s.Props = append(s.Props, e)
	if err := ecs.Add(w, e, component.PropComponent, prop); err != nil {
		return e, fmt.Errorf("scene: add prop %s: %w", prop.Name, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{Position: pos}); err != nil {
		return e, fmt.Errorf("scene: add prop %s transform: %w", prop.Name, err)
	}
	return e, nil
}

// Destroy removes every entity the scene created. Controllers and sound
// cues are not part of the scene and survive.
func (s *Scene) Destroy(w *ecs.World) {
	if s == nil {
		return
	}
	for _, e := range []ecs.Entity{s.Rig, s.Curve, s.Marker, s.Camera, s.HUD} {
		if e.Valid() {
			ecs.DestroyEntity(w, e)
		}
	}
	for _, e := range s.Props {
		ecs.DestroyEntity(w, e)
	}
	s.Props = nil
}

// SetModelState records the outcome of the model reachability probe.
func (s *Scene) SetModelState(w *ecs.World, state component.ModelState) {
	if s == nil {
		return
	}
	if m, ok := ecs.Get(w, s.Idol, component.ModelComponent); ok {
		m.State = state
	}
}

// ModelURL returns the URL the idol loads from.
func (s *Scene) ModelURL(w *ecs.World) string {
	if s == nil {
		return ""
	}
	if m, ok := ecs.Get(w, s.Idol, component.ModelComponent); ok {
		return m.URL
	}
	return ""
}

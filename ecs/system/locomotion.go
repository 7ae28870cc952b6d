package system

import (
	"cmp"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/logging"
	"go.uber.org/zap"
)

// LocomotionSystem feeds sampled controllers to the locomotor once per
// frame and applies the commands it returns to the scene.
type LocomotionSystem struct {
	loco   *locomotion.Locomotor
	filter locomotion.TargetFilter
	state  locomotion.State
	dt     time.Duration
	log    *zap.Logger

	input locomotion.FrameInput
}

func NewLocomotionSystem(p locomotion.Params, filter locomotion.TargetFilter, rig locomotion.Rig, dt time.Duration) *LocomotionSystem {
	return &LocomotionSystem{
		loco:   locomotion.New(p, filter),
		filter: filter,
		state:  locomotion.NewState(p, rig),
		dt:     dt,
		log:    logging.Named("locomotion"),
	}
}

// State returns the current locomotion state.
func (s *LocomotionSystem) State() locomotion.State {
	return s.state
}

// SetParams swaps in reloaded parameters. Any aim in progress is dropped.
func (s *LocomotionSystem) SetParams(w *ecs.World, p locomotion.Params) {
	s.Cancel(w)
	s.loco = locomotion.New(p, s.filter)
	s.state.ArcSpeed = p.ClampSpeed(p.ArcSpeed)
	s.log.Info("params reloaded", zap.Float64("arc_speed", s.state.ArcSpeed))
}

// SetFilter replaces the landing filter, e.g. after the scene reloads.
func (s *LocomotionSystem) SetFilter(w *ecs.World, filter locomotion.TargetFilter) {
	s.Cancel(w)
	s.filter = filter
	s.loco = locomotion.New(s.loco.Params(), filter)
}

// Cancel ends any aim session and hides the feedback.
func (s *LocomotionSystem) Cancel(w *ecs.World) {
	next, cmds := s.loco.Cancel(s.state)
	s.state = next
	s.apply(w, cmds)
}

// ResetRig places the rig without emitting a teleport.
func (s *LocomotionSystem) ResetRig(w *ecs.World, rig locomotion.Rig) {
	s.Cancel(w)
	s.state.Rig = rig
	s.syncRig(w)
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	s.input = s.frameInput(w, s.input)
	next, cmds := s.loco.Advance(s.state, s.input, s.dt)
	s.state = next
	s.apply(w, cmds)
}

// frameInput gathers every controller in a stable order, posed in world
// space through the current rig.
func (s *LocomotionSystem) frameInput(w *ecs.World, in locomotion.FrameInput) locomotion.FrameInput {
	rig := s.state.Rig
	rigMatrix := rig.Transform()

	in.Controllers = in.Controllers[:0]
	ecs.ForEach(w, component.ControllerComponent, func(_ ecs.Entity, c *component.Controller) {
		in.Controllers = append(in.Controllers, locomotion.ControllerInput{
			ID:       c.ID,
			World:    rigMatrix.Mul4(c.Local()),
			Tracked:  c.Tracked,
			AimStart: c.AimStart,
			Release:  c.Release,
			Axes:     c.Axes,
		})
	})
	slices.SortFunc(in.Controllers, func(a, b locomotion.ControllerInput) int {
		return cmp.Compare(a.ID, b.ID)
	})

	in.Eye = mgl64.Vec3{}
	if e, ok := ecs.First(w, component.RigTagComponent); ok {
		if head, ok := ecs.Get(w, e, component.HeadComponent); ok {
			in.Eye = head.Eye
		}
	}
	return in
}

func (s *LocomotionSystem) apply(w *ecs.World, cmds []locomotion.Command) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case locomotion.SetCurve:
			ecs.ForEach(w, component.CurveComponent, func(_ ecs.Entity, curve *component.Curve) {
				curve.Visible = c.Visible
				curve.Points = append(curve.Points[:0], c.Points...)
			})
		case locomotion.SetMarker:
			ecs.ForEach(w, component.MarkerComponent, func(_ ecs.Entity, m *component.Marker) {
				m.Visible = c.Visible
				if c.Visible {
					m.Position = c.Position
				}
			})
		case locomotion.SetRig:
			s.syncRig(w)
			evt := ecs.EventTeleport
			if c.Reason == locomotion.RigSnapTurn {
				evt = ecs.EventSnapTurn
			}
			w.Events().Push(ecs.Event{Type: evt, Data: c.Rig})
			s.log.Debug(c.Reason.String(),
				zap.Float64("x", c.Rig.Position.X()),
				zap.Float64("z", c.Rig.Position.Z()),
				zap.Float64("yaw", c.Rig.Yaw),
			)
		case locomotion.Status:
			w.Events().Push(ecs.Event{Type: ecs.EventStatus, Data: c.Text})
			s.log.Info(c.Text)
		}
	}
}

func (s *LocomotionSystem) syncRig(w *ecs.World) {
	e, ok := ecs.First(w, component.RigTagComponent)
	if !ok {
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		t.Position = s.state.Rig.Position
		t.Yaw = s.state.Rig.Yaw
	}
}

package locomotion

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ControllerInput is one controller's input for a single frame.
type ControllerInput struct {
	ID      ControllerID
	World   mgl64.Mat4
	Tracked bool

	// AimStart and Release are edge events: trigger or grip went down or up
	// this frame.
	AimStart bool
	Release  bool

	Axes []float64
}

// FrameInput is everything the host samples once per frame.
type FrameInput struct {
	Controllers []ControllerInput

	// Eye is the camera position in rig space. It is turned by the rig yaw
	// at commit time, after any snap-turn in the same frame. Only its
	// horizontal part is used.
	Eye mgl64.Vec3
}

// Locomotor advances teleport locomotion one frame at a time. It holds only
// immutable configuration; all mutable data lives in State.
type Locomotor struct {
	params Params
	floor  Floor
	filter TargetFilter
}

// New builds a Locomotor. filter may be nil.
func New(p Params, filter TargetFilter) *Locomotor {
	return &Locomotor{params: p, floor: p.Floor(), filter: filter}
}

// Params returns the configuration the locomotor was built with.
func (l *Locomotor) Params() Params {
	return l.params
}

// Advance runs one frame: auxiliary input for every controller, then the
// aim state machine. It returns the next state and the feedback commands
// for the scene, in application order. s is not modified.
func (l *Locomotor) Advance(s State, in FrameInput, dt time.Duration) (State, []Command) {
	next := s.clone()
	if dt > 0 {
		next.Clock += dt
	}
	next.ArcSpeed = l.params.ClampSpeed(next.ArcSpeed)

	var cmds []Command
	for _, c := range in.Controllers {
		cmds = l.applyAux(&next, c, cmds)
	}

	if next.Session != nil && !hasController(in.Controllers, next.Session.Controller) {
		// The owner disconnected and can never release.
		next, cmds = l.cancel(next, cmds)
	}

	for _, c := range in.Controllers {
		if c.AimStart && next.Session == nil {
			next.Session = &AimSession{Controller: c.ID}
		}
		if next.Session == nil || next.Session.Controller != c.ID {
			continue
		}

		// A release commits the landing found on the previous frame.
		if c.Release {
			next, cmds = l.release(next, in.Eye, cmds)
			continue
		}
		cmds = l.aim(&next, c, cmds)
	}

	return next, cmds
}

// Cancel ends any aim session without teleporting.
func (l *Locomotor) Cancel(s State) (State, []Command) {
	return l.cancel(s.clone(), nil)
}

func (l *Locomotor) aim(s *State, c ControllerInput, cmds []Command) []Command {
	session := AimSession{Controller: c.ID}
	s.Session = &session

	pose, ok := SamplePose(c.World, c.Tracked)
	if !ok {
		return cmds
	}

	points := l.params.PredictFrom(pose, s.ArcSpeed)
	landing, found := l.floor.Intersect(points, l.filter)
	cmds = append(cmds, SetCurve{Points: points, Visible: true})

	if !found || !landing.Valid {
		return append(cmds, SetMarker{Visible: false})
	}

	session.Landing = &landing
	marker := mgl64.Vec3{landing.Point.X(), l.floor.Height + l.params.MarkerLift, landing.Point.Z()}
	return append(cmds, SetMarker{Position: marker, Visible: true})
}

func (l *Locomotor) release(s State, eye mgl64.Vec3, cmds []Command) (State, []Command) {
	target, ok := s.Target()
	s, cmds = l.cancel(s, cmds)
	if !ok {
		return s, cmds
	}

	head := s.Rig.Rotation().Mul3x1(eye)

	// The camera, not the rig origin, lands on the target; height is kept.
	s.Rig.Position = mgl64.Vec3{target.X() - head.X(), s.Rig.Position.Y(), target.Z() - head.Z()}
	cmds = append(cmds,
		SetRig{Rig: s.Rig, Reason: RigTeleport},
		Status{Text: fmt.Sprintf("Teleported to (%.2f, %.2f)", target.X(), target.Z())},
	)
	return s, cmds
}

func (l *Locomotor) cancel(s State, cmds []Command) (State, []Command) {
	s.Session = nil
	return s, append(cmds, SetCurve{Visible: false}, SetMarker{Visible: false})
}

func hasController(cs []ControllerInput, id ControllerID) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}

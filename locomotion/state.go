package locomotion

import (
	"maps"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ControllerID identifies an input source across frames.
type ControllerID string

// Rig is the movable frame the camera hangs from.
type Rig struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Rotation returns the rig's rotation about the vertical axis.
func (r Rig) Rotation() mgl64.Mat3 {
	return mgl64.Rotate3DY(r.Yaw)
}

// Transform returns the rig's world transform.
func (r Rig) Transform() mgl64.Mat4 {
	return mgl64.Translate3D(r.Position.X(), r.Position.Y(), r.Position.Z()).Mul4(mgl64.HomogRotate3DY(r.Yaw))
}

// AimSession is the controller currently aiming and the last valid landing
// it produced. Landing is nil when this frame found no valid target.
type AimSession struct {
	Controller ControllerID
	Landing    *Landing
}

// Cooldowns tracks when each discrete action last fired for one controller.
type Cooldowns struct {
	LastSnap    time.Duration
	LastSpeed   time.Duration
	HasSnapped  bool
	HasAdjusted bool
}

func (c Cooldowns) snapReady(now, window time.Duration) bool {
	return !c.HasSnapped || now-c.LastSnap >= window
}

func (c Cooldowns) speedReady(now, window time.Duration) bool {
	return !c.HasAdjusted || now-c.LastSpeed >= window
}

// State is everything locomotion mutates between frames.
type State struct {
	Clock     time.Duration
	ArcSpeed  float64
	Rig       Rig
	Session   *AimSession
	Cooldowns map[ControllerID]Cooldowns
}

// NewState starts idle at rig with the configured arc speed.
func NewState(p Params, rig Rig) State {
	return State{
		ArcSpeed:  p.ClampSpeed(p.ArcSpeed),
		Rig:       rig,
		Cooldowns: make(map[ControllerID]Cooldowns),
	}
}

// Aiming reports whether an aim session is active.
func (s State) Aiming() bool {
	return s.Session != nil
}

// Target returns the active session's valid landing point, if any.
func (s State) Target() (mgl64.Vec3, bool) {
	if s.Session == nil || s.Session.Landing == nil || !s.Session.Landing.Valid {
		return mgl64.Vec3{}, false
	}
	return s.Session.Landing.Point, true
}

func (s State) clone() State {
	out := s
	out.Cooldowns = maps.Clone(s.Cooldowns)
	if out.Cooldowns == nil {
		out.Cooldowns = make(map[ControllerID]Cooldowns)
	}
	return out
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

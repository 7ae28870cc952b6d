package locomotion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Command is a feedback instruction for the scene. The core never touches
// the renderer; the caller applies these in order.
type Command interface {
	command()
}

// SetCurve replaces the arc's point list.
type SetCurve struct {
	Points  []mgl64.Vec3
	Visible bool
}

// SetMarker places the landing ring.
type SetMarker struct {
	Position mgl64.Vec3
	Visible  bool
}

// RigReason says why the rig moved.
type RigReason int

const (
	RigTeleport RigReason = iota + 1
	RigSnapTurn
)

func (r RigReason) String() string {
	switch r {
	case RigTeleport:
		return "teleport"
	case RigSnapTurn:
		return "snap-turn"
	default:
		return fmt.Sprintf("RigReason(%d)", int(r))
	}
}

// SetRig writes a new rig transform.
type SetRig struct {
	Rig    Rig
	Reason RigReason
}

// Status is a plain text line for the HUD.
type Status struct {
	Text string
}

func (SetCurve) command()  {}
func (SetMarker) command() {}
func (SetRig) command()    {}
func (Status) command()    {}

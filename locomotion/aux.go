package locomotion

import (
	"fmt"
	"math"
)

// SelectAxes picks, among the axis pairs (0,1), (2,3), ..., the pair with
// the largest magnitude. Devices with both a touchpad and a thumbstick report
// several pairs; the one being touched wins. A trailing unpaired axis is
// ignored.
func SelectAxes(axes []float64) (x, y float64, ok bool) {
	best := -1.0
	for i := 0; i+1 < len(axes); i += 2 {
		m := math.Hypot(axes[i], axes[i+1])
		if m > best {
			best = m
			x, y = axes[i], axes[i+1]
			ok = true
		}
	}
	return x, y, ok
}

// applyAux runs snap-turn and arc-speed adjustment for one controller. The
// two actions keep separate cooldowns, so one never blocks the other.
func (l *Locomotor) applyAux(s *State, c ControllerInput, cmds []Command) []Command {
	x, y, ok := SelectAxes(c.Axes)
	if !ok {
		return cmds
	}

	p := l.params
	cd := s.Cooldowns[c.ID]
	changed := false

	if math.Abs(x) > p.SnapDeadzone && cd.snapReady(s.Clock, p.SnapCooldown) {
		sign := 1.0
		if x < 0 {
			sign = -1
		}
		// Stick right turns right, which is a negative rotation about +Y.
		s.Rig.Yaw = wrapAngle(s.Rig.Yaw - sign*p.SnapAngle())
		cd.LastSnap = s.Clock
		cd.HasSnapped = true
		changed = true
		cmds = append(cmds, SetRig{Rig: s.Rig, Reason: RigSnapTurn})
	}

	if math.Abs(y) > p.SpeedDeadzone && cd.speedReady(s.Clock, p.SpeedCooldown) {
		// Pushing the stick forward reads negative and speeds the arc up.
		s.ArcSpeed = p.ClampSpeed(s.ArcSpeed - y*p.SpeedStep)
		cd.LastSpeed = s.Clock
		cd.HasAdjusted = true
		changed = true
		cmds = append(cmds, Status{Text: SpeedReadout(s.ArcSpeed)})
	}

	if changed {
		s.Cooldowns[c.ID] = cd
	}
	return cmds
}

// SpeedReadout formats the arc speed for the HUD.
func SpeedReadout(speed float64) string {
	return fmt.Sprintf("Arc speed: %.1f m/s", speed)
}

package locomotion

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
)

var ErrInvalidParams = errors.New("locomotion: invalid params")

// Params holds the tunables that control how teleporting feels.
type Params struct {
	// Trajectory
	ArcSpeed    float64 `yaml:"arc_speed"`
	MinArcSpeed float64 `yaml:"min_arc_speed"`
	MaxArcSpeed float64 `yaml:"max_arc_speed"`
	Gravity     float64 `yaml:"gravity"`
	TimeStep    float64 `yaml:"time_step"`
	MaxTime     float64 `yaml:"max_time"`
	MaxSteps    int     `yaml:"max_steps"`

	// Floor
	FloorHeight float64 `yaml:"floor_height"`
	MaxRadius   float64 `yaml:"max_radius"`
	Epsilon     float64 `yaml:"epsilon"`
	MarkerLift  float64 `yaml:"marker_lift"`

	// Auxiliary input
	SnapAngleDeg  float64       `yaml:"snap_angle_deg"`
	SnapDeadzone  float64       `yaml:"snap_deadzone"`
	SnapCooldown  time.Duration `yaml:"snap_cooldown"`
	SpeedDeadzone float64       `yaml:"speed_deadzone"`
	SpeedStep     float64       `yaml:"speed_step"`
	SpeedCooldown time.Duration `yaml:"speed_cooldown"`
}

// DefaultParams mirrors prefabs/locomotion.yaml.
func DefaultParams() Params {
	return Params{
		ArcSpeed:    8,
		MinArcSpeed: 3,
		MaxArcSpeed: 16,
		Gravity:     -9.8,
		TimeStep:    0.03,
		MaxTime:     2.0,
		MaxSteps:    60,

		FloorHeight: 0,
		MaxRadius:   110,
		Epsilon:     1e-6,
		MarkerLift:  0.01,

		SnapAngleDeg:  30,
		SnapDeadzone:  0.6,
		SnapCooldown:  300 * time.Millisecond,
		SpeedDeadzone: 0.2,
		SpeedStep:     0.25,
		SpeedCooldown: 50 * time.Millisecond,
	}
}

// Validate reports every problem with p, not just the first.
func (p Params) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
		}
	}

	check(p.MinArcSpeed > 0, "min_arc_speed %.3f must be positive", p.MinArcSpeed)
	check(p.MaxArcSpeed >= p.MinArcSpeed, "max_arc_speed %.3f below min_arc_speed %.3f", p.MaxArcSpeed, p.MinArcSpeed)
	check(p.ArcSpeed >= p.MinArcSpeed && p.ArcSpeed <= p.MaxArcSpeed, "arc_speed %.3f outside [%.3f, %.3f]", p.ArcSpeed, p.MinArcSpeed, p.MaxArcSpeed)
	check(p.TimeStep > 0, "time_step %.4f must be positive", p.TimeStep)
	check(p.MaxTime > 0, "max_time %.3f must be positive", p.MaxTime)
	check(p.MaxSteps > 1, "max_steps %d must be at least 2", p.MaxSteps)
	check(p.MaxRadius > 0, "max_radius %.3f must be positive", p.MaxRadius)
	check(p.Epsilon > 0, "epsilon %g must be positive", p.Epsilon)
	check(p.SnapAngleDeg > 0 && p.SnapAngleDeg < 180, "snap_angle_deg %.1f outside (0, 180)", p.SnapAngleDeg)
	check(p.SnapDeadzone >= 0 && p.SnapDeadzone < 1, "snap_deadzone %.2f outside [0, 1)", p.SnapDeadzone)
	check(p.SpeedDeadzone >= 0 && p.SpeedDeadzone < 1, "speed_deadzone %.2f outside [0, 1)", p.SpeedDeadzone)
	check(p.SnapCooldown >= 0, "snap_cooldown %s is negative", p.SnapCooldown)
	check(p.SpeedCooldown >= 0, "speed_cooldown %s is negative", p.SpeedCooldown)
	check(p.SpeedStep > 0, "speed_step %.3f must be positive", p.SpeedStep)

	return err
}

// GravityVec returns the gravity acceleration as a world vector.
func (p Params) GravityVec() mgl64.Vec3 {
	return mgl64.Vec3{0, p.Gravity, 0}
}

// SnapAngle returns the snap-turn increment in radians.
func (p Params) SnapAngle() float64 {
	return p.SnapAngleDeg * math.Pi / 180
}

// Floor returns the floor plane described by p.
func (p Params) Floor() Floor {
	return Floor{Height: p.FloorHeight, MaxRadius: p.MaxRadius, Epsilon: p.Epsilon}
}

// ClampSpeed keeps speed inside the configured arc speed bounds.
func (p Params) ClampSpeed(speed float64) float64 {
	return mgl64.Clamp(speed, p.MinArcSpeed, p.MaxArcSpeed)
}

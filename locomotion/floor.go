package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var up = mgl64.Vec3{0, 1, 0}

// TargetFilter lets the scene veto landing points that are geometrically
// fine but not standable, such as the top of the dais.
type TargetFilter interface {
	Blocked(p mgl64.Vec3) bool
}

// Landing is where a trajectory meets the floor.
type Landing struct {
	Point mgl64.Vec3
	Valid bool
}

// Floor is the horizontal teleport surface at Height.
type Floor struct {
	Height    float64
	MaxRadius float64
	Epsilon   float64
}

// Segment intersects the segment a->b with the floor plane. Crossings on the
// segment's extension and near-parallel segments are not intersections.
func (f Floor) Segment(a, b mgl64.Vec3) (mgl64.Vec3, bool) {
	dir := b.Sub(a)
	den := up.Dot(dir)
	eps := f.Epsilon
	if eps <= 0 {
		eps = 1e-6
	}
	if math.Abs(den) < eps {
		return mgl64.Vec3{}, false
	}

	t := (f.Height - up.Dot(a)) / den
	if t < 0 || t > 1 {
		return mgl64.Vec3{}, false
	}
	return a.Add(dir.Mul(t)), true
}

// Intersect scans the trajectory from its start and returns the first floor
// crossing. A crossing beyond MaxRadius from the world origin, or one the
// filter blocks, is returned with Valid unset. Later segments are never
// considered once a crossing is found.
func (f Floor) Intersect(points []mgl64.Vec3, filter TargetFilter) (Landing, bool) {
	for i := 1; i < len(points); i++ {
		hit, ok := f.Segment(points[i-1], points[i])
		if !ok {
			continue
		}
		return Landing{Point: hit, Valid: f.InRange(hit) && (filter == nil || !filter.Blocked(hit))}, true
	}
	return Landing{}, false
}

// InRange reports whether p is within MaxRadius of the world origin,
// measured on the floor plane.
func (f Floor) InRange(p mgl64.Vec3) bool {
	if f.MaxRadius <= 0 {
		return true
	}
	return mgl64.Vec2{p.X(), p.Z()}.Len() <= f.MaxRadius
}

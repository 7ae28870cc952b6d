// Package scene holds the temple's static geometry queries.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Blockers is the set of floor areas a teleport may not land in, indexed in
// a Chipmunk space on the floor plane (world X maps to X, world Z to Y).
type Blockers struct {
	space *cp.Space
	count int
}

func NewBlockers() *Blockers {
	return &Blockers{space: cp.NewSpace()}
}

// AddDisc blocks a circle of radius around center.
func (b *Blockers) AddDisc(name string, center mgl64.Vec3, radius float64) {
	if radius <= 0 {
		return
	}
	shape := cp.NewCircle(b.space.StaticBody, radius, floorVec(center))
	b.add(name, shape)
}

// AddBox blocks an axis-aligned width x depth rectangle centred on center.
func (b *Blockers) AddBox(name string, center mgl64.Vec3, width, depth float64) {
	if width <= 0 || depth <= 0 {
		return
	}
	c := floorVec(center)
	bb := cp.BB{L: c.X - width/2, B: c.Y - depth/2, R: c.X + width/2, T: c.Y + depth/2}
	b.add(name, cp.NewBox2(b.space.StaticBody, bb, 0))
}

func (b *Blockers) add(name string, shape *cp.Shape) {
	shape.UserData = name
	b.space.AddShape(shape)
	b.count++
}

// Len returns the number of blocking shapes.
func (b *Blockers) Len() int {
	if b == nil {
		return 0
	}
	return b.count
}

// Blocked reports whether p lies inside any blocker. Only X and Z are used.
func (b *Blockers) Blocked(p mgl64.Vec3) bool {
	_, ok := b.Hit(p)
	return ok
}

// Hit returns the name of the blocker containing p.
func (b *Blockers) Hit(p mgl64.Vec3) (string, bool) {
	if b == nil || b.count == 0 {
		return "", false
	}
	info := b.space.PointQueryNearest(floorVec(p), 0, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil || info.Distance > 0 {
		return "", false
	}
	name, _ := info.Shape.UserData.(string)
	return name, true
}

func floorVec(p mgl64.Vec3) cp.Vector {
	return cp.Vector{X: p.X(), Y: p.Z()}
}

package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// Projector maps a world point to screen pixels.
type Projector func(p mgl64.Vec3) (float32, float32)

// DebugDraw outlines every blocker on the floor plane.
func (b *Blockers) DebugDraw(screen *ebiten.Image, project Projector) {
	if b == nil || b.space == nil || screen == nil || project == nil {
		return
	}
	cp.DrawSpace(b.space, &blockerDrawer{screen: screen, project: project})
}

type blockerDrawer struct {
	screen  *ebiten.Image
	project Projector
}

func (d *blockerDrawer) line(a, b cp.Vector, c color.Color) {
	ax, ay := d.project(mgl64.Vec3{a.X, 0, a.Y})
	bx, by := d.project(mgl64.Vec3{b.X, 0, b.Y})
	vector.StrokeLine(d.screen, ax, ay, bx, by, 1, c, true)
}

func (d *blockerDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	const steps = 32
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / steps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
}

func (d *blockerDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *blockerDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *blockerDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *blockerDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.project(mgl64.Vec3{pos.X, 0, pos.Y})
	vector.FillCircle(d.screen, x, y, float32(size/2), fcolorToRGBA(fill), true)
}

func (d *blockerDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *blockerDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.3, B: 0.3, A: 1.0}
}

func (d *blockerDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 1.0, G: 0.3, B: 0.3, A: 0.5}
}

func (d *blockerDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *blockerDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *blockerDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(max(0, min(v, 1)) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

package system

import (
	"cmp"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/scene"
	"golang.org/x/image/colornames"
)

// RenderSystem draws the temple preview: top-down by default, or a side
// view looking along -X.
type RenderSystem struct {
	Background  color.Color
	GroundColor color.Color
	GroundSize  float64

	// Debug outlines the landing blockers on top of the scene.
	Debug    bool
	Blockers *scene.Blockers

	props []propDraw
}

type propDraw struct {
	prop  *component.Prop
	pos   mgl64.Vec3
	model *component.Model
}

func NewRenderSystem(background, ground color.Color, groundSize float64) *RenderSystem {
	return &RenderSystem{Background: background, GroundColor: ground, GroundSize: groundSize}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	cam := component.Camera{Zoom: 24}
	if e, ok := ecs.First(w, component.CameraComponent); ok {
		if c, ok := ecs.Get(w, e, component.CameraComponent); ok {
			cam = *c
		}
	}
	b := screen.Bounds()

	if r.Background != nil {
		screen.Fill(r.Background)
	}
	r.drawGround(screen, cam, b)
	r.drawProps(w, screen, cam, b)
	r.drawCurve(w, screen, cam, b)
	r.drawMarker(w, screen, cam, b)
	r.drawRig(w, screen, cam, b)

	if r.Debug && !cam.SideView {
		r.Blockers.DebugDraw(screen, func(p mgl64.Vec3) (float32, float32) {
			return Project(cam, b, p)
		})
	}
}

// Project maps a world point into bounds for cam. Top-down puts -Z at the
// top of the screen; the side view puts -Z to the right and +Y up.
func Project(cam component.Camera, bounds image.Rectangle, p mgl64.Vec3) (float32, float32) {
	cx := float64(bounds.Min.X) + float64(bounds.Dx())/2
	cy := float64(bounds.Min.Y) + float64(bounds.Dy())/2
	d := p.Sub(cam.Center)
	if cam.SideView {
		return float32(cx - d.Z()*cam.Zoom), float32(cy - d.Y()*cam.Zoom)
	}
	return float32(cx + d.X()*cam.Zoom), float32(cy + d.Z()*cam.Zoom)
}

func (r *RenderSystem) drawGround(screen *ebiten.Image, cam component.Camera, b image.Rectangle) {
	if r.GroundSize <= 0 || r.GroundColor == nil {
		return
	}
	half := r.GroundSize / 2

	if cam.SideView {
		x0, y := Project(cam, b, mgl64.Vec3{0, 0, half})
		x1, _ := Project(cam, b, mgl64.Vec3{0, 0, -half})
		vector.FillRect(screen, x0, y, x1-x0, float32(b.Max.Y)-y, r.GroundColor, false)
		return
	}

	x0, y0 := Project(cam, b, mgl64.Vec3{-half, 0, -half})
	x1, y1 := Project(cam, b, mgl64.Vec3{half, 0, half})
	vector.FillRect(screen, x0, y0, x1-x0, y1-y0, r.GroundColor, false)

	// Metre grid around the camera, skipped when it would be too dense.
	if cam.Zoom < 8 {
		return
	}
	grid := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x10}
	spanX := float64(b.Dx()) / cam.Zoom / 2
	spanZ := float64(b.Dy()) / cam.Zoom / 2
	for x := math.Floor(cam.Center.X() - spanX); x <= cam.Center.X()+spanX; x++ {
		if math.Abs(x) > half {
			continue
		}
		sx, _ := Project(cam, b, mgl64.Vec3{x, 0, 0})
		vector.StrokeLine(screen, sx, float32(b.Min.Y), sx, float32(b.Max.Y), 1, grid, false)
	}
	for z := math.Floor(cam.Center.Z() - spanZ); z <= cam.Center.Z()+spanZ; z++ {
		if math.Abs(z) > half {
			continue
		}
		_, sy := Project(cam, b, mgl64.Vec3{0, 0, z})
		vector.StrokeLine(screen, float32(b.Min.X), sy, float32(b.Max.X), sy, 1, grid, false)
	}
}

func (r *RenderSystem) drawProps(w *ecs.World, screen *ebiten.Image, cam component.Camera, b image.Rectangle) {
	r.props = r.props[:0]
	ecs.ForEach2(w, component.PropComponent, component.TransformComponent, func(e ecs.Entity, p *component.Prop, t *component.Transform) {
		model, _ := ecs.Get(w, e, component.ModelComponent)
		r.props = append(r.props, propDraw{prop: p, pos: t.Position, model: model})
	})
	slices.SortStableFunc(r.props, func(a, b propDraw) int {
		return cmp.Compare(a.prop.Layer, b.prop.Layer)
	})

	zoom := float32(cam.Zoom)
	for _, d := range r.props {
		p := d.prop
		clr := p.Color
		if clr == nil {
			clr = colornames.Gray
		}
		if d.model != nil && d.model.State == component.ModelUnreachable {
			clr = colornames.Dimgray
		}
		x, y := Project(cam, b, d.pos)

		if cam.SideView {
			halfW := p.Radius
			if p.Shape == component.ShapeBox {
				halfW = p.Depth / 2
			}
			base := d.pos
			if d.model != nil {
				base = base.Add(mgl64.Vec3{0, d.model.Lift, 0})
			}
			_, by := Project(cam, b, base)
			h := float32(p.Height) * zoom
			vector.FillRect(screen, x-float32(halfW)*zoom, by-h, float32(2*halfW)*zoom, h, clr, true)
			continue
		}

		switch p.Shape {
		case component.ShapeBox:
			vector.FillRect(screen, x-float32(p.Width/2)*zoom, y-float32(p.Depth/2)*zoom, float32(p.Width)*zoom, float32(p.Depth)*zoom, clr, true)
		case component.ShapeLotus:
			vector.FillCircle(screen, x, y, float32(p.Radius)*zoom, clr, true)
			petal := float32(p.Radius*0.22) * zoom
			for i := 0; i < p.Petals; i++ {
				a := 2 * math.Pi * float64(i) / float64(p.Petals)
				px := x + float32(math.Cos(a)*p.Radius)*zoom
				py := y + float32(math.Sin(a)*p.Radius)*zoom
				vector.FillCircle(screen, px, py, petal, colornames.Lavenderblush, true)
			}
		case component.ShapeIdol:
			vector.FillCircle(screen, x, y, float32(p.Radius)*zoom, clr, true)
			vector.StrokeCircle(screen, x, y, float32(p.Radius)*zoom, 1.5, colornames.Gold, true)
		default:
			vector.FillCircle(screen, x, y, float32(p.Radius)*zoom, clr, true)
		}
	}
}

func (r *RenderSystem) drawCurve(w *ecs.World, screen *ebiten.Image, cam component.Camera, b image.Rectangle) {
	ecs.ForEach(w, component.CurveComponent, func(_ ecs.Entity, c *component.Curve) {
		if !c.Visible || len(c.Points) < 2 {
			return
		}
		clr := c.Color
		if clr == nil {
			clr = colornames.Cyan
		}
		width := c.Width
		if width <= 0 {
			width = 2
		}
		px, py := Project(cam, b, c.Points[0])
		for _, p := range c.Points[1:] {
			x, y := Project(cam, b, p)
			vector.StrokeLine(screen, px, py, x, y, width, clr, c.AntiAlias)
			px, py = x, y
		}
	})
}

func (r *RenderSystem) drawMarker(w *ecs.World, screen *ebiten.Image, cam component.Camera, b image.Rectangle) {
	ecs.ForEach(w, component.MarkerComponent, func(_ ecs.Entity, m *component.Marker) {
		if !m.Visible {
			return
		}
		clr := m.Color
		if clr == nil {
			clr = colornames.Lightgreen
		}
		x, y := Project(cam, b, m.Position)
		if cam.SideView {
			x0, _ := Project(cam, b, m.Position.Add(mgl64.Vec3{0, 0, m.Outer}))
			x1, _ := Project(cam, b, m.Position.Add(mgl64.Vec3{0, 0, -m.Outer}))
			vector.StrokeLine(screen, x0, y, x1, y, 3, clr, true)
			return
		}
		radius := float32((m.Inner+m.Outer)/2) * float32(cam.Zoom)
		stroke := max(1, float32(m.Outer-m.Inner)*float32(cam.Zoom))
		vector.StrokeCircle(screen, x, y, radius, stroke, clr, true)
	})
}

func (r *RenderSystem) drawRig(w *ecs.World, screen *ebiten.Image, cam component.Camera, b image.Rectangle) {
	e, ok := ecs.First(w, component.RigTagComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	rig := t.Matrix()

	ox, oy := Project(cam, b, t.Position)
	vector.StrokeCircle(screen, ox, oy, 4, 1, colornames.Lightgray, true)

	eye := t.Position
	if head, ok := ecs.Get(w, e, component.HeadComponent); ok {
		eye = rig.Mul4x1(head.Eye.Vec4(1)).Vec3()
	}
	hx, hy := Project(cam, b, eye)
	forward := rig.Mul4x1(mgl64.Vec4{0, 0, -1, 0}).Vec3().Mul(0.6)
	fx, fy := Project(cam, b, eye.Add(forward))
	vector.FillCircle(screen, hx, hy, 6, colornames.White, true)
	vector.StrokeLine(screen, hx, hy, fx, fy, 2, colornames.White, true)

	ecs.ForEach(w, component.ControllerComponent, func(_ ecs.Entity, c *component.Controller) {
		if !c.Tracked {
			return
		}
		m := rig.Mul4(c.Local())
		grip := m.Col(3).Vec3()
		tip := grip.Add(m.Mul4x1(mgl64.Vec4{0, 0, -0.4, 0}).Vec3())
		gx, gy := Project(cam, b, grip)
		tx, ty := Project(cam, b, tip)
		clr := color.Color(colornames.Orange)
		if c.Pressed {
			clr = colornames.Cyan
		}
		vector.FillCircle(screen, gx, gy, 3, clr, true)
		vector.StrokeLine(screen, gx, gy, tx, ty, 1.5, clr, true)
	})
}

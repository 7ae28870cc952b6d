package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Curve is the teleport arc polyline in world space.
type Curve struct {
	Points    []mgl64.Vec3
	Visible   bool
	Width     float32
	Color     color.Color
	AntiAlias bool
}

var CurveComponent = NewComponent[Curve]()

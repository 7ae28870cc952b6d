package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Marker is the landing ring drawn on the floor.
type Marker struct {
	Position mgl64.Vec3
	Visible  bool
	Inner    float64
	Outer    float64
	Color    color.Color
}

var MarkerComponent = NewComponent[Marker]()

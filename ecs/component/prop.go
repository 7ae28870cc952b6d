package component

import "image/color"

type Shape int

const (
	ShapeDisc Shape = iota
	ShapeBox
	ShapeLotus
	ShapeIdol
)

// Prop is static scenery. Blocking props refuse teleport landings.
type Prop struct {
	Name     string
	Shape    Shape
	Radius   float64
	Width    float64
	Depth    float64
	Height   float64
	Petals   int
	Layer    int
	Color    color.Color
	Blocking bool
}

var PropComponent = NewComponent[Prop]()

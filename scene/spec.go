package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/prefabs"
)

// BlockersFromSpec collects the scene's no-landing areas: the dais when it
// blocks, then every listed blocker. Shapes other than "box" are discs.
func BlockersFromSpec(spec prefabs.SceneSpec) *Blockers {
	b := NewBlockers()
	if spec.Dais.Blocking {
		b.AddDisc("dais", mgl64.Vec3{}, spec.Dais.Radius)
	}
	for _, bl := range spec.Blockers {
		if bl.Shape == "box" {
			b.AddBox(bl.Name, bl.Position, bl.Width, bl.Depth)
		} else {
			b.AddDisc(bl.Name, bl.Position, bl.Radius)
		}
	}
	return b
}

package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
)

// StatusSystem shows the latest status event on the HUD for a fixed number
// of frames.
type StatusSystem struct {
	frames int
}

func NewStatusSystem(frames int) *StatusSystem {
	if frames <= 0 {
		frames = 120
	}
	return &StatusSystem{frames: frames}
}

func (s *StatusSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, ok := "", false
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventStatus {
			continue
		}
		if text, isText := evt.Data.(string); isText {
			latest, ok = text, true
		}
	}

	ecs.ForEach(w, component.StatusComponent, func(_ ecs.Entity, st *component.Status) {
		if ok {
			st.Text = latest
			st.Frames = s.frames
			return
		}
		if st.Frames > 0 {
			st.Frames--
			if st.Frames == 0 {
				st.Text = ""
			}
		}
	})
}

func (s *StatusSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	b := screen.Bounds()
	ecs.ForEach(w, component.StatusComponent, func(_ ecs.Entity, st *component.Status) {
		if st.Text == "" {
			return
		}
		ebitenutil.DebugPrintAt(screen, st.Text, b.Min.X+12, b.Max.Y-24)
	})
}

package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds the scene's cue players keyed by cue name.
type Audio struct {
	Players map[string]*audio.Player
	Volume  float64
}

var AudioComponent = NewComponent[Audio]()

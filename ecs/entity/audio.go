package entity

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/templehub/assets"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/ecs/system"
)

// NewCues adds the entity holding the locomotion sound cues. They are
// synthesized, so the scene needs no audio files.
func NewCues(w *ecs.World, volume float64) (ecs.Entity, error) {
	players := map[string]*audio.Player{
		system.CueTeleport: assets.TonePlayer(660, 120*time.Millisecond, 0.6),
		system.CueSnapTurn: assets.TonePlayer(440, 50*time.Millisecond, 0.4),
		system.CueReload:   assets.TonePlayer(880, 80*time.Millisecond, 0.3),
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AudioComponent, component.Audio{Players: players, Volume: volume}); err != nil {
		return 0, fmt.Errorf("cues: add audio: %w", err)
	}
	return e, nil
}

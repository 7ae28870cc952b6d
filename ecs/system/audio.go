package system

import (
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
)

// Cue names played for scene events.
const (
	CueTeleport = "teleport"
	CueSnapTurn = "snap"
	CueReload   = "reload"
)

// AudioSystem plays a short cue for each locomotion event this frame.
type AudioSystem struct {
	Muted bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil || a.Muted {
		return
	}

	cues := CuesFor(w.Events().Peek())
	if len(cues) == 0 {
		return
	}

	ecs.ForEach(w, component.AudioComponent, func(_ ecs.Entity, audioComp *component.Audio) {
		for _, cue := range cues {
			player := audioComp.Players[cue]
			if player == nil {
				continue
			}
			player.SetVolume(audioComp.Volume)
			if err := player.Rewind(); err != nil {
				continue
			}
			player.Play()
		}
	})
}

// CuesFor maps events to cue names, at most once per cue.
func CuesFor(events []ecs.Event) []string {
	var cues []string
	add := func(cue string) {
		for _, c := range cues {
			if c == cue {
				return
			}
		}
		cues = append(cues, cue)
	}
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventTeleport:
			add(CueTeleport)
		case ecs.EventSnapTurn:
			add(CueSnapTurn)
		case ecs.EventPrefabReloaded:
			add(CueReload)
		}
	}
	return cues
}

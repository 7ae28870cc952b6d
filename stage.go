package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/templehub/assets"
	"github.com/milk9111/templehub/logging"
	"github.com/milk9111/templehub/playlist"
	"go.uber.org/zap"
)

type stageKind int

const (
	stageEmpty stageKind = iota
	stageScene
	stageAudio
	stageImage
	stageEmbed
)

var stageBackground = color.NRGBA{R: 0x0b, G: 0x0a, B: 0x10, A: 0xff}

// Stage shows the selected playlist item. Only one item is on the stage at
// a time; switching closes the previous audio player.
type Stage struct {
	kind   stageKind
	item   playlist.Item
	player *audio.Player
	image  *ebiten.Image
	embed  string
	log    *zap.Logger
}

func NewStage() *Stage {
	return &Stage{log: logging.Named("stage")}
}

// Show switches the stage to item. The returned error is for the toast;
// the stage always falls back to something drawable.
func (s *Stage) Show(item playlist.Item, now time.Time) error {
	s.stopAudio()
	s.item = item
	s.image = nil
	s.embed = playlist.EmbedURL(item, now)

	switch item.Type {
	case playlist.TypeWebXR:
		s.kind = stageScene
		return nil

	case playlist.TypeAudio:
		s.kind = stageAudio
		p, err := assets.LoadAudioPlayer(item.URL)
		if err != nil {
			s.log.Warn("load audio", zap.String("url", item.URL), zap.Error(err))
			return fmt.Errorf("stage: audio %s: %w", item.Title, err)
		}
		s.player = p
		s.player.Play()
		return nil

	case playlist.TypeImage:
		s.kind = stageImage
		img, err := assets.LoadImage(item.URL)
		if err != nil {
			s.image = assets.Placeholder()
			s.log.Warn("load image", zap.String("url", item.URL), zap.Error(err))
			return fmt.Errorf("stage: image %s: %w", item.Title, err)
		}
		s.image = img
		return nil

	default:
		s.kind = stageEmbed
		s.image = assets.Placeholder()
		return nil
	}
}

// Thumbnail returns the preview image to fetch for an embed card.
func (s *Stage) Thumbnail() (string, bool) {
	if s.kind != stageEmbed {
		return "", false
	}
	return playlist.ThumbnailURL(s.item), true
}

// SetThumbnail shows img on the embed card if ref still belongs to the
// item on stage. Late results for an earlier item are dropped.
func (s *Stage) SetThumbnail(ref string, img *ebiten.Image) bool {
	if img == nil || s.kind != stageEmbed || playlist.ThumbnailURL(s.item) != ref {
		return false
	}
	s.image = img
	return true
}

// Scene reports whether the temple scene owns the stage.
func (s *Stage) Scene() bool {
	return s.kind == stageScene
}

// TogglePause pauses or resumes the audio item.
func (s *Stage) TogglePause() {
	if s.player == nil {
		return
	}
	if s.player.IsPlaying() {
		s.player.Pause()
	} else {
		s.player.Play()
	}
}

func (s *Stage) stopAudio() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	if err := s.player.Close(); err != nil {
		s.log.Debug("close audio player", zap.Error(err))
	}
	s.player = nil
}

func (s *Stage) Close() error {
	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	return err
}

// Draw renders everything but the scene, which the ECS draws.
func (s *Stage) Draw(screen *ebiten.Image, face text.Face) {
	if s.kind == stageScene {
		return
	}
	screen.Fill(stageBackground)
	b := screen.Bounds()

	switch s.kind {
	case stageImage:
		s.drawImage(screen, s.image, 0.9)
		s.caption(screen, face, s.item.Title, float64(b.Max.Y)-48)

	case stageAudio:
		cx, cy := float32(b.Min.X+b.Dx()/2), float32(b.Min.Y+b.Dy()/2)
		vector.StrokeCircle(screen, cx, cy, 90, 3, accentColor, true)
		if s.player != nil && s.player.IsPlaying() {
			vector.FillCircle(screen, cx, cy, 12, accentColor, true)
		}
		s.caption(screen, face, s.item.Title, float64(cy)+120)
		status := "could not load"
		if s.player != nil {
			status = formatPosition(s.player.Position())
			if !s.player.IsPlaying() {
				status += "  (paused, P to resume)"
			}
		}
		s.caption(screen, face, status, float64(cy)+146)

	case stageEmbed:
		s.drawImage(screen, s.image, 0.25)
		badge := playlist.TypeBadge(s.item.Type)
		s.caption(screen, face, fmt.Sprintf("%s  [%s]", s.item.Title, badge), float64(b.Min.Y+b.Dy()/2)+80)
		s.caption(screen, face, s.embed, float64(b.Min.Y+b.Dy()/2)+106)

	default:
		s.caption(screen, face, "Nothing selected", float64(b.Min.Y+b.Dy()/2))
	}
}

// drawImage centres img, scaled to fit frac of the screen.
func (s *Stage) drawImage(screen, img *ebiten.Image, frac float64) {
	if img == nil {
		return
	}
	b := screen.Bounds()
	ib := img.Bounds()
	scale := min(float64(b.Dx())*frac/float64(ib.Dx()), float64(b.Dy())*frac/float64(ib.Dy()))
	if scale > 1 && frac < 0.5 {
		scale = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(
		float64(b.Min.X)+(float64(b.Dx())-float64(ib.Dx())*scale)/2,
		float64(b.Min.Y)+(float64(b.Dy())-float64(ib.Dy())*scale)/2,
	)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (s *Stage) caption(screen *ebiten.Image, face text.Face, str string, y float64) {
	if face == nil || str == "" {
		return
	}
	b := screen.Bounds()
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(b.Min.X+b.Dx()/2), y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, str, face, op)
}

func formatPosition(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

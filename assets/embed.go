package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/templehub/media"
)

//go:embed *.png
var assetsFS embed.FS

const SampleRate = 44100

// Stage images are scaled down to fit this box before upload.
const (
	MaxImageWidth  = 960
	MaxImageHeight = 720
)

var ErrUnsupportedAudio = errors.New("assets: unsupported audio format")

var (
	rootMu sync.RWMutex
	root   = "."

	audioOnce    sync.Once
	audioContext *audio.Context

	placeholderOnce sync.Once
	placeholder     *ebiten.Image
)

// SetRoot sets the directory local media references resolve under.
func SetRoot(dir string) {
	rootMu.Lock()
	defer rootMu.Unlock()
	if dir == "" {
		dir = "."
	}
	root = dir
}

func Root() string {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// Context returns the process audio context, creating it on first use.
func Context() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadFile reads a local media reference such as "/assets/audio/x.mp3".
// Embedded files are used when nothing exists under the root.
func LoadFile(ref string) ([]byte, error) {
	path, err := media.ResolveLocal(Root(), ref)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err == nil {
		return b, nil
	}
	if embedded, embErr := assetsFS.ReadFile(cleanAssetPath(ref)); embErr == nil {
		return embedded, nil
	}
	return nil, fmt.Errorf("assets: load %s: %w", ref, err)
}

// DecodeImage loads and decodes an image reference, scaled to the stage box.
func DecodeImage(ref string) (image.Image, error) {
	b, err := LoadFile(ref)
	if err != nil {
		return nil, err
	}
	img, err := media.Decode(cleanAssetPath(ref), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return media.Fit(img, MaxImageWidth, MaxImageHeight), nil
}

func LoadImage(ref string) (*ebiten.Image, error) {
	img, err := DecodeImage(ref)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// Placeholder is shown on the stage when an item has nothing to draw.
func Placeholder() *ebiten.Image {
	placeholderOnce.Do(func() {
		img, err := LoadImage("placeholder.png")
		if err != nil {
			placeholder = ebiten.NewImage(64, 64)
			return
		}
		placeholder = img
	})
	return placeholder
}

// LoadAudioPlayer decodes an mp3 or wav reference into a player.
func LoadAudioPlayer(ref string) (*audio.Player, error) {
	ext := strings.ToLower(filepath.Ext(cleanAssetPath(ref)))
	if ext != ".mp3" && ext != ".wav" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAudio, ref)
	}
	b, err := LoadFile(ref)
	if err != nil {
		return nil, err
	}

	ctx := Context()
	reader := bytes.NewReader(b)
	if ext == ".mp3" {
		stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("assets: decode mp3 %q: %w", ref, err)
		}
		return ctx.NewPlayer(stream)
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %q: %w", ref, err)
	}
	return ctx.NewPlayer(stream)
}

// TonePlayer returns a player for a short synthesized cue.
func TonePlayer(freq float64, dur time.Duration, volume float64) *audio.Player {
	ctx := Context()
	return ctx.NewPlayerFromBytes(media.TonePCM(ctx.SampleRate(), freq, dur, volume))
}

// cleanAssetPath turns a reference into an assets-relative slash path,
// dropping any query or fragment.
func cleanAssetPath(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	s := strings.TrimPrefix(filepath.ToSlash(ref), "/")
	if idx := strings.LastIndex(s, "assets/"); idx >= 0 && (idx == 0 || s[idx-1] == '/') {
		return s[idx+len("assets/"):]
	}
	return s
}

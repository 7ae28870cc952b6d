package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/assets/audio/chalisa.mp3", "audio/chalisa.mp3"},
		{"assets/images/saraswati.gif?v=2", "images/saraswati.gif"},
		{"/srv/hub/assets/3d/saraswathi.glb", "3d/saraswathi.glb"},
		{"placeholder.png", "placeholder.png"},
		{"/myassets/x.png", "myassets/x.png"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanAssetPath(c.in); got != c.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func useRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := Root()
	SetRoot(dir)
	t.Cleanup(func() { SetRoot(prev) })
	return dir
}

func TestLoadFileFromRoot(t *testing.T) {
	dir := useRoot(t)
	if err := os.MkdirAll(filepath.Join(dir, "assets", "audio"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "audio", "bell.wav"), []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := LoadFile("/assets/audio/bell.wav")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(b) != "RIFF" {
		t.Fatalf("unexpected contents %q", b)
	}
	if _, err := LoadFile("/assets/audio/missing.wav"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestEmbeddedFallback(t *testing.T) {
	useRoot(t)
	img, err := DecodeImage("/assets/placeholder.png")
	if err != nil {
		t.Fatalf("embedded placeholder should decode: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestDecodeImageFits(t *testing.T) {
	dir := useRoot(t)
	src := image.NewNRGBA(image.Rect(0, 0, MaxImageWidth*2, 10))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wide.png"), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeImage("wide.png")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != MaxImageWidth || img.Bounds().Dy() != 5 {
		t.Fatalf("expected %dx5, got %v", MaxImageWidth, img.Bounds())
	}
}

func TestLoadAudioPlayerRejectsUnknownFormat(t *testing.T) {
	dir := useRoot(t)
	if err := os.WriteFile(filepath.Join(dir, "song.ogg"), []byte("OggS"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAudioPlayer("song.ogg"); !errors.Is(err, ErrUnsupportedAudio) {
		t.Fatalf("expected ErrUnsupportedAudio, got %v", err)
	}
}

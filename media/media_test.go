package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestDecodeByExtension(t *testing.T) {
	var pngBuf, gifBuf bytes.Buffer
	if err := png.Encode(&pngBuf, checker(4, 3)); err != nil {
		t.Fatal(err)
	}
	if err := gif.Encode(&gifBuf, checker(4, 3), nil); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		data []byte
	}{
		{"idol.PNG", pngBuf.Bytes()},
		{"idol.gif", gifBuf.Bytes()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img, err := Decode(c.name, bytes.NewReader(c.data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
				t.Fatalf("unexpected bounds %v", img.Bounds())
			}
		})
	}

	if _, err := Decode("song.mp3", bytes.NewReader(nil)); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, err := Decode("broken.png", bytes.NewReader([]byte("nope"))); err == nil {
		t.Fatalf("expected decode error")
	}
	if !IsImage("a/b.WEBP") || IsImage("a/b.mp3") {
		t.Fatalf("IsImage misclassified")
	}
}

func TestDecodeRef(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker(5, 2)); err != nil {
		t.Fatal(err)
	}

	refs := []string{
		"https://i.ytimg.com/vi/abc/hqdefault.png?v=1",
		"https://dummyimage.com/320x180/000/fff.png&text=YouTube",
		"/assets/images/idol",
	}
	for _, ref := range refs {
		t.Run(ref, func(t *testing.T) {
			img, err := DecodeRef(ref, buf.Bytes())
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 2 {
				t.Fatalf("unexpected bounds %v", img.Bounds())
			}
		})
	}

	if _, err := DecodeRef("https://example.com/thumb", []byte("not an image")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestFit(t *testing.T) {
	src := checker(400, 200)

	got := Fit(src, 100, 100)
	if got.Bounds().Dx() != 100 || got.Bounds().Dy() != 50 {
		t.Fatalf("expected 100x50, got %v", got.Bounds())
	}
	if Fit(src, 800, 800) != image.Image(src) {
		t.Fatalf("images that fit should be returned as is")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	res := <-SaveSnapshot(context.Background(), dir, checker(8, 6), now)
	if res.Err != nil {
		t.Fatalf("snapshot: %v", res.Err)
	}
	if filepath.Base(res.Path) != "temple-20260102-030405.000.webp" {
		t.Fatalf("unexpected name %s", res.Path)
	}

	f, err := os.Open(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := Decode(res.Path, f)
	if err != nil {
		t.Fatalf("webp should decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestSnapshotCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := <-SaveSnapshot(ctx, t.TempDir(), checker(2, 2), time.Now())
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", res.Err)
	}
}

func TestProbeRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/head.glb" && r.Method == http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/range.glb" && r.Method == http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case r.URL.Path == "/range.glb" && r.Header.Get("Range") == "bytes=0-0":
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write([]byte("g"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewProber("")
	ctx := context.Background()

	if err := p.Probe(ctx, srv.URL+"/head.glb"); err != nil {
		t.Fatalf("HEAD should succeed: %v", err)
	}
	if err := p.Probe(ctx, srv.URL+"/range.glb"); err != nil {
		t.Fatalf("ranged GET fallback should succeed: %v", err)
	}
	if err := p.Probe(ctx, srv.URL+"/missing.glb"); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestProbeLocal(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "assets", "3d"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "assets", "3d", "saraswathi.glb"), []byte("glTF"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewProber(root)
	ctx := context.Background()
	if err := p.Probe(ctx, "/assets/3d/saraswathi.glb"); err != nil {
		t.Fatalf("local model should be reachable: %v", err)
	}
	if err := p.Probe(ctx, "/assets/3d/missing.glb"); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if err := p.Probe(ctx, "/assets/3d"); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("directories should not count, got %v", err)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/thumb.jpg" {
			_, _ = w.Write([]byte("jpeg bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "assets", "cover.png"), []byte("png bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewProber(root)
	ctx := context.Background()

	b, err := p.Fetch(ctx, srv.URL+"/thumb.jpg")
	if err != nil || string(b) != "jpeg bytes" {
		t.Fatalf("remote fetch: %q, %v", b, err)
	}
	if _, err := p.Fetch(ctx, srv.URL+"/missing.jpg"); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}

	b, err = p.Fetch(ctx, "/assets/cover.png")
	if err != nil || string(b) != "png bytes" {
		t.Fatalf("local fetch: %q, %v", b, err)
	}
	if _, err := p.Fetch(ctx, "/assets/gone.png"); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if _, err := p.Fetch(ctx, "../outside.png"); err == nil {
		t.Fatalf("paths cannot climb above the root")
	}
}

func TestResolveLocal(t *testing.T) {
	cases := []struct {
		ref  string
		want string
		err  bool
	}{
		{"/assets/audio/Saraswati%20Chalisa.mp3?t=1", filepath.Join("root", "assets", "audio", "Saraswati Chalisa.mp3"), false},
		{"assets/images/saraswati.gif", filepath.Join("root", "assets", "images", "saraswati.gif"), false},
		{"/../../etc/passwd", filepath.Join("root", "etc", "passwd"), false},
		{"/", "", true},
		{"https://example.com/a.mp3", "", true},
	}
	for _, c := range cases {
		got, err := ResolveLocal("root", c.ref)
		if (err != nil) != c.err {
			t.Fatalf("ResolveLocal(%q) error = %v, want error %v", c.ref, err, c.err)
		}
		if got != c.want {
			t.Fatalf("ResolveLocal(%q) = %q, want %q", c.ref, got, c.want)
		}
	}
}

func TestTonePCM(t *testing.T) {
	pcm := TonePCM(44100, 440, 100*time.Millisecond, 0.5)
	if len(pcm) != 4410*4 {
		t.Fatalf("expected %d bytes, got %d", 4410*4, len(pcm))
	}
	if pcm[0] != 0 || pcm[1] != 0 {
		t.Fatalf("tone should fade in from silence")
	}
	if TonePCM(44100, 440, 0, 1) != nil {
		t.Fatalf("zero duration should yield no samples")
	}
}

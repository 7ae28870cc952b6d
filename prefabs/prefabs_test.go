package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/playlist"
)

func useDir(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	prev := Dir()
	SetDir(d)
	t.Cleanup(func() { SetDir(prev) })
	return d
}

func TestEmbeddedDefaults(t *testing.T) {
	useDir(t)

	p, err := LoadLocomotion()
	if err != nil {
		t.Fatalf("embedded locomotion.yaml should load: %v", err)
	}
	if p != locomotion.DefaultParams() {
		t.Fatalf("embedded params drifted from defaults:\n%+v\n%+v", p, locomotion.DefaultParams())
	}

	scene, err := LoadScene()
	if err != nil {
		t.Fatalf("embedded scene.yaml should load: %v", err)
	}
	if scene.Dais.Radius != 1.8 || scene.Dais.Petals != 20 {
		t.Fatalf("unexpected dais %+v", scene.Dais)
	}
	if scene.Gesture.Cooldown != 1200*time.Millisecond {
		t.Fatalf("unexpected gesture cooldown %s", scene.Gesture.Cooldown)
	}
	if got := scene.Marker.Color.Or(color.Black); got != (color.NRGBA{R: 0x9e, G: 0xfc, B: 0x8f, A: 0xd9}) {
		t.Fatalf("unexpected marker color %v", got)
	}

	pl, err := LoadPlaylist("")
	if err != nil {
		t.Fatalf("embedded playlist.yaml should load: %v", err)
	}
	if len(pl.Items) != 9 || pl.Items[0].Type != playlist.TypeWebXR {
		t.Fatalf("unexpected playlist %+v", pl.Items)
	}

	f, err := playlist.NewFilters(pl.Presets, LoadScript)
	if err != nil {
		t.Fatalf("embedded presets should compile: %v", err)
	}
	got := f.Apply(pl.Items, "stotrams", "")
	if len(got) != 3 {
		t.Fatalf("expected 3 stotrams, got %+v", got)
	}
}

func TestDiskOverride(t *testing.T) {
	d := useDir(t)

	if err := os.WriteFile(filepath.Join(d, LocomotionFile), []byte("arc_speed: 10\nsnap_cooldown: 1s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadLocomotion()
	if err != nil {
		t.Fatalf("override should load: %v", err)
	}
	if p.ArcSpeed != 10 || p.SnapCooldown != time.Second {
		t.Fatalf("override not applied: %+v", p)
	}
	if p.MaxSteps != 60 {
		t.Fatalf("missing keys should keep defaults, got max_steps %d", p.MaxSteps)
	}
	if _, ok := ModTime(LocomotionFile); !ok {
		t.Fatalf("expected a mod time for the disk file")
	}
}

func TestInvalidLocomotionFallsBack(t *testing.T) {
	d := useDir(t)

	if err := os.WriteFile(filepath.Join(d, LocomotionFile), []byte("min_arc_speed: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadLocomotion()
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	if p != locomotion.DefaultParams() {
		t.Fatalf("invalid file should fall back to defaults")
	}
}

func TestLoadSceneRejectsBadBlocker(t *testing.T) {
	d := useDir(t)
	body := "dais:\n  radius: 1\nblockers:\n  - name: x\n    shape: cone\n"
	if err := os.WriteFile(filepath.Join(d, SceneFile), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScene(); err == nil {
		t.Fatalf("expected unknown shape error")
	}
}

func TestLoadPlaylistFromJSONPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	body := `{"items":[{"type":"audio","title":"Vandana","url":"/a.mp3"}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadPlaylist(path)
	if err != nil {
		t.Fatalf("json playlist should parse: %v", err)
	}
	if len(spec.Items) != 1 || spec.Items[0].ID == "" {
		t.Fatalf("expected one item with a generated id, got %+v", spec.Items)
	}
}

func TestYAMLColorErrors(t *testing.T) {
	d := useDir(t)
	if err := os.WriteFile(filepath.Join(d, SceneFile), []byte("dais:\n  radius: 1\nbackground: \"#12\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScene(); err == nil {
		t.Fatalf("expected color format error")
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	d := t.TempDir()
	w, err := NewWatcher(d)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(d, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d, SceneFile), []byte("name: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Events:
		if c.Name != SceneFile || c.Kind != ChangeSpec {
			t.Fatalf("expected spec change to %s, got %+v", SceneFile, c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}

func TestWatcherClassifiesScripts(t *testing.T) {
	d := t.TempDir()
	w, err := NewWatcher(d)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(d, "stotrams.tengo"), []byte("match := true"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Events:
		if c.Name != "stotrams.tengo" || c.Kind != ChangeScript {
			t.Fatalf("expected script change, got %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("expected events channel closed")
	}
}

package hub

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/templehub/gesture"
	"github.com/milk9111/templehub/playlist"
)

func items() []playlist.Item {
	return []playlist.Item{
		{ID: "vr", Type: playlist.TypeWebXR, Title: "VR: Temple", URL: "/vr.html"},
		{ID: "chalisa", Type: playlist.TypeAudio, Title: "Saraswati Chalisa", URL: "/assets/audio/chalisa.mp3"},
		{ID: "namostute", Type: playlist.TypeAudio, Title: "Saraswati Namostute", URL: "/assets/audio/namostute.mp3"},
		{ID: "stories", Type: playlist.TypeYouTubePlaylist, Title: "Stories", URL: "https://www.youtube.com/playlist?list=PL1"},
	}
}

func newHub(t *testing.T, statePath string) (*Hub, *[]string) {
	t.Helper()
	h := New(playlist.NewNavigator(items(), nil), gesture.DefaultConfig(), statePath)
	var played []string
	h.OnPlay = func(it playlist.Item) { played = append(played, it.ID) }
	return h, &played
}

func TestPlayToasts(t *testing.T) {
	h, played := newHub(t, "")
	if err := h.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if h.ToastText() != "Loading: VR: Temple" {
		t.Fatalf("unexpected toast %q", h.ToastText())
	}

	h.Next()
	if h.ToastText() != "Playing: Saraswati Chalisa" {
		t.Fatalf("audio should say Playing, got %q", h.ToastText())
	}
	if len(*played) != 2 || (*played)[1] != "chalisa" {
		t.Fatalf("unexpected plays %v", *played)
	}

	h.Tick(ToastDuration - time.Millisecond)
	if h.ToastText() == "" {
		t.Fatalf("toast expired early")
	}
	h.Tick(time.Millisecond)
	if h.ToastText() != "" {
		t.Fatalf("toast should expire after %s", ToastDuration)
	}
}

func TestSelectClosesDrawerAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	h, _ := newHub(t, path)
	h.SetDrawer(true)

	h.SetFilter("audio")
	h.Select(1)
	if h.DrawerOpen() {
		t.Fatalf("selecting should close the drawer")
	}
	if it, _ := h.NowPlaying(); it.ID != "namostute" {
		t.Fatalf("expected namostute on stage, got %q", it.ID)
	}

	st, err := playlist.LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if st.Filter != "audio" || st.Index != 1 {
		t.Fatalf("unexpected saved state %+v", st)
	}

	again, _ := newHub(t, path)
	if err := again.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if it, _ := again.NowPlaying(); it.ID != "namostute" {
		t.Fatalf("restored hub should resume namostute, got %q", it.ID)
	}
}

func TestQueryDoesNotPlay(t *testing.T) {
	h, played := newHub(t, "")
	h.SetQuery("  NAMO ")
	if len(*played) != 0 {
		t.Fatalf("search should not change the stage")
	}
	if got := h.Navigator().Items(); len(got) != 1 || got[0].ID != "namostute" {
		t.Fatalf("unexpected matches %v", got)
	}
}

func TestGestureNavigates(t *testing.T) {
	h, _ := newHub(t, "")
	h.Play()

	xs := []float64{0, 60, 0, 60, 0, 60, 0, 60, 0, 60, 0, 60, 0, 60, 0}
	var got gesture.Action
	for _, x := range xs {
		h.Tick(16 * time.Millisecond)
		if a := h.Observe(x, false); a != gesture.None {
			got = a
		}
	}
	if got != gesture.Next {
		t.Fatalf("wave should go next, got %v", got)
	}
	if it, _ := h.NowPlaying(); it.ID != "chalisa" {
		t.Fatalf("expected chalisa after the wave, got %q", it.ID)
	}

	h.Tick(2 * time.Second)
	if a := h.Observe(0, true); a != gesture.Prev {
		t.Fatalf("fist should go back, got %v", a)
	}
	if it, _ := h.NowPlaying(); it.ID != "vr" {
		t.Fatalf("expected vr after the fist, got %q", it.ID)
	}
}

func TestResetGestureDropsHistory(t *testing.T) {
	h, _ := newHub(t, "")
	h.Play()

	// One sample short of a full wave.
	xs := []float64{0, 60, 0, 60, 0, 60, 0, 60, 0, 60, 0, 60, 0, 60}
	for _, x := range xs {
		h.Tick(16 * time.Millisecond)
		if a := h.Observe(x, false); a != gesture.None {
			t.Fatalf("wave fired early: %v", a)
		}
	}

	h.ResetGesture()
	h.Tick(16 * time.Millisecond)
	if a := h.Observe(0, false); a != gesture.None {
		t.Fatalf("a reset wave must start over, got %v", a)
	}
	if it, _ := h.NowPlaying(); it.ID != "vr" {
		t.Fatalf("expected to stay on vr, got %q", it.ID)
	}
}

func TestSetPlaylistKeepsStage(t *testing.T) {
	h, played := newHub(t, "")
	h.Play()
	h.Next()

	reloaded := append(items(), playlist.Item{ID: "extra", Type: playlist.TypeImage, Title: "Extra", URL: "/x.png"})
	h.SetPlaylist(reloaded, nil)
	if len(*played) != 2 {
		t.Fatalf("unchanged selection should not replay, got %v", *played)
	}

	h.SetPlaylist(items()[2:], nil)
	if it, _ := h.NowPlaying(); it.ID == "chalisa" {
		t.Fatalf("removed item should leave the stage")
	}
}

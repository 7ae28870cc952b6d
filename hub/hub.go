// Package hub holds the media hub's sidebar state: the playlist navigator,
// the drawer, the toast line, gesture navigation and the saved selection.
package hub

import (
	"time"

	"github.com/milk9111/templehub/gesture"
	"github.com/milk9111/templehub/logging"
	"github.com/milk9111/templehub/playlist"
	"go.uber.org/zap"
)

const ToastDuration = 1600 * time.Millisecond

// Hub is driven once per frame by Tick. It never touches the renderer.
type Hub struct {
	nav       *playlist.Navigator
	gestures  *gesture.Detector
	statePath string
	log       *zap.Logger

	open       bool
	clock      time.Duration
	toast      string
	toastUntil time.Duration

	playing    playlist.Item
	hasPlaying bool

	// OnPlay is called whenever the stage should switch to a new item.
	OnPlay func(playlist.Item)
}

// New wraps nav. statePath may be empty to disable persistence.
func New(nav *playlist.Navigator, gestures gesture.Config, statePath string) *Hub {
	return &Hub{
		nav:       nav,
		gestures:  gesture.NewDetector(gestures),
		statePath: statePath,
		log:       logging.Named("hub"),
	}
}

func (h *Hub) Navigator() *playlist.Navigator {
	return h.nav
}

// Restore applies the saved filter and index, then plays the selection.
func (h *Hub) Restore() error {
	var err error
	if h.statePath != "" {
		var st playlist.State
		st, err = playlist.LoadState(h.statePath)
		if err == nil {
			h.nav.Restore(st)
		}
	}
	h.Play()
	return err
}

// Tick advances the hub clock and expires the toast.
func (h *Hub) Tick(dt time.Duration) {
	h.clock += dt
	if h.toast != "" && h.clock >= h.toastUntil {
		h.toast = ""
	}
}

func (h *Hub) Toast(text string) {
	h.toast = text
	h.toastUntil = h.clock + ToastDuration
}

func (h *Hub) ToastText() string {
	return h.toast
}

func (h *Hub) DrawerOpen() bool {
	return h.open
}

func (h *Hub) SetDrawer(open bool) {
	h.open = open
}

func (h *Hub) ToggleDrawer() {
	h.open = !h.open
}

// SetFilter switches the filter, saves it and plays the first match.
func (h *Hub) SetFilter(name string) {
	h.nav.SetFilter(name)
	h.save()
	h.Play()
}

// SetQuery narrows the list by title. It neither saves nor plays.
func (h *Hub) SetQuery(q string) {
	h.nav.SetQuery(q)
}

// Select plays the i-th visible item and closes the drawer.
func (h *Hub) Select(i int) {
	if _, ok := h.nav.Select(i); !ok {
		return
	}
	h.save()
	h.Play()
	h.open = false
}

func (h *Hub) Next() {
	if _, ok := h.nav.Next(); ok {
		h.save()
		h.Play()
	}
}

func (h *Hub) Prev() {
	if _, ok := h.nav.Prev(); ok {
		h.save()
		h.Play()
	}
}

// Observe feeds one pointer sample to the gesture detector and navigates
// when a gesture fires.
func (h *Hub) Observe(x float64, fist bool) gesture.Action {
	action := h.gestures.Observe(gesture.Sample{X: x, Fist: fist, At: h.clock})
	switch action {
	case gesture.Next:
		h.Next()
	case gesture.Prev:
		h.Prev()
	}
	return action
}

// ResetGesture forgets the pointer history, e.g. when the pointer leaves the
// window or the drawer covers the stage.
func (h *Hub) ResetGesture() {
	h.gestures.Reset()
}

// Gesture names the pose the detector last saw.
func (h *Hub) Gesture() string {
	return h.gestures.Gesture()
}

// SetGestures replaces the detector, e.g. after the scene prefab reloads.
func (h *Hub) SetGestures(cfg gesture.Config) {
	h.gestures = gesture.NewDetector(cfg)
}

// SetPlaylist swaps in reloaded items and filters. The stage only changes
// when the selected item did.
func (h *Hub) SetPlaylist(items []playlist.Item, filters *playlist.Filters) {
	if filters != nil {
		h.nav.SetFilters(filters)
	}
	h.nav.SetItems(items)
	if cur, ok := h.nav.Current(); !ok || !h.hasPlaying || cur != h.playing {
		h.Play()
	}
}

// Play sends the current item to the stage.
func (h *Hub) Play() {
	item, ok := h.nav.Current()
	if !ok {
		h.playing, h.hasPlaying = playlist.Item{}, false
		return
	}
	h.playing, h.hasPlaying = item, true

	if item.Type == playlist.TypeAudio {
		h.Toast("Playing: " + item.Title)
	} else {
		h.Toast("Loading: " + item.Title)
	}
	h.log.Info("play", zap.String("id", item.ID), zap.String("type", string(item.Type)), zap.String("title", item.Title))
	if h.OnPlay != nil {
		h.OnPlay(item)
	}
}

// NowPlaying returns the item on the stage.
func (h *Hub) NowPlaying() (playlist.Item, bool) {
	return h.playing, h.hasPlaying
}

func (h *Hub) save() {
	if h.statePath == "" {
		return
	}
	if err := playlist.SaveState(h.statePath, h.nav.State()); err != nil {
		h.log.Warn("save state", zap.Error(err))
	}
}

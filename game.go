package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/templehub/assets"
	"github.com/milk9111/templehub/common"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/ecs/entity"
	"github.com/milk9111/templehub/ecs/system"
	"github.com/milk9111/templehub/hub"
	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/logging"
	"github.com/milk9111/templehub/media"
	"github.com/milk9111/templehub/playlist"
	"github.com/milk9111/templehub/prefabs"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	// DefaultModelURL is used when neither the flag, the environment nor
	// the scene prefab names a model.
	DefaultModelURL = "/assets/3d/saraswathi.glb"
	modelEnv        = "TEMPLEHUB_MODEL"

	cueVolume = 0.8
)

// Config is everything main collects from the command line.
type Config struct {
	PlaylistPath string
	StatePath    string
	Root         string
	PrefabDir    string
	Model        string
	SnapshotDir  string
	Preview      bool
	Debug        bool
}

type Game struct {
	cfg    Config
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	loco      *system.LocomotionSystem
	camera    *system.CameraSystem
	render    *system.RenderSystem
	scene     *entity.Scene
	cues      ecs.Entity

	hub   *hub.Hub
	ui    *HubUI
	stage *Stage

	watcher   *prefabs.Watcher
	prober    *media.Prober
	probe     chan error
	thumbs    chan thumbnail
	snapshot  bool
	snapshots []<-chan media.SnapshotResult
}

func dt() time.Duration {
	return time.Second / common.TPS
}

// ResolveModelURL picks the idol model: flag, then environment, then the
// scene prefab, then DefaultModelURL.
func ResolveModelURL(flagValue string, getenv func(string) string, sceneURL string) string {
	for _, v := range []string{flagValue, getenv(modelEnv), sceneURL} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return DefaultModelURL
}

func handsOf(spec prefabs.SceneSpec) system.HandConfig {
	return system.HandConfig{
		Grip:      spec.Hands.Grip,
		AimRate:   spec.Hands.AimRate,
		WalkSpeed: spec.Head.WalkSpeed,
		PlayArea:  spec.Head.PlayArea,
	}
}

func NewGame(cfg Config) (*Game, error) {
	assets.SetRoot(cfg.Root)
	if cfg.PrefabDir != "" {
		prefabs.SetDir(cfg.PrefabDir)
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = "snapshots"
	}

	g := &Game{
		cfg:    cfg,
		log:    logging.Named("game"),
		world:  ecs.NewWorld(),
		prober: media.NewProber(cfg.Root),
		stage:  NewStage(),
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())

	params, err := prefabs.LoadLocomotion()
	if err != nil {
		g.log.Warn("locomotion prefab, using defaults", zap.Error(err))
	}
	spec, err := prefabs.LoadScene()
	if err != nil {
		g.cancel()
		return nil, err
	}

	g.scene, err = entity.BuildScene(g.world, spec, ResolveModelURL(cfg.Model, os.Getenv, spec.Model.URL))
	if err != nil {
		g.cancel()
		return nil, err
	}
	if g.cues, err = entity.NewCues(g.world, cueVolume); err != nil {
		g.cancel()
		return nil, err
	}

	g.input = system.NewInputSystem(handsOf(spec), dt())
	g.loco = system.NewLocomotionSystem(params, g.scene.Blockers, entity.RigOf(spec), dt())
	g.camera = system.NewCameraSystem()
	g.render = system.NewRenderSystem(spec.Background.Or(colornames.Black), spec.Ground.Color.Or(colornames.Darkslategray), spec.Ground.Size)
	g.render.Debug = cfg.Debug
	g.render.Blockers = g.scene.Blockers
	g.scheduler = ecs.NewScheduler(
		g.input,
		g.loco,
		g.camera,
		system.NewStatusSystem(2*common.TPS),
		system.NewAudioSystem(),
		g.render,
	)

	pl, err := prefabs.LoadPlaylist(cfg.PlaylistPath)
	if err != nil {
		g.cancel()
		return nil, err
	}
	filters, err := playlist.NewFilters(pl.Presets, prefabs.LoadScript)
	if err != nil {
		g.log.Warn("filter presets", zap.Error(err))
	}
	g.hub = hub.New(playlist.NewNavigator(pl.Items, filters), spec.Gesture, cfg.StatePath)
	g.hub.OnPlay = g.onPlay

	if g.ui, err = NewHubUI(g.hub); err != nil {
		g.cancel()
		return nil, err
	}

	if err := g.hub.Restore(); err != nil {
		g.log.Warn("restore state", zap.Error(err))
	}
	g.ui.Refresh()
	if cfg.Preview {
		g.onPlay(playlist.Item{ID: "preview", Type: playlist.TypeWebXR, Title: spec.Name})
	}

	g.watch()
	g.startProbe()
	return g, nil
}

// watch starts hot reload for every override directory that exists.
func (g *Game) watch() {
	var dirs []string
	candidates := []string{prefabs.Dir(), filepath.Join(prefabs.Dir(), "filters")}
	if g.cfg.PlaylistPath != "" {
		candidates = append(candidates, filepath.Dir(g.cfg.PlaylistPath))
	}
	seen := make(map[string]bool)
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		return
	}

	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn("prefab watcher", zap.Error(err))
		return
	}
	g.watcher = w
	g.log.Info("watching prefabs", zap.Strings("dirs", dirs))
}

func (g *Game) startProbe() {
	url := g.scene.ModelURL(g.world)
	ch := make(chan error, 1)
	g.probe = ch
	ctx := g.ctx
	go func() {
		ch <- g.prober.Probe(ctx, url)
	}()
}

type thumbnail struct {
	ref string
	img image.Image
	err error
}

// startThumbnail fetches and decodes ref off the game loop. Only the latest
// request is kept.
func (g *Game) startThumbnail(ref string) {
	ch := make(chan thumbnail, 1)
	g.thumbs = ch
	ctx, prober := g.ctx, g.prober
	go func() {
		res := thumbnail{ref: ref}
		data, err := prober.Fetch(ctx, ref)
		if err == nil {
			res.img, err = media.DecodeRef(ref, data)
		}
		if err == nil {
			res.img = media.Fit(res.img, assets.MaxImageWidth, assets.MaxImageHeight)
		}
		res.err = err
		ch <- res
	}()
}

func (g *Game) onPlay(item playlist.Item) {
	if err := g.stage.Show(item, time.Now()); err != nil {
		g.hub.Toast("Could not load: " + item.Title)
	}
	if ref, ok := g.stage.Thumbnail(); ok {
		g.startThumbnail(ref)
	}
	if !g.stage.Scene() {
		g.loco.Cancel(g.world)
	}
}

func (g *Game) Update() error {
	g.frames++
	g.hub.Tick(dt())

	g.drainBackground()

	typing := g.ui.Typing()
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.hub.SetDrawer(false)
	}
	if !typing {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyTab):
			g.hub.ToggleDrawer()
		case inpututil.IsKeyJustPressed(ebiten.KeyF2):
			g.snapshot = true
		case inpututil.IsKeyJustPressed(ebiten.KeyP):
			g.stage.TogglePause()
		case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
			g.hub.Next()
		case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
			g.hub.Prev()
		}
	}

	x, y := ebiten.CursorPosition()
	if g.hub.DrawerOpen() || x < 0 || y < 0 || x >= common.BaseWidth || y >= common.BaseHeight {
		g.hub.ResetGesture()
	} else {
		g.hub.Observe(float64(x), ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))
	}

	g.ui.Update()

	if g.stage.Scene() {
		if typing && g.input.Enabled {
			g.loco.Cancel(g.world)
		}
		g.input.Enabled = !typing
		g.camera.Enabled = !g.ui.OverDrawer()
		g.scheduler.Update(g.world)
	}
	return nil
}

// drainBackground collects whatever the watcher, the model probe, the
// thumbnail fetch and the snapshot encoders finished since the last frame.
func (g *Game) drainBackground() {
	if g.watcher != nil {
	events:
		for {
			select {
			case change, ok := <-g.watcher.Events:
				if !ok {
					g.watcher = nil
					break events
				}
				g.reload(change)
			case err, ok := <-g.watcher.Errors:
				if !ok {
					g.watcher = nil
					break events
				}
				g.log.Warn("prefab watcher", zap.Error(err))
			default:
				break events
			}
		}
	}

	if g.probe != nil {
		select {
		case err := <-g.probe:
			g.probe = nil
			if err != nil {
				g.scene.SetModelState(g.world, component.ModelUnreachable)
				g.log.Warn("model unreachable", zap.String("url", g.scene.ModelURL(g.world)), zap.Error(err))
				g.hub.Toast("Model unavailable")
			} else {
				g.scene.SetModelState(g.world, component.ModelReady)
			}
		default:
		}
	}

	if g.thumbs != nil {
		select {
		case res := <-g.thumbs:
			g.thumbs = nil
			if res.err != nil {
				g.log.Debug("thumbnail", zap.String("url", res.ref), zap.Error(res.err))
			} else {
				g.stage.SetThumbnail(res.ref, ebiten.NewImageFromImage(res.img))
			}
		default:
		}
	}

	pending := g.snapshots[:0]
	for _, ch := range g.snapshots {
		select {
		case res := <-ch:
			if res.Err != nil {
				g.log.Warn("snapshot", zap.Error(res.Err))
				g.hub.Toast("Snapshot failed")
			} else {
				g.log.Info("snapshot saved", zap.String("path", res.Path))
				g.hub.Toast("Saved " + filepath.Base(res.Path))
			}
		default:
			pending = append(pending, ch)
		}
	}
	g.snapshots = pending
}

// reload applies an edited prefab. Files that fail to load leave the
// running values alone.
func (g *Game) reload(change prefabs.Change) {
	name := change.Name
	var err error
	switch {
	case name == prefabs.LocomotionFile:
		var params locomotion.Params
		if params, err = prefabs.LoadLocomotion(); err == nil {
			g.loco.SetParams(g.world, params)
		}
	case name == prefabs.SceneFile:
		err = g.reloadScene()
	case name == prefabs.PlaylistFile,
		g.cfg.PlaylistPath != "" && name == filepath.Base(g.cfg.PlaylistPath),
		change.Kind == prefabs.ChangeScript:
		err = g.reloadPlaylist()
	default:
		return
	}

	if err != nil {
		g.log.Warn("reload", zap.String("file", name), zap.Error(err))
		g.hub.Toast(fmt.Sprintf("Reload failed: %s", name))
		return
	}
	g.log.Info("reloaded", zap.String("file", name))
	g.hub.Toast("Reloaded " + name)
	if g.stage.Scene() {
		g.world.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: name})
	}
}

func (g *Game) reloadScene() error {
	spec, err := prefabs.LoadScene()
	if err != nil {
		return err
	}

	sc, err := entity.BuildScene(g.world, spec, ResolveModelURL(g.cfg.Model, os.Getenv, spec.Model.URL))
	if err != nil {
		return err
	}
	g.scene.Destroy(g.world)
	g.scene = sc

	g.loco.SetFilter(g.world, sc.Blockers)
	g.loco.ResetRig(g.world, entity.RigOf(spec))
	g.input.SetHands(g.world, handsOf(spec))
	g.hub.SetGestures(spec.Gesture)
	g.render.Background = spec.Background.Or(colornames.Black)
	g.render.GroundColor = spec.Ground.Color.Or(colornames.Darkslategray)
	g.render.GroundSize = spec.Ground.Size
	g.render.Blockers = sc.Blockers
	g.startProbe()
	return nil
}

func (g *Game) reloadPlaylist() error {
	pl, err := prefabs.LoadPlaylist(g.cfg.PlaylistPath)
	if err != nil {
		return err
	}
	filters, err := playlist.NewFilters(pl.Presets, prefabs.LoadScript)
	if err != nil {
		return err
	}
	g.hub.SetPlaylist(pl.Items, filters)
	g.ui.Refresh()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.stage.Scene() {
		g.scheduler.Draw(g.world, screen)
	} else {
		g.stage.Draw(screen, g.ui.face)
	}
	g.ui.Draw(screen)

	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, g.debugLine())
	}

	if g.snapshot {
		g.snapshot = false
		g.snapshots = append(g.snapshots, media.SaveSnapshot(g.ctx, g.cfg.SnapshotDir, capture(screen), time.Now()))
	}
}

func (g *Game) debugLine() string {
	st := g.loco.State()
	return fmt.Sprintf("FPS: %.1f  frame: %d  rig: (%.2f, %.2f) yaw %.0f  arc %.1f m/s  aiming: %v",
		ebiten.ActualFPS(), g.frames,
		st.Rig.Position.X(), st.Rig.Position.Z(), mgl64.RadToDeg(st.Rig.Yaw),
		st.ArcSpeed, st.Aiming(),
	)
}

// capture copies the screen into memory so it can be encoded off the game
// goroutine.
func capture(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

// Close stops background work and releases audio players.
func (g *Game) Close() error {
	g.cancel()

	var err error
	if g.watcher != nil {
		err = multierr.Append(err, g.watcher.Close())
	}
	err = multierr.Append(err, g.stage.Close())
	if a, ok := ecs.Get(g.world, g.cues, component.AudioComponent); ok {
		for _, p := range a.Players {
			if p != nil {
				err = multierr.Append(err, p.Close())
			}
		}
	}
	return err
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

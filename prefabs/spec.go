package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/gesture"
	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/playlist"
	"gopkg.in/yaml.v3"
)

const (
	LocomotionFile = "locomotion.yaml"
	SceneFile      = "scene.yaml"
	PlaylistFile   = "playlist.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadLocomotion reads locomotion.yaml over the built-in defaults.
func LoadLocomotion() (locomotion.Params, error) {
	p := locomotion.DefaultParams()
	data, err := Load(LocomotionFile)
	if err != nil {
		return p, fmt.Errorf("prefabs: load %s: %w", LocomotionFile, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return locomotion.DefaultParams(), fmt.Errorf("prefabs: unmarshal %s: %w", LocomotionFile, err)
	}
	if err := p.Validate(); err != nil {
		return locomotion.DefaultParams(), fmt.Errorf("prefabs: validate %s: %w", LocomotionFile, err)
	}
	return p, nil
}

type SceneSpec struct {
	Name       string         `yaml:"name"`
	Background *YAMLColor     `yaml:"background"`
	Rig        RigSpec        `yaml:"rig"`
	Head       HeadSpec       `yaml:"head"`
	Hands      HandsSpec      `yaml:"hands"`
	Ground     GroundSpec     `yaml:"ground"`
	Dais       DaisSpec       `yaml:"dais"`
	Model      ModelSpec      `yaml:"model"`
	Blockers   []BlockerSpec  `yaml:"blockers"`
	Curve      CurveSpec      `yaml:"curve"`
	Marker     MarkerSpec     `yaml:"marker"`
	Camera     CameraSpec     `yaml:"camera"`
	Gesture    gesture.Config `yaml:"gesture"`
}

type RigSpec struct {
	Position mgl64.Vec3 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

type HeadSpec struct {
	Eye       mgl64.Vec3 `yaml:"eye"`
	WalkSpeed float64    `yaml:"walk_speed"`
	PlayArea  float64    `yaml:"play_area"`
}

type HandsSpec struct {
	Grip    mgl64.Vec3 `yaml:"grip"`
	AimRate float64    `yaml:"aim_rate"`
}

type GroundSpec struct {
	Size  float64    `yaml:"size"`
	Color *YAMLColor `yaml:"color"`
}

type DaisSpec struct {
	Radius     float64    `yaml:"radius"`
	Height     float64    `yaml:"height"`
	Petals     int        `yaml:"petals"`
	Color      *YAMLColor `yaml:"color"`
	PetalColor *YAMLColor `yaml:"petal_color"`
	Blocking   bool       `yaml:"blocking"`
}

type ModelSpec struct {
	URL    string     `yaml:"url"`
	Height float64    `yaml:"height"`
	Lift   float64    `yaml:"lift"`
	Color  *YAMLColor `yaml:"color"`
}

type BlockerSpec struct {
	Name     string     `yaml:"name"`
	Shape    string     `yaml:"shape"`
	Position mgl64.Vec3 `yaml:"position"`
	Radius   float64    `yaml:"radius"`
	Width    float64    `yaml:"width"`
	Depth    float64    `yaml:"depth"`
	Height   float64    `yaml:"height"`
	Color    *YAMLColor `yaml:"color"`
}

type CurveSpec struct {
	Color *YAMLColor `yaml:"color"`
	Width float32    `yaml:"width"`
}

type MarkerSpec struct {
	Color *YAMLColor `yaml:"color"`
	Inner float64    `yaml:"inner"`
	Outer float64    `yaml:"outer"`
}

type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	MinZoom    float64 `yaml:"min_zoom"`
	MaxZoom    float64 `yaml:"max_zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

// LoadScene reads scene.yaml and checks the few fields the scene cannot
// run without.
func LoadScene() (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return SceneSpec{}, err
	}
	if spec.Dais.Radius <= 0 {
		return SceneSpec{}, fmt.Errorf("prefabs: %s: dais radius must be positive", SceneFile)
	}
	for _, b := range spec.Blockers {
		switch b.Shape {
		case "disc", "box":
		default:
			return SceneSpec{}, fmt.Errorf("prefabs: %s: blocker %q has unknown shape %q", SceneFile, b.Name, b.Shape)
		}
	}
	if spec.Gesture == (gesture.Config{}) {
		spec.Gesture = gesture.DefaultConfig()
	}
	return spec, nil
}

type PlaylistSpec struct {
	Items   []playlist.Item   `yaml:"items"`
	Presets []playlist.Preset `yaml:"presets"`
}

// LoadPlaylist reads path when set, otherwise playlist.yaml. JSON files
// parse too.
func LoadPlaylist(path string) (PlaylistSpec, error) {
	var (
		data []byte
		err  error
	)
	name := path
	if path == "" {
		name = PlaylistFile
		data, err = Load(PlaylistFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return PlaylistSpec{}, fmt.Errorf("prefabs: load %s: %w", name, err)
	}

	var spec PlaylistSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return PlaylistSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	spec.Items = playlist.Normalize(spec.Items)
	return spec, nil
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

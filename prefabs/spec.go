package prefabs

import (
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/flyto/common"
	"github.com/milk9111/flyto/nav"
)

const DefaultScene = "scene.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

type SceneSpec struct {
	Name       string      `yaml:"name"`
	Background YAMLColor   `yaml:"background"`
	Camera     CameraSpec  `yaml:"camera"`
	Orbit      OrbitSpec   `yaml:"orbit"`
	Flight     FlightSpec  `yaml:"flight"`
	Panels     []PanelSpec `yaml:"panels"`
}

type CameraSpec struct {
	Position Vec3    `yaml:"position"`
	LookAt   Vec3    `yaml:"look_at"`
	Fov      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
}

type OrbitSpec struct {
	Damping     float64 `yaml:"damping"`
	RotateSpeed float64 `yaml:"rotate_speed"`
	ZoomSpeed   float64 `yaml:"zoom_speed"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

type FlightSpec struct {
	Step     float64 `yaml:"step"`
	Standoff *Vec3   `yaml:"standoff"`
	Easing   string  `yaml:"easing"`
	Script   string  `yaml:"script"`
}

type PanelSpec struct {
	Name     string    `yaml:"name"`
	Label    string    `yaml:"label"`
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
	Color    YAMLColor `yaml:"color"`
	Position Vec3      `yaml:"position"`
}

// LoadSceneSpec loads, defaults and validates a scene prefab.
func LoadSceneSpec(filename string) (SceneSpec, error) {
	if strings.TrimSpace(filename) == "" {
		filename = DefaultScene
	}
	data, err := Load(filename)
	if err != nil {
		return SceneSpec{}, errors.Wrapf(err, "prefabs: load %s", filename)
	}
	spec, err := ParseSceneSpec(data)
	if err != nil {
		return SceneSpec{}, errors.Wrapf(err, "prefabs: %s", filename)
	}
	return spec, nil
}

func ParseSceneSpec(data []byte) (SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SceneSpec{}, errors.Wrap(err, "unmarshal")
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, err
	}
	return spec, nil
}

func (s *SceneSpec) applyDefaults() {
	if s.Name == "" {
		s.Name = "scene"
	}
	if !s.Background.set {
		s.Background = YAMLColor{RGBA: color.RGBA{A: 0xff}, set: true}
	}
	if s.Camera.Fov == 0 {
		s.Camera.Fov = 60
	}
	if s.Camera.Near == 0 {
		s.Camera.Near = 0.1
	}
	if s.Camera.Far == 0 {
		s.Camera.Far = 2000
	}

	orbit := nav.DefaultOrbitConfig()
	if s.Orbit.RotateSpeed == 0 {
		s.Orbit.RotateSpeed = orbit.RotateSpeed
	}
	if s.Orbit.ZoomSpeed == 0 {
		s.Orbit.ZoomSpeed = orbit.ZoomSpeed
	}
	if s.Orbit.MinDistance == 0 {
		s.Orbit.MinDistance = orbit.MinDistance
	}
	if s.Orbit.MaxDistance == 0 {
		s.Orbit.MaxDistance = orbit.MaxDistance
	}

	if s.Flight.Step == 0 {
		s.Flight.Step = nav.DefaultFlightStep
	}
	if s.Flight.Standoff == nil {
		v := Vec3(nav.DefaultStandoff)
		s.Flight.Standoff = &v
	}
	for i := range s.Panels {
		if !s.Panels[i].Color.set {
			s.Panels[i].Color = YAMLColor{RGBA: color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}, set: true}
		}
	}
}

// Validate reports the first problem found.
func (s SceneSpec) Validate() error {
	if !(s.Camera.Fov > 0 && s.Camera.Fov < 180) {
		return errors.Wrapf(ErrInvalidSpec, "camera fov %v out of (0, 180)", s.Camera.Fov)
	}
	if !(s.Camera.Near > 0) || !(s.Camera.Far > s.Camera.Near) {
		return errors.Wrapf(ErrInvalidSpec, "camera near/far %v/%v", s.Camera.Near, s.Camera.Far)
	}
	if s.Orbit.Damping < 0 || s.Orbit.Damping > 1 {
		return errors.Wrapf(ErrInvalidSpec, "orbit damping %v out of [0, 1]", s.Orbit.Damping)
	}
	if s.Orbit.MaxDistance < s.Orbit.MinDistance {
		return errors.Wrapf(ErrInvalidSpec, "orbit max_distance %v < min_distance %v", s.Orbit.MaxDistance, s.Orbit.MinDistance)
	}
	if math.IsNaN(s.Flight.Step) || s.Flight.Step <= 0 || s.Flight.Step > 1 {
		return errors.Wrapf(ErrInvalidSpec, "flight step %v out of (0, 1]", s.Flight.Step)
	}
	if _, err := nav.EasingByName(s.Flight.Easing); err != nil {
		return errors.Wrap(ErrInvalidSpec, err.Error())
	}

	seen := make(map[string]bool, len(s.Panels))
	for i, p := range s.Panels {
		if strings.TrimSpace(p.Name) == "" {
			return errors.Wrapf(ErrInvalidSpec, "panel %d has no name", i)
		}
		if seen[p.Name] {
			return errors.Wrapf(ErrInvalidSpec, "duplicate panel name %q", p.Name)
		}
		seen[p.Name] = true
		if !(p.Width > 0) || !(p.Height > 0) {
			return errors.Wrapf(ErrInvalidSpec, "panel %q size %vx%v", p.Name, p.Width, p.Height)
		}
	}
	return nil
}

// FlightConfig resolves the flight settings, compiling the easing script
// when one is named.
func (s SceneSpec) FlightConfig() (nav.FlightConfig, error) {
	cfg := nav.DefaultFlightConfig()
	cfg.Step = s.Flight.Step
	if s.Flight.Standoff != nil {
		cfg.Standoff = s.Flight.Standoff.Vec()
	}

	ease, err := nav.EasingByName(s.Flight.Easing)
	if err != nil {
		return cfg, err
	}
	cfg.Easing = ease

	if name := strings.TrimSpace(s.Flight.Script); name != "" {
		src, err := LoadScript(name)
		if err != nil {
			return cfg, errors.Wrapf(err, "prefabs: load script %s", name)
		}
		scripted, err := nav.CompileEasingScript(src)
		if err != nil {
			return cfg, errors.Wrapf(err, "prefabs: script %s", name)
		}
		cfg.Easing = scripted
	}
	return cfg, nil
}

func (s SceneSpec) OrbitConfig() nav.OrbitConfig {
	return nav.OrbitConfig{
		Damping:     s.Orbit.Damping,
		RotateSpeed: s.Orbit.RotateSpeed,
		ZoomSpeed:   s.Orbit.ZoomSpeed,
		MinDistance: s.Orbit.MinDistance,
		MaxDistance: s.Orbit.MaxDistance,
	}
}

// Vec3 is a YAML [x, y, z] sequence.
type Vec3 mgl64.Vec3

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return errors.Wrapf(err, "line %d: vector must be a list of numbers", value.Line)
	}
	if len(xs) != 3 {
		return errors.Errorf("line %d: vector needs 3 components, got %d", value.Line, len(xs))
	}
	*v = Vec3{xs[0], xs[1], xs[2]}
	return nil
}

func (v Vec3) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range v {
		child := &yaml.Node{}
		if err := child.Encode(x); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, child)
	}
	return node, nil
}

// YAMLColor is a "#rrggbb" or "#rrggbbaa" string.
type YAMLColor struct {
	color.RGBA
	set bool
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: color must be a string", value.Line)
	}
	rgba, err := common.ParseHexColor(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	c.RGBA = rgba
	c.set = true
	return nil
}

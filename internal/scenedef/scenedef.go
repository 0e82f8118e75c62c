// Package scenedef loads the YAML scene definition and builds the world scene,
// camera and parameter declarations from it.
package scenedef

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"scene-demo/internal/params"
	"scene-demo/internal/world"
)

//go:embed default_scene.yaml
var defaultScene []byte

// ErrRole is returned when a role names an object the definition does not declare.
var ErrRole = errors.New("scenedef: role object not found")

// Vec3 is a YAML [x, y, z] triple.
type Vec3 [3]float32

// Definition is the root of a scene file.
type Definition struct {
	Camera     CameraDef     `yaml:"camera"`
	Background BackgroundDef `yaml:"background"`
	Fog        *FogDef       `yaml:"fog,omitempty"`
	Ambient    AmbientDef    `yaml:"ambient"`
	Spot       *SpotDef      `yaml:"spot,omitempty"`
	Helpers    HelpersDef    `yaml:"helpers"`
	Objects    []ObjectDef   `yaml:"objects"`
	Params     []ParamDef    `yaml:"params"`
	Roles      RolesDef      `yaml:"roles"`
	Highlight  string        `yaml:"highlight,omitempty"`
	Amplitude  float32       `yaml:"amplitude,omitempty"`
}

// CameraDef is a perspective camera. Fov is vertical, in degrees.
type CameraDef struct {
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
	Fov      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// BackgroundDef is a clear color and optionally six cubemap faces (+X, -X, +Y, -Y, +Z, -Z).
type BackgroundDef struct {
	Color string   `yaml:"color,omitempty"`
	Faces []string `yaml:"faces,omitempty"`
}

type FogDef struct {
	Color   string  `yaml:"color"`
	Density float32 `yaml:"density"`
}

type AmbientDef struct {
	Color     string  `yaml:"color"`
	Intensity float32 `yaml:"intensity"`
}

// SpotDef is the single spot light. Helper adds its cone helper to the scene.
type SpotDef struct {
	Position   Vec3    `yaml:"position"`
	Target     Vec3    `yaml:"target"`
	Color      string  `yaml:"color,omitempty"`
	Angle      float32 `yaml:"angle"`
	Penumbra   float32 `yaml:"penumbra"`
	Intensity  float32 `yaml:"intensity"`
	Distance   float32 `yaml:"distance,omitempty"`
	CastShadow bool    `yaml:"cast_shadow,omitempty"`
	Helper     bool    `yaml:"helper,omitempty"`
}

// HelpersDef sizes the axes and grid helpers; zero hides them.
type HelpersDef struct {
	Axes          float32 `yaml:"axes,omitempty"`
	Grid          float32 `yaml:"grid,omitempty"`
	GridDivisions int     `yaml:"grid_divisions,omitempty"`
}

// ObjectDef is one scene object. Type is box, sphere, plane or model.
type ObjectDef struct {
	Name          string      `yaml:"name"`
	Type          string      `yaml:"type"`
	Size          Vec3        `yaml:"size,omitempty"`
	Position      Vec3        `yaml:"position,omitempty"`
	Rotation      Vec3        `yaml:"rotation,omitempty"`
	Scale         *Vec3       `yaml:"scale,omitempty"`
	Source        string      `yaml:"source,omitempty"`
	Material      MaterialDef `yaml:"material,omitempty"`
	CastShadow    bool        `yaml:"cast_shadow,omitempty"`
	ReceiveShadow bool        `yaml:"receive_shadow,omitempty"`
	Hidden        bool        `yaml:"hidden,omitempty"`
}

// MaterialDef is standard (default), basic or shader.
type MaterialDef struct {
	Type       string    `yaml:"type,omitempty"`
	Color      string    `yaml:"color,omitempty"`
	Wireframe  bool      `yaml:"wireframe,omitempty"`
	DoubleSide bool      `yaml:"double_side,omitempty"`
	Texture    string    `yaml:"texture,omitempty"`
	Faces      []FaceDef `yaml:"faces,omitempty"`
	Vertex     string    `yaml:"vertex,omitempty"`
	Fragment   string    `yaml:"fragment,omitempty"`
}

type FaceDef struct {
	Color   string `yaml:"color,omitempty"`
	Texture string `yaml:"texture,omitempty"`
}

// ParamDef declares a live parameter. Default is parsed according to Type.
// Bind pushes changes to "object.property" where property is color,
// wireframe or visible.
type ParamDef struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"`
	Min     float64 `yaml:"min,omitempty"`
	Max     float64 `yaml:"max,omitempty"`
	Default string  `yaml:"default,omitempty"`
	Folder  string  `yaml:"folder,omitempty"`
	Bind    string  `yaml:"bind,omitempty"`
}

// RolesDef names the objects the frame loop animates and picks.
type RolesDef struct {
	Cube   string `yaml:"cube,omitempty"`
	Sphere string `yaml:"sphere,omitempty"`
	Target string `yaml:"target,omitempty"`
}

// Parse decodes a scene definition.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("scenedef: parse: %w", err)
	}
	return &d, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenedef: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded demo scene.
func Default() *Definition {
	d, err := Parse(defaultScene)
	if err != nil {
		panic(err)
	}
	return d
}

// ParamDefs converts the parameter declarations into store definitions.
func (d *Definition) ParamDefs() ([]params.Def, error) {
	out := make([]params.Def, 0, len(d.Params))
	for _, p := range d.Params {
		kind, err := params.ParseKind(p.Type)
		if err != nil {
			return nil, fmt.Errorf("scenedef: param %q: %w", p.Name, err)
		}
		def := params.Def{Name: p.Name, Kind: kind, Min: p.Min, Max: p.Max, Folder: p.Folder}
		def.Default, err = parseDefault(kind, p.Default)
		if err != nil {
			return nil, fmt.Errorf("scenedef: param %q default: %w", p.Name, err)
		}
		out = append(out, def)
	}
	return out, nil
}

func parseDefault(kind params.Kind, raw string) (params.Value, error) {
	v := params.Value{Kind: kind}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return v, nil
	}
	var err error
	switch kind {
	case params.KindRange:
		v.Number, err = strconv.ParseFloat(raw, 64)
	case params.KindBool:
		v.Flag, err = strconv.ParseBool(raw)
	case params.KindColor:
		v.Color, err = world.ParseColor(raw)
	}
	return v, err
}

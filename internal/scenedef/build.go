package scenedef

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"scene-demo/internal/params"
	"scene-demo/internal/world"
)

// Built is a scene ready for the frame loop: the world, its camera, the
// parameter declarations and the objects bound to loop roles.
type Built struct {
	Scene  *world.Scene
	Camera *world.Camera
	Params []params.Def

	Cube   *world.Object
	Sphere *world.Object
	Spot   *world.SpotLight
	Target world.ID

	// Highlight is nil when the definition leaves the hover color unset.
	Highlight *world.Color
	Amplitude float32

	binds map[string]string
}

// Build creates the scene. The camera aspect starts at 1; the host sets it
// from the window size.
func (d *Definition) Build() (*Built, error) {
	b := &Built{
		Scene:     world.NewScene(),
		Amplitude: d.Amplitude,
		binds:     make(map[string]string),
	}

	if err := d.buildEnvironment(b.Scene); err != nil {
		return nil, err
	}

	for _, od := range d.Objects {
		if _, dup := b.Scene.ByName(od.Name); dup {
			return nil, fmt.Errorf("scenedef: duplicate object %q", od.Name)
		}
		o, err := od.build()
		if err != nil {
			return nil, err
		}
		b.Scene.Add(o)
	}

	b.Camera = d.Camera.build()

	var err error
	if b.Params, err = d.ParamDefs(); err != nil {
		return nil, err
	}
	for _, p := range d.Params {
		if p.Bind != "" {
			b.binds[p.Name] = p.Bind
		}
	}

	if b.Cube, err = d.role(b.Scene, "cube", d.Roles.Cube); err != nil {
		return nil, err
	}
	if b.Sphere, err = d.role(b.Scene, "sphere", d.Roles.Sphere); err != nil {
		return nil, err
	}
	target, err := d.role(b.Scene, "target", d.Roles.Target)
	if err != nil {
		return nil, err
	}
	if target != nil {
		b.Target = target.ID()
	}

	b.Spot = b.Scene.Spot
	if d.Highlight != "" {
		c, err := world.ParseColor(d.Highlight)
		if err != nil {
			return nil, fmt.Errorf("scenedef: highlight: %w", err)
		}
		b.Highlight = &c
	}
	return b, nil
}

// role resolves an optional role name. An empty name is not an error.
func (d *Definition) role(s *world.Scene, role, name string) (*world.Object, error) {
	if name == "" {
		return nil, nil
	}
	o, ok := s.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %q", ErrRole, role, name)
	}
	return o, nil
}

func (d *Definition) buildEnvironment(s *world.Scene) error {
	var err error
	if d.Background.Color != "" {
		if s.Background.Color, err = world.ParseColor(d.Background.Color); err != nil {
			return fmt.Errorf("scenedef: background: %w", err)
		}
	}
	if n := len(d.Background.Faces); n != 0 && n != 6 {
		return fmt.Errorf("scenedef: background needs 6 faces, got %d", n)
	}
	copy(s.Background.Faces[:], d.Background.Faces)

	if d.Fog != nil {
		c, err := world.ParseColor(d.Fog.Color)
		if err != nil {
			return fmt.Errorf("scenedef: fog: %w", err)
		}
		s.Fog = &world.FogExp2{Color: c, Density: d.Fog.Density}
	}

	if d.Ambient.Color != "" {
		if s.Ambient.Color, err = world.ParseColor(d.Ambient.Color); err != nil {
			return fmt.Errorf("scenedef: ambient: %w", err)
		}
		s.Ambient.Intensity = d.Ambient.Intensity
		if s.Ambient.Intensity == 0 {
			s.Ambient.Intensity = 1
		}
	}

	if sp := d.Spot; sp != nil {
		l := &world.SpotLight{
			Position:   mgl32.Vec3(sp.Position),
			Target:     mgl32.Vec3(sp.Target),
			Color:      0xffffff,
			Angle:      sp.Angle,
			Penumbra:   sp.Penumbra,
			Intensity:  sp.Intensity,
			Distance:   sp.Distance,
			CastShadow: sp.CastShadow,
		}
		if sp.Color != "" {
			if l.Color, err = world.ParseColor(sp.Color); err != nil {
				return fmt.Errorf("scenedef: spot: %w", err)
			}
		}
		s.Spot = l
		if sp.Helper {
			s.SpotHelper = world.NewSpotLightHelper(l)
		}
	}

	s.Axes = world.AxesHelper{Size: d.Helpers.Axes, Visible: d.Helpers.Axes > 0}
	s.Grid = world.GridHelper{Size: d.Helpers.Grid, Divisions: d.Helpers.GridDivisions, Visible: d.Helpers.Grid > 0}
	if s.Grid.Divisions == 0 {
		s.Grid.Divisions = 10
	}
	return nil
}

func (c CameraDef) build() *world.Camera {
	fov, near, far := c.Fov, c.Near, c.Far
	if fov == 0 {
		fov = 60
	}
	if near == 0 {
		near = 0.1
	}
	if far == 0 {
		far = 1000
	}
	cam := world.NewPerspective(fov, 1, near, far)
	cam.Position = mgl32.Vec3(c.Position)
	cam.Target = mgl32.Vec3(c.Target)
	return cam
}

func parseKind(s string) (world.Kind, error) {
	switch strings.ToLower(s) {
	case "box", "cube":
		return world.KindBox, nil
	case "sphere":
		return world.KindSphere, nil
	case "plane":
		return world.KindPlane, nil
	case "model", "gltf", "glb":
		return world.KindModel, nil
	}
	return 0, fmt.Errorf("unknown object type %q", s)
}

func parseMaterialKind(s string) (world.MaterialKind, error) {
	switch strings.ToLower(s) {
	case "", "standard":
		return world.MaterialStandard, nil
	case "basic":
		return world.MaterialBasic, nil
	case "shader":
		return world.MaterialShader, nil
	}
	return 0, fmt.Errorf("unknown material type %q", s)
}

func (od ObjectDef) build() (*world.Object, error) {
	if od.Name == "" {
		return nil, fmt.Errorf("scenedef: object without name")
	}
	kind, err := parseKind(od.Type)
	if err != nil {
		return nil, fmt.Errorf("scenedef: object %q: %w", od.Name, err)
	}
	size := mgl32.Vec3(od.Size)
	if kind == world.KindBox && size == (mgl32.Vec3{}) {
		size = mgl32.Vec3{1, 1, 1}
	}
	if kind == world.KindSphere && size.X() == 0 {
		size[0] = 1
	}
	if kind == world.KindModel && od.Source == "" {
		return nil, fmt.Errorf("scenedef: model %q has no source", od.Name)
	}

	o := world.NewObject(od.Name, kind, size)
	o.Position = mgl32.Vec3(od.Position)
	o.Rotation = mgl32.Vec3(od.Rotation)
	if od.Scale != nil {
		o.Scale = mgl32.Vec3(*od.Scale)
	}
	o.Source = od.Source
	o.CastShadow = od.CastShadow
	o.ReceiveShadow = od.ReceiveShadow
	o.Visible = !od.Hidden

	if o.Material, err = od.Material.build(); err != nil {
		return nil, fmt.Errorf("scenedef: object %q: %w", od.Name, err)
	}
	if len(o.Material.Faces) != 0 && (kind != world.KindBox || len(o.Material.Faces) != 6) {
		return nil, fmt.Errorf("scenedef: object %q: face materials need a box and 6 faces", od.Name)
	}
	return o, nil
}

func (md MaterialDef) build() (world.Material, error) {
	kind, err := parseMaterialKind(md.Type)
	if err != nil {
		return world.Material{}, err
	}
	m := world.Material{
		Kind:           kind,
		Color:          0xffffff,
		Wireframe:      md.Wireframe,
		DoubleSide:     md.DoubleSide,
		Texture:        md.Texture,
		VertexShader:   md.Vertex,
		FragmentShader: md.Fragment,
	}
	if md.Color != "" {
		if m.Color, err = world.ParseColor(md.Color); err != nil {
			return m, err
		}
	}
	if kind == world.MaterialShader && (md.Vertex == "" || md.Fragment == "") {
		return m, fmt.Errorf("shader material needs vertex and fragment")
	}
	for i, f := range md.Faces {
		face := world.Face{Color: 0xffffff, Texture: f.Texture}
		if f.Color != "" {
			if face.Color, err = world.ParseColor(f.Color); err != nil {
				return m, fmt.Errorf("face %d: %w", i, err)
			}
		}
		m.Faces = append(m.Faces, face)
	}
	return m, nil
}

// Bind registers OnChange callbacks that push each bound parameter to its
// object property. Bound objects that are removed later are skipped.
func (b *Built) Bind(store *params.Store) error {
	for name, target := range b.binds {
		objName, prop, ok := strings.Cut(target, ".")
		if !ok {
			return fmt.Errorf("scenedef: bind %q: want object.property", target)
		}
		obj, found := b.Scene.ByName(objName)
		if !found {
			return fmt.Errorf("%w: bind %s -> %q", ErrRole, name, objName)
		}
		id := obj.ID()
		apply, err := binder(prop)
		if err != nil {
			return fmt.Errorf("scenedef: bind %q: %w", target, err)
		}
		err = store.OnChange(name, func(v params.Value) {
			if o, ok := b.Scene.ByID(id); ok {
				apply(o, v)
			}
		})
		if err != nil {
			return fmt.Errorf("scenedef: bind %q: %w", name, err)
		}
	}
	return nil
}

func binder(prop string) (func(*world.Object, params.Value), error) {
	switch prop {
	case "color":
		return func(o *world.Object, v params.Value) { o.Material.Color = v.Color }, nil
	case "wireframe":
		return func(o *world.Object, v params.Value) { o.Material.Wireframe = v.Flag }, nil
	case "visible":
		return func(o *world.Object, v params.Value) { o.Visible = v.Flag }, nil
	}
	return nil, fmt.Errorf("unknown property %q", prop)
}

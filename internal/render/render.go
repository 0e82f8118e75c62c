// Package render draws a world.Scene with raylib. GPU resources (meshes,
// materials, textures, shaders, models and the skybox cubemap) are created
// lazily on first use, so a Renderer can be built before the window exists,
// and freed by Release.
package render

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"scene-demo/internal/assets"
	"scene-demo/internal/world"
)

const (
	sphereRings  = 32
	sphereSlices = 32
)

// Logger receives resource load failures. Each failure is reported once.
type Logger interface {
	Log(line string)
}

// entry is the GPU state of one scene object.
type entry struct {
	kind world.Kind
	size mgl32.Vec3

	mesh     rl.Mesh
	material rl.Material

	// faces is set for boxes with per-side materials.
	faces     []rl.Mesh
	faceMats  []rl.Material
	faceXform [6]mgl32.Mat4

	model    rl.Model
	hasModel bool
}

// Renderer implements frame.Renderer and frame.Picker.
type Renderer struct {
	ctx      context.Context
	resolver *assets.Resolver
	log      Logger

	lit     *litShader
	sky     *cubemap
	entries map[world.ID]*entry
	// custom holds shader-material programs keyed by "vs|fs".
	custom   map[string]rl.Shader
	textures map[string]rl.Texture2D
	failed   map[string]bool

	// TimeSeconds, when set, feeds the "time" uniform of shader materials.
	TimeSeconds func() float64
}

// New returns a renderer that resolves asset references with resolver.
// ctx bounds asset downloads.
func New(ctx context.Context, resolver *assets.Resolver, log Logger) *Renderer {
	return &Renderer{
		ctx:         ctx,
		resolver:    resolver,
		log:         log,
		entries:     make(map[world.ID]*entry),
		custom:      make(map[string]rl.Shader),
		textures:    make(map[string]rl.Texture2D),
		failed:      make(map[string]bool),
		TimeSeconds: rl.GetTime,
	}
}

func (r *Renderer) logOnce(key, format string, args ...any) {
	if r.failed[key] {
		return
	}
	r.failed[key] = true
	if r.log != nil {
		r.log.Log(fmt.Sprintf(format, args...))
	}
}

// Render draws the background, every visible object and the helpers. Call
// between BeginDrawing and EndDrawing.
func (r *Renderer) Render(scene *world.Scene, cam *world.Camera) {
	if r.lit == nil {
		r.lit = newLit()
	}
	rl.ClearBackground(toColor(scene.Background.Color))

	rc := toCamera(cam)
	rl.BeginMode3D(rc)
	if scene.Background.HasCubemap() {
		r.drawSkybox(scene.Background)
	}
	r.lit.apply(scene, cam)

	for _, o := range scene.Children() {
		if !o.Visible {
			continue
		}
		r.drawObject(o)
	}
	drawHelpers(scene)
	rl.EndMode3D()
}

func (r *Renderer) drawObject(o *world.Object) {
	e := r.ensure(o)
	if e == nil {
		return
	}
	xf := o.Transform()

	if o.Material.Wireframe {
		rl.EnableWireMode()
		defer rl.DisableWireMode()
	}
	if o.Material.DoubleSide || o.Kind == world.KindPlane {
		rl.DisableBackfaceCulling()
		defer rl.EnableBackfaceCulling()
	}

	switch {
	case e.hasModel:
		e.model.Transform = toMatrix(xf)
		rl.DrawModel(e.model, rl.NewVector3(0, 0, 0), 1, rl.White)
	case e.faces != nil:
		for i := range e.faces {
			r.prepare(&e.faceMats[i], o.Material.Kind, o.Material.Faces[i].Color)
			rl.DrawMesh(e.faces[i], e.faceMats[i], toMatrix(xf.Mul4(e.faceXform[i])))
		}
	default:
		r.prepare(&e.material, o.Material.Kind, o.Material.Color)
		if o.Kind == world.KindPlane {
			xf = xf.Mul4(world.PlaneBasis())
		}
		rl.DrawMesh(e.mesh, e.material, toMatrix(xf))
	}
}

// prepare sets the per-draw tint and lighting switch on a material.
func (r *Renderer) prepare(m *rl.Material, kind world.MaterialKind, c world.Color) {
	if albedo := m.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toColor(c)
	}
	switch kind {
	case world.MaterialShader:
		if loc := rl.GetShaderLocation(m.Shader, "time"); loc >= 0 && r.TimeSeconds != nil {
			rl.SetShaderValue(m.Shader, loc, []float32{float32(r.TimeSeconds())}, rl.ShaderUniformFloat)
		}
	default:
		r.lit.setUnlit(kind == world.MaterialBasic)
	}
}

// Release frees every GPU resource. The next Render recreates what it needs.
func (r *Renderer) Release() {
	for id, e := range r.entries {
		if e.hasModel {
			rl.UnloadModel(e.model)
		} else {
			rl.UnloadMesh(&e.mesh)
		}
		for i := range e.faces {
			rl.UnloadMesh(&e.faces[i])
		}
		delete(r.entries, id)
	}
	for key, s := range r.custom {
		rl.UnloadShader(s)
		delete(r.custom, key)
	}
	for key, t := range r.textures {
		rl.UnloadTexture(t)
		delete(r.textures, key)
	}
	if r.sky != nil {
		r.sky.unload()
		r.sky = nil
	}
	if r.lit != nil {
		rl.UnloadShader(r.lit.shader)
		r.lit = nil
	}
	clear(r.failed)
}

func toColor(c world.Color) rl.Color {
	red, green, blue := c.RGB()
	return rl.NewColor(red, green, blue, 255)
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func toCamera(c *world.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// toMatrix converts a column-major mgl32 matrix; raylib names its fields by
// the same column-major index.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

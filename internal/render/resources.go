package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demo/internal/world"
)

// ensure returns the GPU entry for o, building it on first use or after o's
// geometry changed. It returns nil when the object cannot be drawn.
func (r *Renderer) ensure(o *world.Object) *entry {
	if e, ok := r.entries[o.ID()]; ok {
		if e.kind == o.Kind && e.size == o.Size {
			return e
		}
		r.drop(o.ID(), e)
	}
	var e *entry
	switch o.Kind {
	case world.KindModel:
		e = r.loadModel(o)
	case world.KindBox:
		e = &entry{mesh: rl.GenMeshCube(o.Size.X(), o.Size.Y(), o.Size.Z())}
		if len(o.Material.Faces) == 6 {
			r.buildFaces(e, o)
		}
	case world.KindSphere:
		e = &entry{mesh: rl.GenMeshSphere(o.Size.X(), sphereRings, sphereSlices)}
	case world.KindPlane:
		e = &entry{mesh: rl.GenMeshPlane(o.Size.X(), o.Size.Y(), 1, 1)}
	}
	if e == nil {
		return nil
	}
	e.kind, e.size = o.Kind, o.Size
	if !e.hasModel {
		e.material = r.material(o, o.Material.Texture)
	}
	r.entries[o.ID()] = e
	return e
}

func (r *Renderer) drop(id world.ID, e *entry) {
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

func (r *Renderer) buildFaces(e *entry, o *world.Object) {
	for i, p := range world.BoxFaces(o.Size) {
		e.faces = append(e.faces, rl.GenMeshPlane(p.Width, p.Length, 1, 1))
		e.faceMats = append(e.faceMats, r.material(o, o.Material.Faces[i].Texture))
		e.faceXform[i] = p.Transform
	}
}

func (r *Renderer) loadModel(o *world.Object) *entry {
	path, err := r.resolver.Resolve(r.ctx, o.Source)
	if err != nil {
		r.logOnce("model:"+o.Source, "render: model %s: %v", o.Source, err)
		return nil
	}
	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) {
		r.logOnce("model:"+o.Source, "render: model %s: load failed", path)
		return nil
	}
	return &entry{model: m, hasModel: true}
}

// material builds a material for o with an optional albedo texture. Shader
// materials get their own program; everything else shares the lit shader.
func (r *Renderer) material(o *world.Object, texture string) rl.Material {
	m := rl.LoadMaterialDefault()
	switch o.Material.Kind {
	case world.MaterialShader:
		if s, ok := r.customShader(o.Material.VertexShader, o.Material.FragmentShader); ok {
			m.Shader = s
		}
	default:
		m.Shader = r.lit.shader
	}
	if texture != "" {
		if t, ok := r.texture(texture); ok {
			rl.SetMaterialTexture(&m, rl.MapAlbedo, t)
		}
	}
	return m
}

func (r *Renderer) texture(ref string) (rl.Texture2D, bool) {
	path, err := r.resolver.Resolve(r.ctx, ref)
	if err != nil {
		r.logOnce("tex:"+ref, "render: texture %s: %v", ref, err)
		return rl.Texture2D{}, false
	}
	if t, ok := r.textures[path]; ok {
		return t, true
	}
	t := rl.LoadTexture(path)
	if !rl.IsTextureValid(t) {
		r.logOnce("tex:"+ref, "render: texture %s: load failed", path)
		return rl.Texture2D{}, false
	}
	r.textures[path] = t
	return t, true
}

func (r *Renderer) customShader(vs, fs string) (rl.Shader, bool) {
	key := vs + "|" + fs
	if s, ok := r.custom[key]; ok {
		return s, true
	}
	vsPath, err := r.resolver.Resolve(r.ctx, vs)
	if err != nil {
		r.logOnce("shader:"+key, "render: shader %s: %v", vs, err)
		return rl.Shader{}, false
	}
	fsPath, err := r.resolver.Resolve(r.ctx, fs)
	if err != nil {
		r.logOnce("shader:"+key, "render: shader %s: %v", fs, err)
		return rl.Shader{}, false
	}
	s := rl.LoadShader(vsPath, fsPath)
	if !rl.IsShaderValid(s) {
		r.logOnce("shader:"+key, "render: shader %s, %s: compile failed", vsPath, fsPath)
		return rl.Shader{}, false
	}
	r.custom[key] = s
	return s, true
}

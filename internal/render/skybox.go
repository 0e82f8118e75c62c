package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demo/internal/skybox"
	"scene-demo/internal/world"
)

type cubemap struct {
	faces  [6]string
	ok     bool
	tex    rl.Texture2D
	mesh   rl.Mesh
	mtl    rl.Material
	shader rl.Shader
}

// loadSkybox composes the six faces into a horizontal strip and uploads it
// as a cubemap. A failed load leaves ok false and is not retried until the
// faces change.
func (r *Renderer) loadSkybox(bg world.Background) *cubemap {
	sb := &cubemap{faces: bg.Faces}
	var paths [skybox.Faces]string
	for i, ref := range bg.Faces {
		p, err := r.resolver.Resolve(r.ctx, ref)
		if err != nil {
			r.logOnce("sky:"+ref, "render: skybox face %s: %v", ref, err)
			return sb
		}
		paths[i] = p
	}
	strip, err := skybox.Load(paths, 0)
	if err != nil {
		r.logOnce("sky", "render: skybox: %v", err)
		return sb
	}
	img := rl.NewImageFromImage(strip)
	sb.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutLineHorizontal)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(sb.tex) {
		r.logOnce("sky", "render: skybox: cubemap upload failed")
		return sb
	}

	sb.shader = rl.LoadShaderFromMemory(skyboxVS, skyboxFS)
	sb.shader.UpdateLocation(rl.ShaderLocMapCubemap, rl.GetShaderLocation(sb.shader, "environmentMap"))
	sb.mesh = rl.GenMeshCube(1, 1, 1)
	sb.mtl = rl.LoadMaterialDefault()
	sb.mtl.Shader = sb.shader
	rl.SetMaterialTexture(&sb.mtl, rl.MapCubemap, sb.tex)
	sb.ok = true
	return sb
}

func (r *Renderer) drawSkybox(bg world.Background) {
	if r.sky == nil || r.sky.faces != bg.Faces {
		if r.sky != nil {
			r.sky.unload()
		}
		r.sky = r.loadSkybox(bg)
	}
	if !r.sky.ok {
		return
	}
	rl.DisableBackfaceCulling()
	rl.DisableDepthMask()
	rl.DrawMesh(r.sky.mesh, r.sky.mtl, rl.MatrixIdentity())
	rl.EnableDepthMask()
	rl.EnableBackfaceCulling()
}

func (s *cubemap) unload() {
	if !s.ok {
		return
	}
	rl.UnloadMesh(&s.mesh)
	rl.UnloadTexture(s.tex)
	rl.UnloadShader(s.shader)
	s.ok = false
}

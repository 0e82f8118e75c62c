package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demo/internal/world"
)

type litShader struct {
	shader rl.Shader
	loc    map[string]int32
}

var litUniforms = []string{
	"viewPos", "ambient",
	"spotPos", "spotDir", "spotColor", "spotIntensity", "spotInnerCos", "spotOuterCos",
	"fogColor", "fogDensity", "unlit",
}

func newLit() *litShader {
	s := rl.LoadShaderFromMemory(litVS, litFS)
	l := &litShader{shader: s, loc: make(map[string]int32, len(litUniforms))}
	for _, name := range litUniforms {
		l.loc[name] = rl.GetShaderLocation(s, name)
	}
	return l
}

func rgb(c world.Color, scale float32) []float32 {
	r, g, b := c.RGB()
	return []float32{float32(r) / 255 * scale, float32(g) / 255 * scale, float32(b) / 255 * scale}
}

func (l *litShader) vec3(name string, v []float32) {
	if loc := l.loc[name]; loc >= 0 {
		rl.SetShaderValueV(l.shader, loc, v, rl.ShaderUniformVec3, 1)
	}
}

func (l *litShader) float(name string, v float32) {
	if loc := l.loc[name]; loc >= 0 {
		rl.SetShaderValue(l.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

// apply uploads the frame's camera, light and fog state.
func (l *litShader) apply(scene *world.Scene, cam *world.Camera) {
	if !rl.IsShaderValid(l.shader) {
		return
	}
	l.vec3("viewPos", cam.Position[:])
	l.vec3("ambient", rgb(scene.Ambient.Color, scene.Ambient.Intensity))

	if s := scene.Spot; s != nil {
		dir := s.Direction()
		l.vec3("spotPos", s.Position[:])
		l.vec3("spotDir", dir[:])
		l.vec3("spotColor", rgb(s.Color, 1))
		l.float("spotIntensity", s.Intensity)
		l.float("spotInnerCos", s.InnerCos())
		l.float("spotOuterCos", s.OuterCos())
	} else {
		l.float("spotIntensity", 0)
	}

	if f := scene.Fog; f != nil {
		l.vec3("fogColor", rgb(f.Color, 1))
		l.float("fogDensity", f.Density)
	} else {
		l.float("fogDensity", 0)
	}
}

func (l *litShader) setUnlit(on bool) {
	v := float32(0)
	if on {
		v = 1
	}
	l.float("unlit", v)
}

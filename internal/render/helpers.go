package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demo/internal/world"
)

var (
	axisX = rl.NewColor(255, 0, 0, 255)
	axisY = rl.NewColor(0, 255, 0, 255)
	axisZ = rl.NewColor(0, 0, 255, 255)
)

// drawHelpers draws the axes, the grid and the spot light cone.
func drawHelpers(scene *world.Scene) {
	origin := rl.NewVector3(0, 0, 0)
	if a := scene.Axes; a.Visible && a.Size > 0 {
		rl.DrawLine3D(origin, rl.NewVector3(a.Size, 0, 0), axisX)
		rl.DrawLine3D(origin, rl.NewVector3(0, a.Size, 0), axisY)
		rl.DrawLine3D(origin, rl.NewVector3(0, 0, a.Size), axisZ)
	}
	if g := scene.Grid; g.Visible && g.Size > 0 && g.Divisions > 0 {
		rl.DrawGrid(int32(g.Divisions), g.Size/float32(g.Divisions))
	}
	if h := scene.SpotHelper; h != nil {
		c := toColor(h.Color)
		for _, l := range h.Lines {
			rl.DrawLine3D(toVector3(l[0]), toVector3(l[1]), c)
		}
	}
}

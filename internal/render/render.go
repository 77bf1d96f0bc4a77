package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"collision-sim/internal/palette"
	"collision-sim/internal/physics"
)

// Bodies draws every body as a filled circle in its tag color. Colors are parsed once per distinct tag string.
type Bodies struct {
	colors map[string]rl.Color
}

func New() *Bodies {
	return &Bodies{colors: make(map[string]rl.Color)}
}

func (r *Bodies) color(hex string) rl.Color {
	if c, ok := r.colors[hex]; ok {
		return c
	}
	p := palette.ParseOr(hex)
	c := rl.NewColor(p.R, p.G, p.B, p.A)
	r.colors[hex] = c
	return c
}

// Draw draws bodies with tags[i] giving the color of bodies[i].
func (r *Bodies) Draw(bodies []physics.Body, tags []physics.Tag) {
	for i, b := range bodies {
		hex := ""
		if i < len(tags) {
			hex = tags[i].Color
		}
		center := rl.NewVector2(float32(b.Position.X()), float32(b.Position.Y()))
		rl.DrawCircleV(center, float32(b.Radius), r.color(hex))
	}
}

// Outline draws a ring around one body, e.g. the stray bodies of the last step.
func (r *Bodies) Outline(b physics.Body, c rl.Color) {
	rl.DrawCircleLines(int32(b.Position.X()), int32(b.Position.Y()), float32(b.Radius)+2, c)
}

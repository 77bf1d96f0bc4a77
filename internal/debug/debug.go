package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"collision-sim/internal/physics"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the top-right overlays: FPS, heap allocation and step statistics. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStats    []string
	lastMemStats runtime.MemStats
	report       physics.StepReport
	energy       float64
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// SetFont sets the font used to draw overlays. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Observe records the last step report and the total kinetic energy for the stats overlay.
func (d *Debug) Observe(report physics.StepReport, kineticEnergy float64) {
	d.report = report
	d.energy = kineticEnergy
}

// Draw renders enabled overlays right-aligned at the top of the screen, FPS first.
// Text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") || (d.ShowStats && d.lastStats == nil) {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		d.drawRight(d.lastMemText, y, rl.Green)
		y += lineHeight
	}
	if d.ShowStats {
		if update {
			r := d.report
			d.lastStats = []string{
				fmt.Sprintf("KE: %.1f", d.energy),
				fmt.Sprintf("Pairs: %d / %d", r.Collisions, r.Candidates),
				fmt.Sprintf("Nodes: %d  Visits: %d", r.Index.Nodes, r.Index.Visits),
				fmt.Sprintf("Stray: %d", len(r.Stray)),
			}
		}
		for _, line := range d.lastStats {
			d.drawRight(line, y, rl.SkyBlue)
			y += lineHeight
		}
	}
}

func (d *Debug) drawRight(text string, y int32, c rl.Color) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-float32(padding), float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, c)
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, c)
}

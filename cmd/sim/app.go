package main

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"collision-sim/internal/config"
	"collision-sim/internal/console"
	"collision-sim/internal/debug"
	"collision-sim/internal/fonts"
	"collision-sim/internal/logger"
	"collision-sim/internal/physics"
	"collision-sim/internal/render"
	"collision-sim/internal/spawn"
	"collision-sim/internal/ui"
)

const (
	countMin  = 1
	countMax  = 100
	countStep = 5
	eStep     = 0.1
)

var strayColor = rl.Yellow

// app holds the desktop simulation state and implements commands.Controller.
type app struct {
	cfg        config.Config
	configPath string
	log        *logger.Logger
	world      *physics.World
	bodies     *render.Bodies
	slider     *ui.Slider
	dbg        *debug.Debug
	console    *console.Console
	font       rl.Font
	fontTried  bool
	paused     bool
	stepOnce   bool
	last       physics.StepReport
}

func newApp(cfg config.Config, configPath string, log *logger.Logger) *app {
	h := float32(cfg.Arena.Height)
	a := &app{
		cfg:        cfg,
		configPath: configPath,
		log:        log,
		world:      physics.NewWorld(cfg.WorldConfig(), log),
		bodies:     render.New(),
		slider:     ui.NewSlider(rl.NewRectangle(50, h-50, 200, 10), countMin, countMax, cfg.Spawn.Count),
		dbg:        debug.New(),
	}
	a.dbg.SetShowFPS(cfg.Display.ShowFPS)
	a.dbg.SetShowStats(cfg.Display.ShowHUD)
	a.Respawn()
	return a
}

func (a *app) SetRestitution(e float64) float64 {
	e = physics.ClampRestitution(e)
	a.world.SetRestitution(e)
	return e
}

func (a *app) SetCount(n int) int {
	a.slider.SetValue(n)
	return a.slider.Value()
}

// Respawn regenerates the bodies with the slider's count.
func (a *app) Respawn() {
	opts := a.cfg.SpawnOptions()
	opts.Count = a.slider.Value()
	bodies, tags := spawn.Generate(opts)
	a.world.Respawn(bodies, tags)
	a.last = physics.StepReport{}
}

func (a *app) TogglePause() bool {
	a.paused = !a.paused
	return a.paused
}

func (a *app) StepOnce() {
	a.stepOnce = true
}

func (a *app) SetShowFPS(show bool) {
	a.dbg.SetShowFPS(show)
}

// SaveConfig writes the current restitution, count and overlay settings back to the config file.
func (a *app) SaveConfig() error {
	a.cfg.Physics.Restitution = a.world.Restitution()
	a.cfg.Spawn.Count = a.slider.Value()
	a.cfg.Display.ShowFPS = a.dbg.ShowFPS
	return config.Save(a.configPath, a.cfg)
}

// loadFont resolves the configured font once the window exists; raylib's default font is kept when it is missing.
func (a *app) loadFont() {
	if a.fontTried {
		return
	}
	a.fontTried = true
	if a.cfg.Display.Font == "" {
		return
	}
	_, full, err := fonts.NewFinder().Find(a.cfg.Display.Font)
	if err != nil {
		a.log.Logf("font %q not found, using default", a.cfg.Display.Font)
		return
	}
	f, ok := ui.LoadFont(full, int32(a.cfg.Display.FontSize))
	if !ok {
		a.log.Logf("font %s failed to load, using default", full)
		return
	}
	a.font = f
	a.dbg.SetFont(f)
	a.console.SetFont(f)
}

func (a *app) update() {
	a.loadFont()
	a.console.Update()
	if !a.console.IsOpen() {
		a.handleKeys()
		a.slider.Update()
	}

	if a.paused && !a.stepOnce {
		return
	}
	a.stepOnce = false
	a.last = a.world.Step(a.cfg.Physics.Dt)
	a.dbg.Observe(a.last, a.world.TotalKineticEnergy())
}

func (a *app) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		a.SetRestitution(roundTenth(a.world.Restitution() + eStep))
	case rl.IsKeyPressed(rl.KeyDown):
		a.SetRestitution(roundTenth(a.world.Restitution() - eStep))
	}
	switch {
	case rl.IsKeyPressed(rl.KeyLeft):
		a.slider.Step(-countStep)
	case rl.IsKeyPressed(rl.KeyRight):
		a.slider.Step(countStep)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Respawn()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) && a.paused {
		a.StepOnce()
	}
}

// roundTenth keeps repeated +-0.1 steps on the 0.1 grid.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func (a *app) draw() {
	bodies := a.world.Bodies()
	a.bodies.Draw(bodies, a.world.Tags())
	for _, h := range a.last.Stray {
		if h < len(bodies) {
			a.bodies.Outline(bodies[h], strayColor)
		}
	}

	h := int32(a.cfg.Arena.Height)
	a.slider.Draw()
	labels := []ui.Label{
		{X: 10, Y: 10, Text: fmt.Sprintf("elasticity coefficient = %.1f", a.world.Restitution()), Color: rl.White, Size: 24},
		{X: 270, Y: h - 60, Text: fmt.Sprintf("Count: %d (Press R)", a.slider.Value()), Color: rl.White, Size: 20},
	}
	if a.paused {
		labels = append(labels, ui.Label{X: 10, Y: 40, Text: "paused (P resume, N step)", Color: rl.Yellow, Size: 20})
	}
	ui.DrawLabels(a.font, labels...)

	a.console.Draw()
	a.dbg.Draw()
}

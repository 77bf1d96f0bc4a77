package commands

import (
	"flag"
	"fmt"
	"math"
)

// Controller is what the console commands drive. The desktop driver implements it on top of the world.
type Controller interface {
	// SetRestitution applies e and returns the value actually used (clamped to [0, 1]).
	SetRestitution(e float64) float64
	// SetCount sets the body count used by the next respawn and returns the value actually used.
	SetCount(n int) int
	Respawn()
	// TogglePause flips the paused state and returns the new state.
	TogglePause() bool
	// StepOnce advances one tick while paused.
	StepOnce()
	SetShowFPS(show bool)
	SaveConfig() error
}

// Logger receives command feedback.
type Logger interface {
	Logf(format string, args ...any)
}

// RegisterSim registers the simulation commands on reg.
func RegisterSim(reg *Registry, c Controller, log Logger) {
	eFS := flag.NewFlagSet("e", flag.ContinueOnError)
	eValue := eFS.Float64("value", math.NaN(), "restitution in [0, 1]")
	reg.Register("e", "e -value 0.5", eFS, func() error {
		if math.IsNaN(*eValue) {
			return fmt.Errorf("e: -value is required")
		}
		log.Logf("elasticity coefficient = %.1f", c.SetRestitution(*eValue))
		return nil
	})

	countFS := flag.NewFlagSet("count", flag.ContinueOnError)
	countN := countFS.Int("n", -1, "body count for the next respawn")
	reg.Register("count", "count -n 40", countFS, func() error {
		if *countN < 0 {
			return fmt.Errorf("count: -n must be given and not negative")
		}
		log.Logf("count = %d (respawn to apply)", c.SetCount(*countN))
		return nil
	})

	reg.Register("respawn", "respawn", flag.NewFlagSet("respawn", flag.ContinueOnError), func() error {
		c.Respawn()
		log.Logf("respawned")
		return nil
	})

	reg.Register("pause", "pause", flag.NewFlagSet("pause", flag.ContinueOnError), func() error {
		if c.TogglePause() {
			log.Logf("paused")
		} else {
			log.Logf("resumed")
		}
		return nil
	})

	reg.Register("step", "step", flag.NewFlagSet("step", flag.ContinueOnError), func() error {
		c.StepOnce()
		return nil
	})

	fpsFS := flag.NewFlagSet("fps", flag.ContinueOnError)
	fpsShow := fpsFS.Bool("show", false, "show the FPS overlay")
	fpsHide := fpsFS.Bool("hide", false, "hide the FPS overlay")
	reg.Register("fps", "fps --show | --hide", fpsFS, func() error {
		if *fpsShow == *fpsHide {
			return fmt.Errorf("fps: pass exactly one of --show or --hide")
		}
		c.SetShowFPS(*fpsShow)
		return nil
	})

	reg.Register("save", "save", flag.NewFlagSet("save", flag.ContinueOnError), func() error {
		if err := c.SaveConfig(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		log.Logf("config saved")
		return nil
	})

	reg.Register("help", "help", flag.NewFlagSet("help", flag.ContinueOnError), func() error {
		for _, name := range reg.Names() {
			usage, _ := reg.Usage(name)
			log.Logf("  %s", usage)
		}
		return nil
	})
}

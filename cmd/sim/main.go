package main

import (
	"flag"
	"fmt"
	"os"

	"collision-sim/internal/commands"
	"collision-sim/internal/config"
	"collision-sim/internal/console"
	"collision-sim/internal/graphics"
	"collision-sim/internal/logger"
)

func main() {
	configPath := flag.String("config", config.Path, "path to the YAML config file")
	envPath := flag.String("env", ".env", "dotenv file with SIM_* overrides")
	flag.Parse()

	if err := config.LoadEnv(*envPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	cfg, loadErr := config.Load(*configPath)
	envErr := cfg.ApplyEnv(os.LookupEnv)

	log := logger.New(cfg.Log.Path, cfg.Log.MaxLines)
	if loadErr != nil {
		log.Logf("%v; using defaults", loadErr)
	}
	if envErr != nil {
		log.Logf("environment: %v", envErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Logf("invalid settings, using defaults: %v", err)
		cfg = config.Default()
	}

	a := newApp(cfg, *configPath, log)
	reg := commands.NewRegistry()
	commands.RegisterSim(reg, a, log)
	a.console = console.New(log, reg)
	log.Logf("started with %d bodies, e = %.1f (press ` for the console, help lists commands)", a.world.Len(), a.world.Restitution())

	graphics.Run(graphics.Window{
		Title:     "Physics Collision Simulation",
		Width:     int(cfg.Arena.Width),
		Height:    int(cfg.Arena.Height),
		TargetFPS: cfg.Display.TargetFPS,
	}, a.update, a.draw)
}

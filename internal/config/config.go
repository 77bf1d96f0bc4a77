package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"collision-sim/internal/logger"
	"collision-sim/internal/physics"
	"collision-sim/internal/spatial"
	"collision-sim/internal/spawn"
)

// Path is the path to the simulation config file, relative to the process working directory.
const Path = "config/sim.yaml"

// EnvPrefix prefixes every environment override, e.g. SIM_RESTITUTION=0.5.
const EnvPrefix = "SIM_"

// Config holds simulation settings shared by the desktop driver and the stream server.
type Config struct {
	Arena   Arena   `yaml:"arena"`
	Physics Physics `yaml:"physics"`
	Spawn   Spawn   `yaml:"spawn"`
	Display Display `yaml:"display"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
}

type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Physics struct {
	Restitution float64 `yaml:"restitution"`
	Dt          float64 `yaml:"dt"`
	// Capacity is the quadtree node capacity.
	Capacity int `yaml:"capacity"`
}

type Spawn struct {
	Count     int     `yaml:"count"`
	MassMin   float64 `yaml:"mass_min"`
	MassMax   float64 `yaml:"mass_max"`
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
	SpeedMax  float64 `yaml:"speed_max"`
	Seed      int64   `yaml:"seed"`
}

type Display struct {
	TargetFPS int    `yaml:"target_fps"`
	ShowFPS   bool   `yaml:"show_fps"`
	ShowHUD   bool   `yaml:"show_hud"`
	Font      string `yaml:"font,omitempty"`
	FontSize  int    `yaml:"font_size"`
}

type Server struct {
	Addr        string `yaml:"addr"`
	TickHz      int    `yaml:"tick_hz"`
	BroadcastHz int    `yaml:"broadcast_hz"`
	// Codec is "json" or "msgpack".
	Codec string `yaml:"codec"`
}

type Log struct {
	Path     string `yaml:"path"`
	MaxLines int    `yaml:"max_lines"`
}

// Default returns the classic setup: 50 bodies in an 800x600 arena, fully elastic, stepped by 0.1 per frame at 60 FPS.
func Default() Config {
	s := spawn.DefaultOptions()
	return Config{
		Arena:   Arena{Width: 800, Height: 600},
		Physics: Physics{Restitution: 1, Dt: 0.1, Capacity: spatial.DefaultCapacity},
		Spawn: Spawn{
			Count:     s.Count,
			MassMin:   s.MassMin,
			MassMax:   s.MassMax,
			RadiusMin: s.RadiusMin,
			RadiusMax: s.RadiusMax,
			SpeedMax:  s.SpeedMax,
		},
		Display: Display{TargetFPS: 60, ShowHUD: true, FontSize: 20},
		Server:  Server{Addr: ":8080", TickHz: 60, BroadcastHz: 20, Codec: "json"},
		Log:     Log{Path: logger.DefaultPath, MaxLines: logger.DefaultMaxLines},
	}
}

// Load reads the config from path. A missing file returns Default() without creating one.
// Fields absent from the file keep their default values. Unlike the desktop preferences this
// file drives the physics, so a file that does not parse or validate is an error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save writes the config to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena must be positive, got %gx%g", c.Arena.Width, c.Arena.Height))
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		errs = append(errs, fmt.Errorf("physics.restitution must be in [0, 1], got %g", c.Physics.Restitution))
	}
	if c.Physics.Dt < 0 {
		errs = append(errs, fmt.Errorf("physics.dt must not be negative, got %g", c.Physics.Dt))
	}
	if c.Physics.Capacity < 1 {
		errs = append(errs, fmt.Errorf("physics.capacity must be at least 1, got %d", c.Physics.Capacity))
	}
	if c.Spawn.Count < 0 {
		errs = append(errs, fmt.Errorf("spawn.count must not be negative, got %d", c.Spawn.Count))
	}
	if c.Spawn.MassMin <= 0 || c.Spawn.MassMax < c.Spawn.MassMin {
		errs = append(errs, fmt.Errorf("spawn mass range [%g, %g] is invalid", c.Spawn.MassMin, c.Spawn.MassMax))
	}
	if c.Spawn.RadiusMin <= 0 || c.Spawn.RadiusMax < c.Spawn.RadiusMin {
		errs = append(errs, fmt.Errorf("spawn radius range [%g, %g] is invalid", c.Spawn.RadiusMin, c.Spawn.RadiusMax))
	}
	if c.Spawn.SpeedMax < 0 {
		errs = append(errs, fmt.Errorf("spawn.speed_max must not be negative, got %g", c.Spawn.SpeedMax))
	}
	if c.Display.TargetFPS < 1 {
		errs = append(errs, fmt.Errorf("display.target_fps must be at least 1, got %d", c.Display.TargetFPS))
	}
	if c.Server.TickHz < 1 {
		errs = append(errs, fmt.Errorf("server.tick_hz must be at least 1, got %d", c.Server.TickHz))
	}
	if c.Server.BroadcastHz < 1 || c.Server.BroadcastHz > c.Server.TickHz {
		errs = append(errs, fmt.Errorf("server.broadcast_hz must be in [1, tick_hz], got %d", c.Server.BroadcastHz))
	}
	if c.Server.Codec != "json" && c.Server.Codec != "msgpack" {
		errs = append(errs, fmt.Errorf("server.codec must be json or msgpack, got %q", c.Server.Codec))
	}
	return errors.Join(errs...)
}

// LoadEnv loads KEY=VALUE pairs from the given dotenv files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from SIM_* variables read through lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *float64) {
		if v, ok := lookup(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	num("WIDTH", &c.Arena.Width)
	num("HEIGHT", &c.Arena.Height)
	num("RESTITUTION", &c.Physics.Restitution)
	num("DT", &c.Physics.Dt)
	integer("CAPACITY", &c.Physics.Capacity)
	integer("COUNT", &c.Spawn.Count)
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Spawn.Seed = n
		}
	}
	integer("TARGET_FPS", &c.Display.TargetFPS)
	boolean("SHOW_FPS", &c.Display.ShowFPS)
	str("FONT", &c.Display.Font)
	str("ADDR", &c.Server.Addr)
	integer("TICK_HZ", &c.Server.TickHz)
	integer("BROADCAST_HZ", &c.Server.BroadcastHz)
	str("CODEC", &c.Server.Codec)
	str("LOG_PATH", &c.Log.Path)
	return errors.Join(errs...)
}

// SpawnOptions converts the arena and spawn sections for spawn.Generate.
func (c Config) SpawnOptions() spawn.Options {
	return spawn.Options{
		Count:     c.Spawn.Count,
		Width:     c.Arena.Width,
		Height:    c.Arena.Height,
		MassMin:   c.Spawn.MassMin,
		MassMax:   c.Spawn.MassMax,
		RadiusMin: c.Spawn.RadiusMin,
		RadiusMax: c.Spawn.RadiusMax,
		SpeedMax:  c.Spawn.SpeedMax,
		Seed:      c.Spawn.Seed,
	}
}

// WorldConfig converts the arena and physics sections for physics.NewWorld.
func (c Config) WorldConfig() physics.Config {
	return physics.Config{
		Width:       c.Arena.Width,
		Height:      c.Arena.Height,
		Restitution: c.Physics.Restitution,
		Capacity:    c.Physics.Capacity,
	}
}

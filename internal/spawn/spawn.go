package spawn

import (
	"math/rand"
	"strconv"
	"time"

	"collision-sim/internal/palette"
	"collision-sim/internal/physics"
	"collision-sim/internal/vector"
)

// Options controls randomized body generation.
// Width/Height is the arena the bodies are placed in. Mass and radius are drawn uniformly from
// [Min, Max]; each velocity component is drawn from [-SpeedMax, SpeedMax].
// Seed controls randomness; Seed == 0 uses a time-based seed.
type Options struct {
	Count  int
	Width  float64
	Height float64

	MassMin, MassMax     float64
	RadiusMin, RadiusMax float64
	SpeedMax             float64

	Seed int64
}

// DefaultOptions returns the classic setup: 50 bodies in an 800x600 arena, mass 5..15,
// radius 10..20, velocity components -50..50.
func DefaultOptions() Options {
	return Options{
		Count:     50,
		Width:     800,
		Height:    600,
		MassMin:   5,
		MassMax:   15,
		RadiusMin: 10,
		RadiusMax: 20,
		SpeedMax:  50,
		Seed:      0,
	}
}

// sanitize replaces unusable values with defaults and orders min/max pairs.
func (o Options) sanitize() Options {
	d := DefaultOptions()
	if o.Count < 0 {
		o.Count = 0
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.MassMin <= 0 {
		o.MassMin = d.MassMin
	}
	if o.MassMax < o.MassMin {
		o.MassMax = o.MassMin
	}
	if o.RadiusMin <= 0 {
		o.RadiusMin = d.RadiusMin
	}
	if o.RadiusMax < o.RadiusMin {
		o.RadiusMax = o.RadiusMin
	}
	if o.SpeedMax < 0 {
		o.SpeedMax = -o.SpeedMax
	}
	return o
}

// Generate returns opts.Count bodies and their tags. Even indices are tagged red, odd indices blue,
// and every tag is labelled with its index. Each body starts fully inside the arena when it fits;
// a body wider than the arena is centered on that axis.
func Generate(opts Options) ([]physics.Body, []physics.Tag) {
	opts = opts.sanitize()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bodies := make([]physics.Body, 0, opts.Count)
	tags := make([]physics.Tag, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		mass := between(rng, opts.MassMin, opts.MassMax)
		radius := between(rng, opts.RadiusMin, opts.RadiusMax)
		x := placeOnAxis(rng, radius, opts.Width)
		y := placeOnAxis(rng, radius, opts.Height)
		vx := between(rng, -opts.SpeedMax, opts.SpeedMax)
		vy := between(rng, -opts.SpeedMax, opts.SpeedMax)

		bodies = append(bodies, physics.NewBody(mass, radius, vector.New(x, y), vector.New(vx, vy)))

		color := palette.Red
		if i%2 == 1 {
			color = palette.Blue
		}
		tags = append(tags, physics.Tag{Color: color, Label: strconv.Itoa(i)})
	}
	return bodies, tags
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// placeOnAxis picks a center in [r, extent-r], or the middle when the body does not fit.
func placeOnAxis(rng *rand.Rand, r, extent float64) float64 {
	if 2*r >= extent {
		return extent / 2
	}
	return between(rng, r, extent-r)
}

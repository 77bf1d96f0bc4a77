package physics

import (
	"errors"
	"slices"

	"collision-sim/internal/spatial"
)

// Tag is display data for one body (e.g. "#ff0000" and a label). The world stores it next to the
// body and hands it back to renderers; physics code never reads it.
type Tag struct {
	Color string
	Label string
}

// Logger is the logging surface the world needs. *logger.Logger satisfies it.
type Logger interface {
	Logf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...any) {}

// Config holds the fixed parameters of a world.
type Config struct {
	Width, Height float64
	Restitution   float64
	Capacity      int // quadtree node capacity; <= 0 uses spatial.DefaultCapacity
}

// StepReport describes what one Step did.
type StepReport struct {
	Tick       int
	Indexed    int   // bodies accepted by the spatial index
	Stray      []int // handles the index rejected; they were checked by brute force instead
	Candidates int   // narrow-phase pair tests
	Collisions int   // pairs resolved
	Coincident int   // pairs resolved with the coincident-center fallback
	Index      spatial.Stats
}

// World is the simulation context: the body store, per-body tags, the arena size, and the
// restitution used for body-body collisions. Bodies are addressed by their index (handle) in the
// store; Respawn replaces the whole store.
type World struct {
	width, height float64
	restitution   float64
	capacity      int
	tick          int

	bodies []Body
	tags   []Tag
	log    Logger

	found []spatial.Entry
	drift []float64
}

// NewWorld returns an empty world. log may be nil.
func NewWorld(cfg Config, log Logger) *World {
	if log == nil {
		log = nopLogger{}
	}
	return &World{
		width:       cfg.Width,
		height:      cfg.Height,
		restitution: cfg.Restitution,
		capacity:    cfg.Capacity,
		log:         log,
	}
}

// Respawn discards every body and installs copies of bodies and tags. Missing tags are left empty;
// extra tags are ignored. The tick counter is kept.
func (w *World) Respawn(bodies []Body, tags []Tag) {
	w.bodies = slices.Clone(bodies)
	w.tags = make([]Tag, len(bodies))
	copy(w.tags, tags)
}

// Add appends one body and returns its handle.
func (w *World) Add(b Body, tag Tag) int {
	w.bodies = append(w.bodies, b)
	w.tags = append(w.tags, tag)
	return len(w.bodies) - 1
}

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// Body returns a copy of the body with handle h.
func (w *World) Body(h int) (Body, bool) {
	if h < 0 || h >= len(w.bodies) {
		return Body{}, false
	}
	return w.bodies[h], true
}

// Bodies returns a copy of all bodies in handle order.
func (w *World) Bodies() []Body { return slices.Clone(w.bodies) }

// Tags returns a copy of all tags in handle order.
func (w *World) Tags() []Tag { return slices.Clone(w.tags) }

// Size returns the arena width and height.
func (w *World) Size() (width, height float64) { return w.width, w.height }

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

// Restitution returns the coefficient used for body-body collisions.
func (w *World) Restitution() float64 { return w.restitution }

// SetRestitution sets e. The value is used as given; clamp it with ClampRestitution first.
func (w *World) SetRestitution(e float64) { w.restitution = e }

// ClampRestitution limits e to [0, 1].
func ClampRestitution(e float64) float64 {
	return min(max(e, 0), 1)
}

// TotalKineticEnergy sums the kinetic energy of all bodies.
func (w *World) TotalKineticEnergy() float64 {
	var sum float64
	for i := range w.bodies {
		sum += w.bodies[i].KineticEnergy()
	}
	return sum
}

// Step advances the world by dt: integrate every body, rebuild the quadtree from the new positions,
// resolve collisions, then reflect every body off the arena walls.
//
// Pairs are visited in handle order: body i is resolved against its candidates j > i in increasing
// j, so each pair is resolved at most once per step and the result depends only on the inputs.
func (w *World) Step(dt float64) StepReport {
	for i := range w.bodies {
		w.bodies[i].Integrate(dt)
	}

	tree, stray := w.buildIndex()
	report := StepReport{Indexed: len(w.bodies) - len(stray), Stray: stray}
	if len(stray) > 0 {
		w.log.Logf("tick %d: %d bodies outside the index, checked by brute force: %v", w.tick+1, len(stray), stray)
	}

	// Tree entries keep the positions bodies had at insertion. slack is the largest distance any
	// body has since been pushed by positional correction; widening each query by it keeps every
	// touching pair in the candidate set, so the result matches testing all pairs in the same order.
	maxRadius := w.maxRadius()
	slack := 0.0
	w.drift = slices.Grow(w.drift[:0], len(w.bodies))[:len(w.bodies)]
	clear(w.drift)

	var candidates []int
	for i := range w.bodies {
		bi := &w.bodies[i]
		candidates = w.candidates(tree, stray, bi, maxRadius+slack, i, candidates[:0])

		for k := 0; k < len(candidates); k++ {
			j := candidates[k]
			bj := &w.bodies[j]
			report.Candidates++
			if !bi.IsColliding(bj) {
				continue
			}
			report.Collisions++
			pi, pj := bi.Position, bj.Position
			if err := bi.ResolveCollision(bj, w.restitution); err != nil {
				if !errors.Is(err, ErrCoincidentCenters) {
					w.log.Logf("tick %d: bodies %d and %d: %v", w.tick+1, i, j, err)
					continue
				}
				w.log.Logf("tick %d: bodies %d and %d share a center, separating along +X", w.tick+1, i, j)
				bi.ResolveCoincident(bj, w.restitution)
				report.Coincident++
			}
			w.drift[i] += bi.Position.Sub(pi).Magnitude()
			w.drift[j] += bj.Position.Sub(pj).Magnitude()
			slack = max(slack, w.drift[i], w.drift[j])

			// bi moved: look again around its new position for the handles still ahead of j.
			if bi.Position != pi {
				candidates = w.candidates(tree, stray, bi, maxRadius+slack, j, candidates[:0])
				k = -1
			}
		}
	}

	for i := range w.bodies {
		w.bodies[i].ReflectOffBoundaries(w.width, w.height)
	}

	w.tick++
	report.Tick = w.tick
	report.Index = tree.Stats()
	return report
}

// candidates appends to dst, in increasing order, the handles greater than after that may touch b:
// index entries within b.Radius+margin of b's center on both axes, plus every stray handle.
func (w *World) candidates(tree *spatial.QuadTree, stray []int, b *Body, margin float64, after int, dst []int) []int {
	w.found = tree.Query(spatial.Around(b.Position, b.Radius+margin), w.found[:0])
	for _, e := range w.found {
		if e.Handle > after {
			dst = append(dst, e.Handle)
		}
	}
	for _, h := range stray {
		if h > after {
			dst = append(dst, h)
		}
	}
	slices.Sort(dst)
	return dst
}

// buildIndex inserts every body into a fresh quadtree over the arena and returns the handles it
// rejected (outside the arena after integration, or lost to rounding on a split line).
func (w *World) buildIndex() (*spatial.QuadTree, []int) {
	tree := spatial.NewQuadTree(spatial.NewRegion(0, 0, w.width, w.height), w.capacity)
	var stray []int
	for i := range w.bodies {
		if !tree.Insert(i, w.bodies[i].Position) {
			stray = append(stray, i)
		}
	}
	return tree, stray
}

// Neighbors returns the handles of bodies currently colliding with body h, found through a freshly
// built index. It does not modify the world.
func (w *World) Neighbors(h int) []int {
	if h < 0 || h >= len(w.bodies) {
		return nil
	}
	tree, stray := w.buildIndex()
	b := &w.bodies[h]
	found := tree.Query(spatial.Around(b.Position, b.Radius+w.maxRadius()), nil)
	var out []int
	for _, e := range found {
		if e.Handle != h && b.IsColliding(&w.bodies[e.Handle]) {
			out = append(out, e.Handle)
		}
	}
	for _, s := range stray {
		if s != h && b.IsColliding(&w.bodies[s]) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

func (w *World) maxRadius() float64 {
	r := 0.0
	for i := range w.bodies {
		r = max(r, w.bodies[i].Radius)
	}
	return r
}

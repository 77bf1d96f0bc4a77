package physics

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"collision-sim/internal/vector"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Logf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func randomBodies(seed int64, n int, w, h float64) []Body {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Body, n)
	for i := range out {
		r := 10 + rng.Float64()*10
		out[i] = NewBody(5+rng.Float64()*10, r,
			vector.New(r+rng.Float64()*(w-2*r), r+rng.Float64()*(h-2*r)),
			vector.New(rng.Float64()*100-50, rng.Float64()*100-50))
	}
	return out
}

// stepAllPairs is the reference step: same phases and pair order as World.Step, but every pair is
// tested instead of asking the index.
func stepAllPairs(bodies []Body, w, h, e, dt float64) {
	for i := range bodies {
		bodies[i].Integrate(dt)
	}
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if !bodies[i].IsColliding(&bodies[j]) {
				continue
			}
			if err := bodies[i].ResolveCollision(&bodies[j], e); err != nil {
				bodies[i].ResolveCoincident(&bodies[j], e)
			}
		}
	}
	for i := range bodies {
		bodies[i].ReflectOffBoundaries(w, h)
	}
}

func TestStepMatchesAllPairs(t *testing.T) {
	for _, e := range []float64{1, 0.5, 0} {
		t.Run(fmt.Sprintf("e=%.1f", e), func(t *testing.T) {
			start := randomBodies(11, 120, 800, 600)
			world := NewWorld(Config{Width: 800, Height: 600, Restitution: e, Capacity: 4}, nil)
			world.Respawn(start, nil)
			ref := slices.Clone(start)

			collisions := 0
			for tick := 0; tick < 200; tick++ {
				report := world.Step(0.1)
				collisions += report.Collisions
				stepAllPairs(ref, 800, 600, e, 0.1)
				got := world.Bodies()
				for i := range ref {
					if got[i] != ref[i] {
						t.Fatalf("tick %d body %d: index step %+v, all-pairs step %+v", tick, i, got[i], ref[i])
					}
				}
			}
			if collisions == 0 {
				t.Fatalf("test setup: expected some collisions")
			}
		})
	}
}

func TestStepIsDeterministic(t *testing.T) {
	run := func() []Body {
		w := NewWorld(Config{Width: 800, Height: 600, Restitution: 0.8}, nil)
		w.Respawn(randomBodies(5, 80, 800, 600), nil)
		for i := 0; i < 300; i++ {
			w.Step(0.1)
		}
		return w.Bodies()
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestStepKeepsBodiesInsideArena(t *testing.T) {
	w := NewWorld(Config{Width: 400, Height: 300, Restitution: 1}, nil)
	w.Respawn(randomBodies(9, 60, 400, 300), nil)
	for tick := 0; tick < 200; tick++ {
		w.Step(0.25)
		for i, b := range w.Bodies() {
			x, y := b.Position.X(), b.Position.Y()
			if x < b.Radius || x > 400-b.Radius || y < b.Radius || y > 300-b.Radius {
				t.Fatalf("tick %d: body %d at %v outside arena", tick, i, b.Position)
			}
		}
	}
	if w.Tick() != 200 {
		t.Fatalf("tick = %d, want 200", w.Tick())
	}
}

func TestStepResolvesHeadOnPair(t *testing.T) {
	w := NewWorld(Config{Width: 800, Height: 600, Restitution: 1}, nil)
	a := w.Add(NewBody(1, 5, vector.New(100, 300), vector.New(10, 0)), Tag{Color: "#ff0000"})
	b := w.Add(NewBody(1, 5, vector.New(109, 300), vector.New(-10, 0)), Tag{Color: "#0000ff"})

	report := w.Step(0)
	if report.Collisions != 1 {
		t.Fatalf("collisions = %d, want 1", report.Collisions)
	}
	ba, _ := w.Body(a)
	bb, _ := w.Body(b)
	if !approx(ba.Velocity.X(), -10, eps) || !approx(bb.Velocity.X(), 10, eps) {
		t.Fatalf("velocities = %v and %v, want (-10,0) and (10,0)", ba.Velocity, bb.Velocity)
	}
	if tags := w.Tags(); tags[a].Color != "#ff0000" || tags[b].Color != "#0000ff" {
		t.Fatalf("tags changed: %+v", tags)
	}
}

func TestStepSeparatesCoincidentBodies(t *testing.T) {
	log := &recordingLogger{}
	w := NewWorld(Config{Width: 800, Height: 600, Restitution: 1}, log)
	w.Add(NewBody(1, 5, vector.New(300, 300), vector.Vector2D{}), Tag{})
	w.Add(NewBody(1, 5, vector.New(300, 300), vector.Vector2D{}), Tag{})

	report := w.Step(0.1)
	if report.Coincident != 1 {
		t.Fatalf("coincident = %d, want 1", report.Coincident)
	}
	if len(log.lines) == 0 {
		t.Fatalf("expected the fallback to be logged")
	}
	b0, _ := w.Body(0)
	b1, _ := w.Body(1)
	if b0.IsColliding(&b1) {
		t.Fatalf("bodies still overlap: %v %v", b0.Position, b1.Position)
	}
}

func TestStepChecksStrayBodiesByBruteForce(t *testing.T) {
	log := &recordingLogger{}
	w := NewWorld(Config{Width: 800, Height: 600, Restitution: 1}, log)
	// Both bodies leave the arena during integration, so the index rejects them.
	w.Add(NewBody(1, 10, vector.New(795, 300), vector.New(20, 0)), Tag{})
	w.Add(NewBody(1, 10, vector.New(795, 312), vector.New(20, 0)), Tag{})

	report := w.Step(1)
	if !slices.Equal(report.Stray, []int{0, 1}) {
		t.Fatalf("stray = %v, want [0 1]", report.Stray)
	}
	if report.Indexed != 0 {
		t.Fatalf("indexed = %d, want 0", report.Indexed)
	}
	if report.Collisions != 1 {
		t.Fatalf("collisions = %d, want 1", report.Collisions)
	}
	if len(log.lines) == 0 {
		t.Fatalf("expected strays to be logged")
	}

	// Back inside after reflection: the next rebuild indexes them again.
	report = w.Step(0)
	if len(report.Stray) != 0 || report.Indexed != 2 {
		t.Fatalf("after reflection: stray=%v indexed=%d", report.Stray, report.Indexed)
	}
}

func TestRespawnReplacesBodies(t *testing.T) {
	w := NewWorld(Config{Width: 800, Height: 600, Restitution: 1}, nil)
	w.Respawn(randomBodies(1, 10, 800, 600), []Tag{{Color: "#ff0000"}})
	if w.Len() != 10 || len(w.Tags()) != 10 {
		t.Fatalf("len = %d tags = %d, want 10 and 10", w.Len(), len(w.Tags()))
	}
	if w.Tags()[0].Color != "#ff0000" || w.Tags()[1].Color != "" {
		t.Fatalf("tags = %+v", w.Tags()[:2])
	}

	w.Respawn(randomBodies(2, 3, 800, 600), nil)
	if w.Len() != 3 {
		t.Fatalf("len after respawn = %d, want 3", w.Len())
	}
	if _, ok := w.Body(5); ok {
		t.Fatalf("handle 5 still valid after respawn to 3 bodies")
	}
	w.Step(0.1)
}

func TestBodiesReturnsCopy(t *testing.T) {
	w := NewWorld(Config{Width: 100, Height: 100}, nil)
	w.Add(NewBody(1, 1, vector.New(50, 50), vector.Vector2D{}), Tag{})
	bodies := w.Bodies()
	bodies[0].Position = vector.New(0, 0)
	if b, _ := w.Body(0); b.Position != vector.New(50, 50) {
		t.Fatalf("world body changed through Bodies() copy")
	}
}

func TestNeighbors(t *testing.T) {
	w := NewWorld(Config{Width: 800, Height: 600}, nil)
	w.Add(NewBody(1, 10, vector.New(100, 100), vector.Vector2D{}), Tag{})
	w.Add(NewBody(1, 10, vector.New(115, 100), vector.Vector2D{}), Tag{})
	w.Add(NewBody(1, 30, vector.New(100, 135), vector.Vector2D{}), Tag{})
	w.Add(NewBody(1, 10, vector.New(500, 500), vector.Vector2D{}), Tag{})

	if got := w.Neighbors(0); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("neighbors of 0 = %v, want [1 2]", got)
	}
	if got := w.Neighbors(3); len(got) != 0 {
		t.Fatalf("neighbors of 3 = %v, want none", got)
	}
	if got := w.Neighbors(42); got != nil {
		t.Fatalf("neighbors of unknown handle = %v", got)
	}
}

func TestClampRestitution(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-0.1, 0}, {0, 0}, {0.4, 0.4}, {1, 1}, {1.1, 1},
	}
	for _, tt := range tests {
		if got := ClampRestitution(tt.in); got != tt.want {
			t.Errorf("ClampRestitution(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTotalKineticEnergy(t *testing.T) {
	w := NewWorld(Config{Width: 100, Height: 100}, nil)
	w.Add(NewBody(2, 1, vector.New(10, 10), vector.New(3, 4)), Tag{})
	w.Add(NewBody(4, 1, vector.New(50, 50), vector.New(1, 0)), Tag{})
	if got := w.TotalKineticEnergy(); got != 27 {
		t.Fatalf("kinetic energy = %f, want 27", got)
	}
}

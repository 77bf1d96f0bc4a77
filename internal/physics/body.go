package physics

import (
	"errors"
	"fmt"
	"math"

	"collision-sim/internal/vector"
)

// ErrCoincidentCenters is returned by ResolveCollision when both centers are at the same point,
// so no collision normal exists. Use ResolveCoincident to separate such a pair.
var ErrCoincidentCenters = errors.New("physics: coincident body centers")

// Body is a non-rotating circular rigid body. It carries physics state only; display data
// (color, label) is kept by the caller and associated by body index.
type Body struct {
	Mass     float64
	Radius   float64
	Position vector.Vector2D
	Velocity vector.Vector2D
}

// NewBody returns a body with the given attributes. Non-positive mass or radius is replaced with 1,
// so every constructed body satisfies mass > 0 and radius > 0.
func NewBody(mass, radius float64, position, velocity vector.Vector2D) Body {
	if mass <= 0 {
		mass = 1
	}
	if radius <= 0 {
		radius = 1
	}
	return Body{
		Mass:     mass,
		Radius:   radius,
		Position: position,
		Velocity: velocity,
	}
}

// Integrate advances the position by velocity*dt (explicit Euler). There is no sub-stepping:
// a fast body can pass through a thin neighbor within one step without a collision being seen.
func (b *Body) Integrate(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// IsColliding reports whether the two circles overlap. Touching circles do not collide.
func (b *Body) IsColliding(other *Body) bool {
	diff := b.Position.Sub(other.Position)
	sum := b.Radius + other.Radius
	return diff.MagnitudeSquared() < sum*sum
}

// ResolveCollision applies an impulse with restitution e (0..1, not clamped here) to both bodies
// along the line between their centers, then pushes each body half the overlap apart.
// Both bodies are modified in place. Coincident centers return ErrCoincidentCenters and leave
// both bodies unchanged.
func (b *Body) ResolveCollision(other *Body, e float64) error {
	diff := b.Position.Sub(other.Position)
	d := diff.Magnitude()
	n, err := diff.Divide(d)
	if err != nil {
		return fmt.Errorf("resolve collision at %v: %w", b.Position, ErrCoincidentCenters)
	}
	b.resolveAlong(other, n, d, e)
	return nil
}

// coincidentNormal is the separation direction used when two centers coincide.
var coincidentNormal = vector.New(1, 0)

// ResolveCoincident resolves a pair whose centers coincide, using +X as the collision normal.
// b ends up on the +X side of other.
func (b *Body) ResolveCoincident(other *Body, e float64) {
	b.resolveAlong(other, coincidentNormal, 0, e)
}

// resolveAlong applies the impulse and positional correction for unit normal n (pointing from other
// towards b) and center distance d.
func (b *Body) resolveAlong(other *Body, n vector.Vector2D, d, e float64) {
	vRel := b.Velocity.Sub(other.Velocity)
	j := -(1 + e) * vRel.Dot(n) / (1/b.Mass + 1/other.Mass)
	b.Velocity = b.Velocity.Add(n.Scale(j / b.Mass))
	other.Velocity = other.Velocity.Sub(n.Scale(j / other.Mass))

	overlap := math.Abs((b.Radius + other.Radius) - d)
	push := n.Scale(overlap / 2)
	b.Position = b.Position.Add(push)
	other.Position = other.Position.Sub(push)
}

// ReflectOffBoundaries bounces the body off the walls x=0, x=width, y=0, y=height. When the circle's
// edge reaches a wall the position is clamped so the edge is tangent to it and the velocity
// component is turned to point away from the wall (undamped). The four checks are independent,
// so a corner hit flips both components in the same call.
func (b *Body) ReflectOffBoundaries(width, height float64) {
	x, y := b.Position.X(), b.Position.Y()
	vx, vy := b.Velocity.X(), b.Velocity.Y()

	if x+b.Radius >= width {
		x = width - b.Radius
		if vx > 0 {
			vx = -vx
		}
	}
	if x-b.Radius <= 0 {
		x = b.Radius
		if vx < 0 {
			vx = -vx
		}
	}
	if y+b.Radius >= height {
		y = height - b.Radius
		if vy > 0 {
			vy = -vy
		}
	}
	if y-b.Radius <= 0 {
		y = b.Radius
		if vy < 0 {
			vy = -vy
		}
	}

	b.Position = vector.New(x, y)
	b.Velocity = vector.New(vx, vy)
}

// KineticEnergy returns 0.5 * m * |v|^2.
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.MagnitudeSquared()
}

// Momentum returns m * v.
func (b *Body) Momentum() vector.Vector2D {
	return b.Velocity.Scale(b.Mass)
}

package vector

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDivideByZero is returned by Divide when the divisor is zero.
var ErrDivideByZero = errors.New("vector: division by zero")

// Vector2D is a 2D vector value. Operations never modify the receiver; they return a new value.
// Storage and arithmetic are delegated to mgl64.Vec2.
type Vector2D mgl64.Vec2

// New returns the vector (x, y).
func New(x, y float64) Vector2D {
	return Vector2D{x, y}
}

// X returns the x component.
func (v Vector2D) X() float64 { return v[0] }

// Y returns the y component.
func (v Vector2D) Y() float64 { return v[1] }

// WithX returns a copy of v with the x component replaced.
func (v Vector2D) WithX(x float64) Vector2D { return Vector2D{x, v[1]} }

// WithY returns a copy of v with the y component replaced.
func (v Vector2D) WithY(y float64) Vector2D { return Vector2D{v[0], y} }

func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D(mgl64.Vec2(v).Add(mgl64.Vec2(o)))
}

func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D(mgl64.Vec2(v).Sub(mgl64.Vec2(o)))
}

// Scale multiplies both components by k.
func (v Vector2D) Scale(k float64) Vector2D {
	return Vector2D(mgl64.Vec2(v).Mul(k))
}

// Divide divides both components by k. A zero k returns ErrDivideByZero instead of a NaN/Inf vector.
func (v Vector2D) Divide(k float64) (Vector2D, error) {
	if k == 0 {
		return Vector2D{}, fmt.Errorf("divide %v by %v: %w", v, k, ErrDivideByZero)
	}
	return Vector2D{v[0] / k, v[1] / k}, nil
}

func (v Vector2D) Dot(o Vector2D) float64 {
	return mgl64.Vec2(v).Dot(mgl64.Vec2(o))
}

// Magnitude is the Euclidean norm.
func (v Vector2D) Magnitude() float64 {
	return mgl64.Vec2(v).Len()
}

// MagnitudeSquared avoids the square root; use it for distance comparisons.
func (v Vector2D) MagnitudeSquared() float64 {
	return mgl64.Vec2(v).LenSqr()
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%g, %g)", v[0], v[1])
}

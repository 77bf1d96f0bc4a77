package spatial

import "collision-sim/internal/vector"

// Region is an axis-aligned rectangle with corner (X, Y) and extents Width, Height.
// All four edges belong to the region.
type Region struct {
	X, Y          float64
	Width, Height float64
}

// NewRegion returns the region with corner (x, y) and the given extents.
func NewRegion(x, y, width, height float64) Region {
	return Region{X: x, Y: y, Width: width, Height: height}
}

// Around returns the square of half-extent half centered on c.
func Around(c vector.Vector2D, half float64) Region {
	return Region{X: c.X() - half, Y: c.Y() - half, Width: 2 * half, Height: 2 * half}
}

// Contains reports whether p lies in [X, X+Width] x [Y, Y+Height].
func (r Region) Contains(p vector.Vector2D) bool {
	x, y := p.X(), p.Y()
	return r.X <= x && x <= r.X+r.Width &&
		r.Y <= y && y <= r.Y+r.Height
}

// Intersects reports whether the two regions are not separated along either axis.
// Regions that only share an edge or a corner intersect.
func (r Region) Intersects(o Region) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

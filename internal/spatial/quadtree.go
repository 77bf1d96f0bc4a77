package spatial

import "collision-sim/internal/vector"

// DefaultCapacity is the number of entries a node holds before it subdivides.
const DefaultCapacity = 4

// Entry is one indexed point: a handle into the caller's body store and the position it was
// inserted at. The tree never dereferences handles.
type Entry struct {
	Handle int
	Pos    vector.Vector2D
}

// Stats counts work done by one tree (all nodes share the counters of their root).
type Stats struct {
	Nodes        int // nodes allocated, root included
	Subdivisions int // subdivide calls
	Visits       int // nodes entered by Query, including pruned ones
}

// QuadTree is a point quadtree over a rectangular region. Nodes hold up to capacity entries and
// split into four equal quadrants on the first insertion past capacity. A tree is meant to be
// built, queried, and discarded within one simulation tick.
type QuadTree struct {
	region   Region
	capacity int
	entries  []Entry
	divided  bool

	northWest *QuadTree
	northEast *QuadTree
	southWest *QuadTree
	southEast *QuadTree

	stats *Stats
}

// NewQuadTree returns an empty tree over region. Non-positive capacity uses DefaultCapacity.
func NewQuadTree(region Region, capacity int) *QuadTree {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return newNode(region, capacity, &Stats{})
}

func newNode(region Region, capacity int, stats *Stats) *QuadTree {
	stats.Nodes++
	return &QuadTree{
		region:   region,
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
		stats:    stats,
	}
}

// Region returns the area covered by this node.
func (q *QuadTree) Region() Region { return q.region }

// Stats returns a copy of the counters shared by the whole tree.
func (q *QuadTree) Stats() Stats { return *q.stats }

// Divided reports whether this node has been split into quadrants.
func (q *QuadTree) Divided() bool { return q.divided }

// subdivide creates the four quadrant children. Y grows downwards, so "north" is the smaller Y.
func (q *QuadTree) subdivide() {
	x, y := q.region.X, q.region.Y
	halfW := q.region.Width / 2
	halfH := q.region.Height / 2

	q.northWest = newNode(NewRegion(x, y, halfW, halfH), q.capacity, q.stats)
	q.northEast = newNode(NewRegion(x+halfW, y, halfW, halfH), q.capacity, q.stats)
	q.southWest = newNode(NewRegion(x, y+halfH, halfW, halfH), q.capacity, q.stats)
	q.southEast = newNode(NewRegion(x+halfW, y+halfH, halfW, halfH), q.capacity, q.stats)

	q.divided = true
	q.stats.Subdivisions++
}

// Insert adds handle at pos. It returns false when pos is outside this node's region, and also when
// pos is inside the region but no child accepts it, which can only happen when rounding makes the
// children's union slightly smaller than the parent. Children are tried in the order NE, NW, SE, SW;
// a point on a split line goes to the first of those that contains it.
func (q *QuadTree) Insert(handle int, pos vector.Vector2D) bool {
	if !q.region.Contains(pos) {
		return false
	}

	if !q.divided && len(q.entries) < q.capacity {
		q.entries = append(q.entries, Entry{Handle: handle, Pos: pos})
		return true
	}

	if !q.divided {
		q.subdivide()
	}
	return q.northEast.Insert(handle, pos) ||
		q.northWest.Insert(handle, pos) ||
		q.southEast.Insert(handle, pos) ||
		q.southWest.Insert(handle, pos)
}

// Query appends to found every entry whose position lies in r and returns the extended slice.
// Subtrees whose region does not intersect r are skipped. Order of results is unspecified.
func (q *QuadTree) Query(r Region, found []Entry) []Entry {
	q.stats.Visits++
	if !q.region.Intersects(r) {
		return found
	}

	for _, e := range q.entries {
		if r.Contains(e.Pos) {
			found = append(found, e)
		}
	}

	if q.divided {
		found = q.northEast.Query(r, found)
		found = q.northWest.Query(r, found)
		found = q.southEast.Query(r, found)
		found = q.southWest.Query(r, found)
	}
	return found
}

// Len returns the number of entries stored in this node and all its descendants.
func (q *QuadTree) Len() int {
	n := len(q.entries)
	if q.divided {
		n += q.northEast.Len() + q.northWest.Len() + q.southEast.Len() + q.southWest.Len()
	}
	return n
}

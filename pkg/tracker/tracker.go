// Package tracker implements PlayerTracker: two ChunkCoord-keyed indexes -
// membership (where is each player standing) and subscriptions (who wants
// to hear about changes at a chunk) - behind a single coarse lock.
package tracker

import (
	"sync"

	"github.com/mgrech/vitamine/pkg/world"
)

// Tracker is generic over the session-handle type P so it never needs to
// import the server package that owns sessions - P is held as a
// non-owning handle, comparable so it can live in a Go set (map[P]struct{}).
type Tracker[P comparable] struct {
	mu            sync.Mutex
	membership    map[world.Coord]map[P]struct{}
	subscriptions map[world.Coord]map[P]struct{}
}

// New returns an empty tracker.
func New[P comparable]() *Tracker[P] {
	return &Tracker[P]{
		membership:    make(map[world.Coord]map[P]struct{}),
		subscriptions: make(map[world.Coord]map[P]struct{}),
	}
}

// Lock acquires the tracker's single internal lock, letting a caller
// compose a membership/subscription mutation with a subscriber snapshot
// atomically.
func (t *Tracker[P]) Lock() { t.mu.Lock() }

// Unlock releases the tracker's internal lock.
func (t *Tracker[P]) Unlock() { t.mu.Unlock() }

func square(center world.Coord, vd int32) []world.Coord {
	coords := make([]world.Coord, 0, (2*vd+1)*(2*vd+1))
	for dx := -vd; dx <= vd; dx++ {
		for dz := -vd; dz <= vd; dz++ {
			coords = append(coords, world.Coord{X: center.X + dx, Z: center.Z + dz})
		}
	}
	return coords
}

func inSquare(center, c world.Coord, vd int32) bool {
	dx := c.X - center.X
	if dx < 0 {
		dx = -dx
	}
	dz := c.Z - center.Z
	if dz < 0 {
		dz = -dz
	}
	return dx <= vd && dz <= vd
}

func addTo[P comparable](index map[world.Coord]map[P]struct{}, coord world.Coord, p P) {
	set, ok := index[coord]
	if !ok {
		set = make(map[P]struct{})
		index[coord] = set
	}
	set[p] = struct{}{}
}

func removeFrom[P comparable](index map[world.Coord]map[P]struct{}, coord world.Coord, p P) {
	set, ok := index[coord]
	if !ok {
		return
	}
	delete(set, p)
	if len(set) == 0 {
		delete(index, coord)
	}
}

// Enter inserts p into membership[coord] and into subscriptions[c] for
// every c in the (2vd+1)^2 square centred on coord. Callers must hold Lock.
func (t *Tracker[P]) Enter(coord world.Coord, vd int32, p P) {
	addTo(t.membership, coord, p)
	for _, c := range square(coord, vd) {
		addTo(t.subscriptions, c, p)
	}
}

// Leave removes p from membership[coord] and every subscription ring the
// matching Enter installed. Callers must hold Lock.
func (t *Tracker[P]) Leave(coord world.Coord, vd int32, p P) {
	removeFrom(t.membership, coord, p)
	for _, c := range square(coord, vd) {
		removeFrom(t.subscriptions, c, p)
	}
}

// Move transfers p's membership from one chunk to another, leaving
// subscriptions untouched - callers reconcile subscriptions separately via
// Subscribe/Unsubscribe. Callers must hold Lock.
func (t *Tracker[P]) Move(from, to world.Coord, p P) {
	removeFrom(t.membership, from, p)
	addTo(t.membership, to, p)
}

// Subscribe adds p to the subscription set of every coordinate in chunks.
// Callers must hold Lock.
func (t *Tracker[P]) Subscribe(chunks []world.Coord, p P) {
	for _, c := range chunks {
		addTo(t.subscriptions, c, p)
	}
}

// Unsubscribe removes p from the subscription set of every coordinate in
// chunks. Callers must hold Lock.
func (t *Tracker[P]) Unsubscribe(chunks []world.Coord, p P) {
	for _, c := range chunks {
		removeFrom(t.subscriptions, c, p)
	}
}

// UpdateViewDistance adds/removes p to/from subscription rings outside the
// smaller square and inside the larger - the symmetric difference of the
// old and new (2vd+1)^2 squares centred on coord. Callers must hold Lock.
func (t *Tracker[P]) UpdateViewDistance(coord world.Coord, oldVd, newVd int32, p P) {
	maxVd := oldVd
	if newVd > maxVd {
		maxVd = newVd
	}
	for _, c := range square(coord, maxVd) {
		wasIn := inSquare(coord, c, oldVd)
		isIn := inSquare(coord, c, newVd)
		switch {
		case isIn && !wasIn:
			addTo(t.subscriptions, c, p)
		case wasIn && !isIn:
			removeFrom(t.subscriptions, c, p)
		}
	}
}

// Subscribers returns a copy of the subscription set for coord, safe to use
// outside the lock.
func (t *Tracker[P]) Subscribers(coord world.Coord) []P {
	return snapshot(t.subscriptions, coord)
}

// Members returns a copy of the membership set for coord, safe to use
// outside the lock.
func (t *Tracker[P]) Members(coord world.Coord) []P {
	return snapshot(t.membership, coord)
}

func snapshot[P comparable](index map[world.Coord]map[P]struct{}, coord world.Coord) []P {
	set := index[coord]
	out := make([]P, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// Difference returns the coordinates present in a but not in b - used to
// compute the chunks a view-distance shrink should UnloadChunk, or a growth
// should sendChunk.
func Difference(a, b []world.Coord) []world.Coord {
	inB := make(map[world.Coord]struct{}, len(b))
	for _, c := range b {
		inB[c] = struct{}{}
	}
	var out []world.Coord
	for _, c := range a {
		if _, ok := inB[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Square returns every coordinate in the (2vd+1)^2 square centred on
// center - exported so session code can compute old/new subscription rings
// for Difference without duplicating the geometry.
func Square(center world.Coord, vd int32) []world.Coord {
	return square(center, vd)
}

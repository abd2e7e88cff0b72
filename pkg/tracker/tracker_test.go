package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgrech/vitamine/pkg/world"
)

func containsCoord(set []world.Coord, c world.Coord) bool {
	for _, x := range set {
		if x == c {
			return true
		}
	}
	return false
}

func TestEnterPopulatesMembershipAndSubscriptionSquare(t *testing.T) {
	tr := New[string]()
	center := world.Coord{X: 0, Z: 0}
	tr.Lock()
	tr.Enter(center, 1, "alice")
	tr.Unlock()

	require.Contains(t, tr.Members(center), "alice")
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			c := world.Coord{X: dx, Z: dz}
			require.Contains(t, tr.Subscribers(c), "alice")
		}
	}
	require.NotContains(t, tr.Subscribers(world.Coord{X: 2, Z: 0}), "alice")
}

func TestLeaveRemovesEverythingEnterAdded(t *testing.T) {
	tr := New[string]()
	center := world.Coord{X: 5, Z: 5}
	tr.Lock()
	tr.Enter(center, 2, "bob")
	tr.Leave(center, 2, "bob")
	tr.Unlock()

	require.Empty(t, tr.Members(center))
	for _, c := range Square(center, 2) {
		require.Empty(t, tr.Subscribers(c))
	}
}

func TestMoveTransfersMembershipOnly(t *testing.T) {
	tr := New[string]()
	from := world.Coord{X: 0, Z: 0}
	to := world.Coord{X: 1, Z: 0}
	tr.Lock()
	tr.Enter(from, 1, "carol")
	tr.Move(from, to, "carol")
	tr.Unlock()

	require.Empty(t, tr.Members(from))
	require.Contains(t, tr.Members(to), "carol")
	// subscriptions were untouched by Move
	require.Contains(t, tr.Subscribers(from), "carol")
}

func TestUpdateViewDistanceGrowAddsOuterRing(t *testing.T) {
	tr := New[string]()
	center := world.Coord{X: 0, Z: 0}
	tr.Lock()
	tr.Enter(center, 1, "dan")
	tr.UpdateViewDistance(center, 1, 2, "dan")
	tr.Unlock()

	require.Contains(t, tr.Subscribers(world.Coord{X: 2, Z: 0}), "dan")
	require.Contains(t, tr.Subscribers(world.Coord{X: 0, Z: 0}), "dan")
}

func TestUpdateViewDistanceShrinkRemovesOuterRing(t *testing.T) {
	tr := New[string]()
	center := world.Coord{X: 0, Z: 0}
	tr.Lock()
	tr.Enter(center, 2, "erin")
	tr.UpdateViewDistance(center, 2, 1, "erin")
	tr.Unlock()

	require.NotContains(t, tr.Subscribers(world.Coord{X: 2, Z: 0}), "erin")
	require.Contains(t, tr.Subscribers(world.Coord{X: 1, Z: 0}), "erin")
}

func TestDifferenceComputesSetMinus(t *testing.T) {
	a := Square(world.Coord{}, 1)
	b := Square(world.Coord{}, 0)
	diff := Difference(a, b)
	require.Len(t, diff, len(a)-len(b))
	require.False(t, containsCoord(diff, world.Coord{X: 0, Z: 0}))
	require.True(t, containsCoord(diff, world.Coord{X: 1, Z: 1}))
}

func TestSubscribersSnapshotIsACopy(t *testing.T) {
	tr := New[string]()
	c := world.Coord{X: 0, Z: 0}
	tr.Lock()
	tr.Enter(c, 0, "fred")
	tr.Unlock()

	snap := tr.Subscribers(c)
	snap[0] = "mutated"
	require.Contains(t, tr.Subscribers(c), "fred")
}

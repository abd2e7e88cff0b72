package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreGetGeneratesOnMiss(t *testing.T) {
	s := NewStore()
	c := s.Get(Coord{X: 1, Z: -1})
	require.NotNil(t, c)
	require.Equal(t, Coord{X: 1, Z: -1}, c.Coord)
}

func TestStoreGetIsIdempotent(t *testing.T) {
	s := NewStore()
	a := s.Get(Coord{X: 0, Z: 0})
	b := s.Get(Coord{X: 0, Z: 0})
	require.Same(t, a, b)
}

func TestStoreGetConcurrentMissesConvergeOnOneChunk(t *testing.T) {
	s := NewStore()
	const n = 50
	results := make([]*Chunk, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = s.Get(Coord{X: 5, Z: 5})
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		require.Same(t, results[0], results[i])
	}
}

func TestCoordOfFloorsNegativeCoordinates(t *testing.T) {
	require.Equal(t, Coord{X: 0, Z: 0}, CoordOf(0, 0))
	require.Equal(t, Coord{X: 0, Z: 0}, CoordOf(15, 15))
	require.Equal(t, Coord{X: -1, Z: -1}, CoordOf(-1, -1))
	require.Equal(t, Coord{X: -1, Z: -1}, CoordOf(-16, -16))
	require.Equal(t, Coord{X: 1, Z: 0}, CoordOf(16, 0))
}

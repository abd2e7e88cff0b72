package server

import (
	"github.com/mgrech/vitamine/pkg/protocol"
	"github.com/mgrech/vitamine/pkg/world"
)

// sendChunk resolves or lazily generates the chunk at coord and streams it
// to the client as a full ChunkData packet.
func (s *Session) sendChunk(coord world.Coord) {
	c := s.global.World.Get(coord)
	c.Lock()
	bitmask, heightmapNBT, sectionsAndBiomes := c.Serialize()
	c.Unlock()

	s.send(protocol.EncodeChunkData(coord.X, coord.Z, bitmask, heightmapNBT, sectionsAndBiomes))
}

// sendChunkSquare streams every chunk in the (2vd+1)^2 square centred on
// coord - used once at PLAY_INIT to deliver the initial view.
func (s *Session) sendChunkSquare(coord world.Coord, vd int32) {
	for dx := -vd; dx <= vd; dx++ {
		for dz := -vd; dz <= vd; dz++ {
			s.sendChunk(world.Coord{X: coord.X + dx, Z: coord.Z + dz})
		}
	}
}

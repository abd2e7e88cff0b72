package server

import (
	"github.com/mgrech/vitamine/pkg/protocol"
	"github.com/mgrech/vitamine/pkg/world"
)

const diggingRangeBlocks = 6

func (s *Session) handlePlayerDigging(payload []byte) {
	pd, err := protocol.DecodePlayerDigging(payload)
	if err != nil {
		s.Disconnect("malformed player digging")
		return
	}
	if pd.Status < 0 || pd.Status > 6 {
		s.Disconnect("invalid digging status")
		return
	}
	if pd.Face > 5 {
		s.Disconnect("invalid digging face")
		return
	}
	if pd.Status != 0 {
		// Only "start digging" mutates the world in this server; the rest
		// of the digging state machine (break progress, cancel) has no
		// observable effect here.
		return
	}

	if !withinDiggingRange(s.Player.X, s.Player.Y, s.Player.Z, pd.X, pd.Y, pd.Z) {
		s.log.Debug("digging range exceeded")
	}

	coord := world.CoordOf(pd.X, pd.Z)
	c := s.global.World.Get(coord)

	lx := int(pd.X & 15)
	lz := int(pd.Z & 15)
	ly := int(pd.Y)
	if ly < 0 || ly > 255 {
		s.Disconnect("digging position out of range")
		return
	}

	c.Lock()
	current := c.BlockAt(lx, ly, lz)
	if current == world.BlockAir {
		c.Unlock()
		return
	}
	c.SetBlockAt(lx, ly, lz, world.BlockAir)
	c.Unlock()

	s.broadcastLocalBlockChange(pd.X, pd.Y, pd.Z, int32(world.BlockAir))
}

func withinDiggingRange(px, py, pz float64, bx, by, bz int32) bool {
	dx := px - float64(bx)
	dy := py - float64(by)
	dz := pz - float64(bz)
	return dx*dx+dy*dy+dz*dz <= diggingRangeBlocks*diggingRangeBlocks
}

func (s *Session) broadcastLocalBlockChange(x, y, z int32, blockStateID int32) {
	frame := protocol.EncodeBlockChange(x, y, z, blockStateID)
	coord := world.CoordOf(x, z)
	s.global.Tracker.Lock()
	subs := s.global.Tracker.Subscribers(coord)
	s.global.Tracker.Unlock()
	for _, other := range subs {
		if other == s {
			continue
		}
		other.send(frame)
	}
}

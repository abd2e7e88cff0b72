package server

import (
	"math"

	"github.com/mgrech/vitamine/pkg/protocol"
	"github.com/mgrech/vitamine/pkg/tracker"
	"github.com/mgrech/vitamine/pkg/world"
)

// chunkOf floors a block position down to its containing chunk coordinate,
// using arithmetic (sign-preserving) right shift, the chunk-coordinate
// conversion rule.
func chunkOf(x, z float64) world.Coord {
	return world.Coord{X: int32(math.Floor(x)) >> 4, Z: int32(math.Floor(z)) >> 4}
}

// onMove runs after any PlayerPosition/PlayerPositionRotation/
// PlayerRotation/PlayerMovement handler updates PlayerState's position or
// look. oldX/oldZ are the position before this packet's update.
func (s *Session) onMove(oldX, oldZ float64, rotate bool) {
	oldChunk := chunkOf(oldX, oldZ)
	newChunk := chunkOf(s.Player.X, s.Player.Z)

	if oldChunk == newChunk {
		s.broadcastLocalMove(rotate)
		return
	}
	s.onChunkTransition(oldChunk, newChunk, rotate)
}

// moveFrameFromLastSent builds the outbound move packet for entityID,
// choosing EntityMove/EntityMoveRotation when the delta from the last
// broadcast position fits the fixed-point range, EntityTeleport otherwise.
// It then updates LastSent{X,Y,Z} to the new position.
func (s *Session) moveFrameFromLastSent(rotate bool) []byte {
	p := &s.Player
	dx := p.X - p.LastSentX
	dy := p.Y - p.LastSentY
	dz := p.Z - p.LastSentZ
	p.LastSentX, p.LastSentY, p.LastSentZ = p.X, p.Y, p.Z

	if protocol.FitsMoveDelta(dx) && protocol.FitsMoveDelta(dy) && protocol.FitsMoveDelta(dz) {
		if rotate {
			return protocol.EncodeEntityMoveRotation(p.EntityID, dx, dy, dz, p.Yaw, p.Pitch, true)
		}
		return protocol.EncodeEntityMove(p.EntityID, dx, dy, dz, true)
	}
	return protocol.EncodeEntityTeleport(p.EntityID, p.X, p.Y, p.Z, p.Yaw, p.Pitch, true)
}

func (s *Session) broadcastLocalMove(rotate bool) {
	frame := s.moveFrameFromLastSent(rotate)

	s.global.Tracker.Lock()
	subs := s.global.Tracker.Subscribers(chunkOf(s.Player.X, s.Player.Z))
	s.global.Tracker.Unlock()

	for _, other := range subs {
		if other == s {
			continue
		}
		other.send(frame)
		if rotate {
			other.send(protocol.EncodeEntityHeadLook(s.Player.EntityID, s.Player.Yaw))
		}
	}
}

// onChunkTransition runs when a move crosses a chunk boundary: stream in
// newly-visible chunks, unload no-longer-visible ones, reconcile tracker
// membership/subscriptions, then notify peers who gained or lost sight of
// this player.
func (s *Session) onChunkTransition(from, to world.Coord, rotate bool) {
	oldSquare := tracker.Square(from, s.Player.ViewDistance)
	newSquare := tracker.Square(to, s.Player.ViewDistance)
	removed := tracker.Difference(oldSquare, newSquare)
	added := tracker.Difference(newSquare, oldSquare)

	for _, c := range removed {
		s.send(protocol.EncodeUnloadChunk(c.X, c.Z))
	}
	for _, c := range added {
		s.sendChunk(c)
	}
	s.send(protocol.EncodeUpdateViewPosition(to.X, to.Z))

	s.global.Tracker.Lock()
	s.global.Tracker.Move(from, to, s)
	s.global.Tracker.Unsubscribe(removed, s)
	s.global.Tracker.Subscribe(added, s)
	fromSubs := s.global.Tracker.Subscribers(from)
	toSubs := s.global.Tracker.Subscribers(to)
	s.global.Tracker.Unlock()

	moveFrame := s.moveFrameFromLastSent(rotate)
	for _, other := range intersect(fromSubs, toSubs) {
		if other == s {
			continue
		}
		other.send(moveFrame)
		if rotate {
			other.send(protocol.EncodeEntityHeadLook(s.Player.EntityID, s.Player.Yaw))
		}
	}
	for _, other := range subsetMinus(fromSubs, toSubs) {
		if other == s {
			continue
		}
		other.send(protocol.EncodeDestroyEntities([]int32{s.Player.EntityID}))
	}
	for _, other := range subsetMinus(toSubs, fromSubs) {
		if other == s {
			continue
		}
		other.send(protocol.EncodeSpawnPlayer(s.Player.EntityID, s.Player.UUID, s.Player.X, s.Player.Y, s.Player.Z, s.Player.Yaw, s.Player.Pitch))
	}
}

func intersect(a, b []*Session) []*Session {
	inB := make(map[*Session]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	var out []*Session
	for _, s := range a {
		if _, ok := inB[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func subsetMinus(a, b []*Session) []*Session {
	inB := make(map[*Session]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	var out []*Session
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

package server

import "github.com/mgrech/vitamine/pkg/protocol"

const (
	actionStartSneaking = 0
	actionStopSneaking  = 1
	actionStartSprinting = 3
	actionStopSprinting  = 4
)

func (s *Session) handleEntityAction(payload []byte) {
	ea, err := protocol.DecodeEntityAction(payload)
	if err != nil {
		s.Disconnect("malformed entity action")
		return
	}
	if ea.ActionID < 0 || ea.ActionID > 8 {
		s.Disconnect("invalid entity action id")
		return
	}
	if ea.EntityID != s.Player.EntityID {
		s.Disconnect("entity action for foreign entity")
		return
	}

	switch ea.ActionID {
	case actionStartSneaking:
		if s.Player.Crouching {
			s.Disconnect("already sneaking")
			return
		}
		s.Player.Crouching = true
	case actionStopSneaking:
		if !s.Player.Crouching {
			s.Disconnect("already not sneaking")
			return
		}
		s.Player.Crouching = false
	case actionStartSprinting:
		if s.Player.Sprinting {
			s.Disconnect("already sprinting")
			return
		}
		s.Player.Sprinting = true
	case actionStopSprinting:
		if !s.Player.Sprinting {
			s.Disconnect("already not sprinting")
			return
		}
		s.Player.Sprinting = false
	default:
		// 2, 5, 6, 7, 8 are open questions left as no-ops per the design
		// notes; no disconnect, no state change.
		return
	}

	s.broadcastLocalMetadata()
}

func (s *Session) broadcastLocalMetadata() {
	var flags byte
	if s.Player.Crouching {
		flags |= protocol.MetaFlagCrouching
	}
	if s.Player.Sprinting {
		flags |= protocol.MetaFlagSprinting
	}
	pose := protocol.PoseStanding
	if s.Player.Crouching {
		pose = protocol.PoseSneaking
	}
	entries := protocol.NewMetadataWriter().PutByte(0, flags).PutPose(protocol.MetaIndexPose, pose).Bytes()
	frame := protocol.EncodeEntityMetadata(s.Player.EntityID, entries)

	s.global.Tracker.Lock()
	subs := s.global.Tracker.Subscribers(chunkOf(s.Player.X, s.Player.Z))
	s.global.Tracker.Unlock()
	for _, other := range subs {
		if other != s {
			other.send(frame)
		}
	}
}

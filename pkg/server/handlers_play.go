package server

import (
	"github.com/mgrech/vitamine/pkg/chat"
	"github.com/mgrech/vitamine/pkg/protocol"
	"github.com/mgrech/vitamine/pkg/tracker"
)

const maxChatMessageBytes = 256

func (s *Session) dispatchPlay(frame protocol.Frame) {
	switch frame.ID {
	case protocol.IDChatMessageServer:
		s.handleChatMessage(frame.Payload)
	case protocol.IDClientSettings:
		s.handlePlayClientSettings(frame.Payload)
	case protocol.IDCloseWindowServer:
		s.handleCloseWindow(frame.Payload)
	case protocol.IDInteractEntity:
		_, _ = protocol.DecodeInteractEntity(frame.Payload) // decoded, not acted upon
	case protocol.IDPlayerPosition:
		s.handlePlayerPosition(frame.Payload)
	case protocol.IDPlayerPositionRotation:
		s.handlePlayerPositionRotation(frame.Payload)
	case protocol.IDPlayerRotation:
		s.handlePlayerRotation(frame.Payload)
	case protocol.IDPlayerMovement:
		s.handlePlayerMovement(frame.Payload)
	case protocol.IDKeepAliveServer:
		_, _ = protocol.DecodeKeepAliveServerbound(frame.Payload) // parsed and discarded
	case protocol.IDPlayerAbilitiesServer:
		s.handlePlayerAbilities(frame.Payload)
	case protocol.IDPlayerDigging:
		s.handlePlayerDigging(frame.Payload)
	case protocol.IDEntityAction:
		s.handleEntityAction(frame.Payload)
	case protocol.IDHeldItemChangeServer:
		s.handleHeldItemChange(frame.Payload)
	case protocol.IDAnimationServer:
		s.handleAnimation(frame.Payload)
	case protocol.IDUseItem:
		s.handleUseItem(frame.Payload)
	default:
		s.log.WithField("id", frame.ID).Debug("unhandled packet in PLAY")
	}
}

func (s *Session) handleChatMessage(payload []byte) {
	cm, err := protocol.DecodeChatMessageServerbound(payload)
	if err != nil {
		s.Disconnect("malformed chat message")
		return
	}
	if len(cm.Message) > maxChatMessageBytes {
		s.Disconnect("chat message too long")
		return
	}

	text := chat.Text("<" + s.Player.Username + "> " + cm.Message).String()
	s.global.BroadcastJoined(func(other *Session) {
		other.send(protocol.EncodeChatServer(text, 0))
	})
}

func (s *Session) handlePlayClientSettings(payload []byte) {
	cs, err := protocol.DecodeClientSettings(payload)
	if err != nil {
		s.Disconnect("malformed client settings")
		return
	}

	oldVd := s.Player.ViewDistance
	s.adoptClientSettings(cs)
	newVd := s.Player.ViewDistance

	if oldVd == 0 || oldVd == newVd {
		return
	}

	coord := chunkOf(s.Player.X, s.Player.Z)
	oldSquare := tracker.Square(coord, oldVd)
	newSquare := tracker.Square(coord, newVd)

	s.global.Tracker.Lock()
	s.global.Tracker.UpdateViewDistance(coord, oldVd, newVd, s)
	s.global.Tracker.Unlock()

	for _, c := range tracker.Difference(oldSquare, newSquare) {
		s.send(protocol.EncodeUnloadChunk(c.X, c.Z))
	}
	for _, c := range tracker.Difference(newSquare, oldSquare) {
		s.sendChunk(c)
	}
}

func (s *Session) handleCloseWindow(payload []byte) {
	cw, err := protocol.DecodeCloseWindow(payload)
	if err != nil {
		s.Disconnect("malformed close window")
		return
	}
	if cw.WindowID == 0 {
		return
	}
	if cw.WindowID != s.Player.OpenWindow {
		s.Disconnect("unexpected window id")
		return
	}
	s.Player.OpenWindow = 0
}

func (s *Session) handlePlayerPosition(payload []byte) {
	pp, err := protocol.DecodePlayerPosition(payload)
	if err != nil {
		s.Disconnect("malformed player position")
		return
	}
	oldX, oldZ := s.Player.X, s.Player.Z
	s.Player.X, s.Player.Y, s.Player.Z = pp.X, pp.Y, pp.Z
	s.onMove(oldX, oldZ, false)
}

func (s *Session) handlePlayerPositionRotation(payload []byte) {
	pp, err := protocol.DecodePlayerPositionRotation(payload)
	if err != nil {
		s.Disconnect("malformed player position/rotation")
		return
	}
	oldX, oldZ := s.Player.X, s.Player.Z
	s.Player.X, s.Player.Y, s.Player.Z = pp.X, pp.Y, pp.Z
	s.Player.Yaw, s.Player.Pitch = pp.Yaw, pp.Pitch
	s.onMove(oldX, oldZ, true)
}

func (s *Session) handlePlayerRotation(payload []byte) {
	pr, err := protocol.DecodePlayerRotation(payload)
	if err != nil {
		s.Disconnect("malformed player rotation")
		return
	}
	s.Player.Yaw, s.Player.Pitch = pr.Yaw, pr.Pitch
	s.onMove(s.Player.X, s.Player.Z, true)
}

func (s *Session) handlePlayerMovement(payload []byte) {
	if _, err := protocol.DecodePlayerMovement(payload); err != nil {
		s.Disconnect("malformed player movement")
		return
	}
	s.onMove(s.Player.X, s.Player.Z, false)
}

func (s *Session) handlePlayerAbilities(payload []byte) {
	pa, err := protocol.DecodePlayerAbilitiesServerbound(payload)
	if err != nil {
		s.Disconnect("malformed player abilities")
		return
	}
	s.Player.AbilityFlags = pa.Flags
	s.Player.FlyingSpeed = pa.FlyingSpeed
	s.Player.WalkingSpeed = pa.WalkingSpeed
}

func (s *Session) handleHeldItemChange(payload []byte) {
	hc, err := protocol.DecodeHeldItemChangeServerbound(payload)
	if err != nil || hc.Slot < 0 || hc.Slot > 8 {
		s.Disconnect("invalid held item slot")
		return
	}
	s.Player.HeldSlot = hc.Slot
}

func (s *Session) handleAnimation(payload []byte) {
	a, err := protocol.DecodeAnimation(payload)
	if err != nil || (a.Hand != 0 && a.Hand != 1) {
		s.Disconnect("invalid animation hand")
		return
	}
	animationID := byte(0)
	if a.Hand == 1 {
		animationID = 3
	}
	s.broadcastLocalAnimation(animationID)
}

func (s *Session) handleUseItem(payload []byte) {
	u, err := protocol.DecodeUseItem(payload)
	if err != nil {
		s.Disconnect("malformed use item")
		return
	}
	if u.Hand != 0 && u.Hand != 1 {
		return // unknown hand values are ignored, not a disconnect
	}
}

func (s *Session) broadcastLocalAnimation(animationID byte) {
	frame := protocol.EncodeEntityAnimationClient(s.Player.EntityID, animationID)
	s.global.Tracker.Lock()
	subs := s.global.Tracker.Subscribers(chunkOf(s.Player.X, s.Player.Z))
	s.global.Tracker.Unlock()
	for _, other := range subs {
		if other != s {
			other.send(frame)
		}
	}
}

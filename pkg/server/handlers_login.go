package server

import (
	"github.com/mgrech/vitamine/pkg/chat"
	"github.com/mgrech/vitamine/pkg/protocol"
)

const protocolVersion = protocol.ProtocolVersion

func (s *Session) dispatchInitial(frame protocol.Frame) {
	if frame.ID != protocol.IDHandshake {
		s.Disconnect("unexpected packet in INITIAL")
		return
	}

	hs, err := protocol.DecodeHandshake(frame.Payload)
	if err != nil {
		s.Disconnect("malformed handshake")
		return
	}

	if hs.Version != protocolVersion {
		s.Disconnect("version mismatch")
		return
	}

	switch hs.NextState {
	case 1:
		s.setPhase(PhaseStatus)
	case 2:
		s.setPhase(PhaseLogin)
	default:
		s.Disconnect("invalid next state")
	}
}

func (s *Session) dispatchLogin(frame protocol.Frame) {
	if frame.ID != protocol.IDLoginStart {
		s.Disconnect("unexpected packet in LOGIN")
		return
	}

	ls, err := protocol.DecodeLoginStart(frame.Payload)
	if err != nil {
		s.Disconnect("malformed login start")
		return
	}

	s.Player.Username = ls.Name
	s.Player.UUID = UUIDForUsername(ls.Name)
	s.Player.EntityID = s.global.NextEntityID()

	s.send(protocol.EncodeLoginSuccess(s.Player.UUID, s.Player.Username))
	s.send(protocol.EncodeJoinGame(s.Player.EntityID, s.Player.GameMode, 20, "default"))
	s.send(protocol.EncodePluginMessageClient("minecraft:brand", protocol.BrandPayload(s.global.Settings.ServerBrand)))
	s.send(protocol.EncodePlayerAbilitiesClient(0x0f, 1.0, 1.0))
	s.send(protocol.EncodeHeldItemChangeClient(0))

	var alreadyJoined []protocol.PlayerInfoEntry
	s.global.BroadcastJoined(func(other *Session) {
		if other == s {
			return
		}
		alreadyJoined = append(alreadyJoined, protocol.PlayerInfoEntry{
			UUID:     other.Player.UUID,
			Name:     other.Player.Username,
			GameMode: int32(other.Player.GameMode),
		})
	})
	if len(alreadyJoined) > 0 {
		s.send(protocol.EncodePlayerInfo(protocol.PlayerInfoAddPlayer, alreadyJoined))
	}

	self := []protocol.PlayerInfoEntry{{
		UUID:     s.Player.UUID,
		Name:     s.Player.Username,
		GameMode: int32(s.Player.GameMode),
	}}
	s.global.BroadcastJoined(func(other *Session) {
		other.send(protocol.EncodePlayerInfo(protocol.PlayerInfoAddPlayer, self))
	})

	joinMsg := chat.Colored(s.Player.Username+" joined the game", "yellow").String()
	s.global.BroadcastJoined(func(other *Session) {
		other.send(protocol.EncodeChatServer(joinMsg, 0))
	})

	s.setPhase(PhasePlayInit)
}

package server

import (
	"github.com/mgrech/vitamine/pkg/codec"
	"github.com/mgrech/vitamine/pkg/protocol"
	"github.com/mgrech/vitamine/pkg/tracker"
)

const spawnX, spawnY, spawnZ = 0, 64, 0

func (s *Session) dispatchPlayInit(frame protocol.Frame) {
	switch frame.ID {
	case protocol.IDPlayerPositionRotation:
		// Client isn't ready to be moved yet; discard.
	case protocol.IDPluginMessageServer:
		s.handlePlayInitPluginMessage(frame.Payload)
	case protocol.IDClientSettings:
		s.handlePlayInitClientSettings(frame.Payload)
	case protocol.IDTeleportConfirm:
		s.handlePlayInitTeleportConfirm(frame.Payload)
	default:
		s.log.WithField("id", frame.ID).Debug("unhandled packet in PLAY_INIT")
	}
}

func (s *Session) handlePlayInitPluginMessage(payload []byte) {
	pm, err := protocol.DecodePluginMessageServerbound(payload)
	if err != nil {
		s.Disconnect("malformed plugin message")
		return
	}
	if pm.Channel == "minecraft:brand" {
		s.Player.ClientBrand = decodeBrand(pm.Data)
	}
}

func (s *Session) handlePlayInitClientSettings(payload []byte) {
	cs, err := protocol.DecodeClientSettings(payload)
	if err != nil {
		s.Disconnect("malformed client settings")
		return
	}
	s.adoptClientSettings(cs)

	s.Player.X, s.Player.Y, s.Player.Z = spawnX, spawnY, spawnZ
	s.Player.LastSentX, s.Player.LastSentY, s.Player.LastSentZ = spawnX, spawnY, spawnZ

	s.sendChunkSquare(chunkOf(spawnX, spawnZ), s.Player.ViewDistance)
	s.send(protocol.EncodeSpawnPosition(spawnX, spawnY, spawnZ))

	id := s.startTeleport()
	s.send(protocol.EncodePlayerPositionLook(spawnX, spawnY, spawnZ, s.Player.Yaw, s.Player.Pitch, id))
}

func (s *Session) adoptClientSettings(cs protocol.ClientSettings) {
	s.Player.ChatMode = cs.ChatMode
	s.Player.ChatColors = cs.ChatColors

	vd := int32(cs.ViewDistance)
	if vd < 2 {
		vd = 2
	}
	maxVd := int32(s.global.Settings.MaxViewDistance)
	if maxVd <= 0 {
		maxVd = 32
	}
	if vd > maxVd {
		vd = maxVd
	}
	s.Player.ViewDistance = vd
}

func (s *Session) handlePlayInitTeleportConfirm(payload []byte) {
	tc, err := protocol.DecodeTeleportConfirm(payload)
	if err != nil {
		s.Disconnect("malformed teleport confirm")
		return
	}
	if !s.confirmTeleport(tc.TeleportID) {
		s.Disconnect("unknown teleport id")
		return
	}

	coord := chunkOf(s.Player.X, s.Player.Z)
	visionSquare := tracker.Square(coord, s.Player.ViewDistance)

	s.global.Tracker.Lock()
	s.global.Tracker.Enter(coord, s.Player.ViewDistance, s)
	notify := s.global.Tracker.Subscribers(coord)
	var peers []*Session
	for _, c := range visionSquare {
		peers = append(peers, s.global.Tracker.Members(c)...)
	}
	s.global.Tracker.Unlock()

	spawnFrame := protocol.EncodeSpawnPlayer(s.Player.EntityID, s.Player.UUID, s.Player.X, s.Player.Y, s.Player.Z, s.Player.Yaw, s.Player.Pitch)
	for _, other := range notify {
		if other == s {
			continue
		}
		other.send(spawnFrame)
	}
	for _, peer := range peers {
		if peer == s {
			continue
		}
		s.send(protocol.EncodeSpawnPlayer(peer.Player.EntityID, peer.Player.UUID, peer.Player.X, peer.Player.Y, peer.Player.Z, peer.Player.Yaw, peer.Player.Pitch))
	}

	s.setPhase(PhasePlay)
}

// decodeBrand reads the brand plugin message's payload, itself a
// length-prefixed codec String.
func decodeBrand(data []byte) string {
	brand, err := codec.NewReader(data).String()
	if err != nil {
		return ""
	}
	return brand
}

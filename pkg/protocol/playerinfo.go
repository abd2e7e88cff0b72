package protocol

import (
	"github.com/mgrech/vitamine/pkg/buffer"
	"github.com/mgrech/vitamine/pkg/codec"
)

// PlayerInfoAction selects which per-entry body PlayerInfo carries. The
// server only ever builds single-action packets: every entry in one frame
// shares the same action.
type PlayerInfoAction int32

const (
	PlayerInfoAddPlayer PlayerInfoAction = iota
	PlayerInfoUpdateGameMode
	PlayerInfoUpdateLatency
	PlayerInfoUpdateDisplayName
	PlayerInfoRemovePlayer
)

// PlayerInfoEntry is one player's update within a PlayerInfo packet. Which
// fields are meaningful depends on the packet's Action.
type PlayerInfoEntry struct {
	UUID        [16]byte
	Name        string // ADD_PLAYER only
	GameMode    int32  // ADD_PLAYER, UPDATE_GAMEMODE
	Ping        int32  // ADD_PLAYER, UPDATE_LATENCY (ms)
	DisplayName string // ADD_PLAYER, UPDATE_DISPLAYNAME (empty = no display name tag)
}

// EncodePlayerInfo builds a PlayerInfo packet carrying entries, all tagged
// with the same action.
func EncodePlayerInfo(action PlayerInfoAction, entries []PlayerInfoEntry) []byte {
	return build(IDPlayerInfo, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, int32(action))
		codec.WriteVarInt(b, int32(len(entries)))
		for _, e := range entries {
			codec.WriteUUID(b, e.UUID)
			switch action {
			case PlayerInfoAddPlayer:
				codec.WriteString(b, e.Name)
				codec.WriteVarInt(b, 0) // no properties (skin, etc)
				codec.WriteVarInt(b, e.GameMode)
				codec.WriteVarInt(b, e.Ping)
				hasDisplay := e.DisplayName != ""
				codec.WriteBool(b, hasDisplay)
				if hasDisplay {
					codec.WriteString(b, e.DisplayName)
				}
			case PlayerInfoUpdateGameMode:
				codec.WriteVarInt(b, e.GameMode)
			case PlayerInfoUpdateLatency:
				codec.WriteVarInt(b, e.Ping)
			case PlayerInfoUpdateDisplayName:
				hasDisplay := e.DisplayName != ""
				codec.WriteBool(b, hasDisplay)
				if hasDisplay {
					codec.WriteString(b, e.DisplayName)
				}
			case PlayerInfoRemovePlayer:
				// UUID alone.
			}
		}
	})
}

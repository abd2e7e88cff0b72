package protocol

import (
	"github.com/mgrech/vitamine/pkg/buffer"
	"github.com/mgrech/vitamine/pkg/codec"
)

// Each Encode* function builds one server->client packet and returns the
// complete framed wire bytes (length+id+payload), ready for Connection.Send.

func build(id int32, fill func(b *buffer.Buffer)) []byte {
	b := buffer.New()
	fill(b)
	return EncodeFrame(id, b.Bytes())
}

// EncodeLoginSuccess completes the LOGIN phase.
func EncodeLoginSuccess(uuid [16]byte, username string) []byte {
	return build(IDLoginSuccess, func(b *buffer.Buffer) {
		codec.WriteUUID(b, uuid)
		codec.WriteString(b, username)
	})
}

// EncodeDisconnectLogin sends a JSON chat reason and closes during LOGIN or
// earlier phases.
func EncodeDisconnectLogin(reasonJSON string) []byte {
	return build(IDDisconnectLogin, func(b *buffer.Buffer) {
		codec.WriteString(b, reasonJSON)
	})
}

// EncodeDisconnect sends a JSON chat reason and closes during PLAY.
func EncodeDisconnect(reasonJSON string) []byte {
	return build(IDDisconnect, func(b *buffer.Buffer) {
		codec.WriteString(b, reasonJSON)
	})
}

// EncodeJoinGame completes entry into PLAY_INIT.
func EncodeJoinGame(entityID int32, gameMode byte, maxPlayers byte, levelType string) []byte {
	return build(IDJoinGame, func(b *buffer.Buffer) {
		codec.WriteInt32(b, entityID)
		codec.WriteByteValue(b, gameMode)
		codec.WriteInt32(b, 0) // dimension: overworld
		codec.WriteByteValue(b, 0) // difficulty: peaceful
		codec.WriteByteValue(b, maxPlayers)
		codec.WriteString(b, levelType)
		codec.WriteBool(b, false) // reduced debug info
	})
}

// EncodePluginMessageClient announces a channel payload, used for the
// "minecraft:brand" handshake.
func EncodePluginMessageClient(channel string, data []byte) []byte {
	return build(IDPluginMessageClient, func(b *buffer.Buffer) {
		codec.WriteString(b, channel)
		b.Append(data)
	})
}

// BrandPayload length-prefixes brand as a codec String, the wire shape a
// "minecraft:brand" PluginMessage carries as its data.
func BrandPayload(brand string) []byte {
	b := buffer.New()
	codec.WriteString(b, brand)
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out
}

// EncodePlayerAbilitiesClient reports ability flags and speeds.
func EncodePlayerAbilitiesClient(flags byte, flyingSpeed, walkingSpeed float32) []byte {
	return build(IDPlayerAbilitiesClient, func(b *buffer.Buffer) {
		codec.WriteByteValue(b, flags)
		codec.WriteFloat32(b, flyingSpeed)
		codec.WriteFloat32(b, walkingSpeed)
	})
}

// EncodeHeldItemChangeClient sets the client's active hotbar slot.
func EncodeHeldItemChangeClient(slot byte) []byte {
	return build(IDHeldItemChangeClient, func(b *buffer.Buffer) {
		codec.WriteByteValue(b, slot)
	})
}

// EncodeSpawnPosition sets the client's compass/respawn target.
func EncodeSpawnPosition(x, y, z int32) []byte {
	return build(IDSpawnPosition, func(b *buffer.Buffer) {
		codec.WritePosition(b, x, y, z)
	})
}

// EncodePlayerPositionLook forces the client to a position, carrying a
// server-issued teleport id the client must echo via TeleportConfirm.
func EncodePlayerPositionLook(x, y, z float64, yaw, pitch float32, teleportID int32) []byte {
	return build(IDPlayerPositionLook, func(b *buffer.Buffer) {
		codec.WriteFloat64(b, x)
		codec.WriteFloat64(b, y)
		codec.WriteFloat64(b, z)
		codec.WriteFloat32(b, yaw)
		codec.WriteFloat32(b, pitch)
		codec.WriteByteValue(b, 0) // flags: all absolute
		codec.WriteVarInt(b, teleportID)
	})
}

// EncodeChunkData composes a full-chunk ChunkData packet from its
// pre-serialized heightmap NBT and section payload (see pkg/world for how
// those are built).
func EncodeChunkData(chunkX, chunkZ int32, primaryBitmask int32, heightmapNBT []byte, sectionsAndBiomes []byte) []byte {
	return build(IDChunkData, func(b *buffer.Buffer) {
		codec.WriteInt32(b, chunkX)
		codec.WriteInt32(b, chunkZ)
		codec.WriteBool(b, true) // full chunk
		codec.WriteVarInt(b, primaryBitmask)
		b.Append(heightmapNBT)
		codec.WriteVarInt(b, int32(len(sectionsAndBiomes)))
		b.Append(sectionsAndBiomes)
		codec.WriteVarInt(b, 0) // no block entities
	})
}

// EncodeUnloadChunk tells the client to discard a chunk column.
func EncodeUnloadChunk(chunkX, chunkZ int32) []byte {
	return build(IDUnloadChunk, func(b *buffer.Buffer) {
		codec.WriteInt32(b, chunkX)
		codec.WriteInt32(b, chunkZ)
	})
}

// EncodeUpdateViewPosition informs the client which chunk it is centered in,
// for client-side chunk-cache eviction.
func EncodeUpdateViewPosition(chunkX, chunkZ int32) []byte {
	return build(IDUpdateViewPosition, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, chunkX)
		codec.WriteVarInt(b, chunkZ)
	})
}

// EncodeSpawnPlayer introduces another player's entity to this client.
func EncodeSpawnPlayer(entityID int32, uuid [16]byte, x, y, z float64, yaw, pitch float32) []byte {
	return build(IDSpawnPlayer, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		codec.WriteUUID(b, uuid)
		codec.WriteFloat64(b, x)
		codec.WriteFloat64(b, y)
		codec.WriteFloat64(b, z)
		codec.WriteByteValue(b, angleByte(yaw))
		codec.WriteByteValue(b, angleByte(pitch))
	})
}

// EncodeDestroyEntities removes one or more entities from the client's view.
func EncodeDestroyEntities(entityIDs []int32) []byte {
	return build(IDDestroyEntities, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, int32(len(entityIDs)))
		for _, id := range entityIDs {
			codec.WriteVarInt(b, id)
		}
	})
}

// deltaToFixed converts a position delta into the 1/4096-block fixed-point
// units EntityMove-family packets use.
func deltaToFixed(delta float64) int16 {
	return int16(delta * 4096)
}

// FitsMoveDelta reports whether delta (along one axis) fits in the 16-bit
// signed fixed-point range EntityMove packets use; movement that doesn't
// must be sent as EntityTeleport instead.
func FitsMoveDelta(delta float64) bool {
	scaled := delta * 4096
	return scaled >= -32768 && scaled <= 32767
}

// EncodeEntityMove reports a relative position delta for an entity whose
// look is unchanged.
func EncodeEntityMove(entityID int32, dx, dy, dz float64, onGround bool) []byte {
	return build(IDEntityMove, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		writeInt16(b, deltaToFixed(dx))
		writeInt16(b, deltaToFixed(dy))
		writeInt16(b, deltaToFixed(dz))
		codec.WriteBool(b, onGround)
	})
}

// EncodeEntityMoveRotation reports a relative position delta plus a new
// look.
func EncodeEntityMoveRotation(entityID int32, dx, dy, dz float64, yaw, pitch float32, onGround bool) []byte {
	return build(IDEntityMoveRotation, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		writeInt16(b, deltaToFixed(dx))
		writeInt16(b, deltaToFixed(dy))
		writeInt16(b, deltaToFixed(dz))
		codec.WriteByteValue(b, angleByte(yaw))
		codec.WriteByteValue(b, angleByte(pitch))
		codec.WriteBool(b, onGround)
	})
}

// EncodeEntityTeleport reports an absolute position, used when a relative
// move would overflow the fixed-point delta range.
func EncodeEntityTeleport(entityID int32, x, y, z float64, yaw, pitch float32, onGround bool) []byte {
	return build(IDEntityTeleport, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		codec.WriteFloat64(b, x)
		codec.WriteFloat64(b, y)
		codec.WriteFloat64(b, z)
		codec.WriteByteValue(b, angleByte(yaw))
		codec.WriteByteValue(b, angleByte(pitch))
		codec.WriteBool(b, onGround)
	})
}

// EncodeEntityRotation reports a look change with no position change.
func EncodeEntityRotation(entityID int32, yaw, pitch float32, onGround bool) []byte {
	return build(IDEntityRotation, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		codec.WriteByteValue(b, angleByte(yaw))
		codec.WriteByteValue(b, angleByte(pitch))
		codec.WriteBool(b, onGround)
	})
}

// EncodeEntityHeadLook reports a head-yaw-only update, sent alongside
// EntityMove/EntityMoveRotation whenever the player rotated.
func EncodeEntityHeadLook(entityID int32, headYaw float32) []byte {
	return build(IDEntityHeadLook, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		codec.WriteByteValue(b, angleByte(headYaw))
	})
}

// EncodeEntityAnimationClient broadcasts a swing/hurt/etc animation.
func EncodeEntityAnimationClient(entityID int32, animationID byte) []byte {
	return build(IDEntityAnimationClient, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		codec.WriteByteValue(b, animationID)
	})
}

// EncodeBlockChange reports a single block update.
func EncodeBlockChange(x, y, z int32, blockStateID int32) []byte {
	return build(IDBlockChange, func(b *buffer.Buffer) {
		codec.WritePosition(b, x, y, z)
		codec.WriteVarInt(b, blockStateID)
	})
}

// EncodeChatServer delivers a JSON chat message at the given position
// (0=chat box, 1=system, 2=above hotbar).
func EncodeChatServer(jsonMessage string, position byte) []byte {
	return build(IDChatServer, func(b *buffer.Buffer) {
		codec.WriteString(b, jsonMessage)
		codec.WriteByteValue(b, position)
	})
}

// EncodeKeepAliveClient pings the client with an id it must echo.
func EncodeKeepAliveClient(id int64) []byte {
	return build(IDKeepAliveClient, func(b *buffer.Buffer) {
		codec.WriteInt64(b, id)
	})
}

func writeInt16(b *buffer.Buffer, v int16) {
	var buf [2]byte
	buf[0] = byte(v >> 8)
	buf[1] = byte(v)
	b.Append(buf[:])
}

// angleByte packs a yaw/pitch degree value into the single-byte
// 256-units-per-turn angle encoding used by entity look packets.
func angleByte(degrees float32) byte {
	return byte(int32(degrees*256/360) & 0xFF)
}

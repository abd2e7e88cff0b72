package protocol

// Packet ids for wire protocol version 498, grouped by (phase, direction).
// Names are canonical; values are the wire constants for this protocol
// version.
const (
	// INITIAL, client->server
	IDHandshake int32 = 0x00

	// LOGIN, client->server
	IDLoginStart int32 = 0x00

	// LOGIN, server->client
	IDLoginSuccess     int32 = 0x02
	IDDisconnectLogin  int32 = 0x00
)

// PLAY, client->server
const (
	IDTeleportConfirm     int32 = 0x00
	IDChatMessageServer   int32 = 0x02
	IDClientSettings      int32 = 0x04
	IDCloseWindowServer   int32 = 0x09
	IDPluginMessageServer int32 = 0x0B
	IDInteractEntity      int32 = 0x0E
	IDKeepAliveServer     int32 = 0x0F
	IDPlayerPosition      int32 = 0x11
	IDPlayerPositionRotation int32 = 0x12
	IDPlayerRotation      int32 = 0x13
	IDPlayerMovement      int32 = 0x14
	IDPlayerAbilitiesServer int32 = 0x19
	IDPlayerDigging       int32 = 0x1A
	IDEntityAction        int32 = 0x1B
	IDHeldItemChangeServer int32 = 0x25
	IDAnimationServer     int32 = 0x2C
	IDUseItem             int32 = 0x2F
)

// PLAY, server->client
const (
	IDJoinGame             int32 = 0x25
	IDPluginMessageClient  int32 = 0x18
	IDPlayerAbilitiesClient int32 = 0x2E
	IDHeldItemChangeClient int32 = 0x3F
	IDSpawnPosition        int32 = 0x4D
	IDPlayerPositionLook   int32 = 0x32
	IDChunkData            int32 = 0x21
	IDUnloadChunk          int32 = 0x1D
	IDUpdateViewPosition   int32 = 0x40
	IDSpawnPlayer          int32 = 0x05
	IDDestroyEntities      int32 = 0x35
	IDEntityMove           int32 = 0x27
	IDEntityMoveRotation   int32 = 0x28
	IDEntityTeleport       int32 = 0x56
	IDEntityRotation       int32 = 0x29
	IDEntityHeadLook       int32 = 0x3A
	IDEntityMetadata       int32 = 0x3F
	IDEntityAnimationClient int32 = 0x06
	IDBlockChange          int32 = 0x0B
	IDChatServer           int32 = 0x0E
	IDKeepAliveClient      int32 = 0x20
	IDPlayerInfo           int32 = 0x33
	IDDisconnect           int32 = 0x1B
)

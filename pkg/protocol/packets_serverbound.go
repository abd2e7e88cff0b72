package protocol

import "github.com/mgrech/vitamine/pkg/codec"

// Handshake is the only packet accepted in the INITIAL phase.
type Handshake struct {
	Version   int32
	Host      string
	Port      uint16
	NextState int32
}

func DecodeHandshake(payload []byte) (Handshake, error) {
	r := codec.NewReader(payload)
	var h Handshake
	var err error
	if h.Version, err = r.VarInt(); err != nil {
		return h, err
	}
	if h.Host, err = r.String(); err != nil {
		return h, err
	}
	if h.Port, err = r.Uint16(); err != nil {
		return h, err
	}
	if h.NextState, err = r.VarInt(); err != nil {
		return h, err
	}
	return h, nil
}

// LoginStart is the only packet accepted in the LOGIN phase.
type LoginStart struct {
	Name string
}

func DecodeLoginStart(payload []byte) (LoginStart, error) {
	name, err := codec.NewReader(payload).String()
	return LoginStart{Name: name}, err
}

// TeleportConfirm echoes a teleport id previously issued by the server.
type TeleportConfirm struct {
	TeleportID int32
}

func DecodeTeleportConfirm(payload []byte) (TeleportConfirm, error) {
	id, err := codec.NewReader(payload).VarInt()
	return TeleportConfirm{TeleportID: id}, err
}

// PluginMessageServerbound carries a channel and opaque payload bytes.
type PluginMessageServerbound struct {
	Channel string
	Data    []byte
}

func DecodePluginMessageServerbound(payload []byte) (PluginMessageServerbound, error) {
	r := codec.NewReader(payload)
	channel, err := r.String()
	if err != nil {
		return PluginMessageServerbound{}, err
	}
	return PluginMessageServerbound{Channel: channel, Data: r.Remaining()}, nil
}

// ClientSettings carries the client's locale/view-distance/chat preferences.
// Only the fields the server acts on are decoded; the rest of the payload
// (skin parts, main hand, etc) is left unread.
type ClientSettings struct {
	Locale      string
	ViewDistance int8
	ChatMode    int32
	ChatColors  bool
}

func DecodeClientSettings(payload []byte) (ClientSettings, error) {
	r := codec.NewReader(payload)
	var cs ClientSettings
	var err error
	if cs.Locale, err = r.String(); err != nil {
		return cs, err
	}
	vd, err := r.Byte()
	if err != nil {
		return cs, err
	}
	cs.ViewDistance = int8(vd)
	if cs.ChatMode, err = r.VarInt(); err != nil {
		return cs, err
	}
	if cs.ChatColors, err = r.Bool(); err != nil {
		return cs, err
	}
	return cs, nil
}

// KeepAliveServerbound echoes the id the server sent; the server accounts
// for liveness on send, not on this reply, so the id is parsed only to
// advance the cursor.
type KeepAliveServerbound struct {
	ID int64
}

func DecodeKeepAliveServerbound(payload []byte) (KeepAliveServerbound, error) {
	id, err := codec.NewReader(payload).Int64()
	return KeepAliveServerbound{ID: id}, err
}

// PlayerPosition updates position only.
type PlayerPosition struct {
	X, Y, Z  float64
	OnGround bool
}

func DecodePlayerPosition(payload []byte) (PlayerPosition, error) {
	r := codec.NewReader(payload)
	var p PlayerPosition
	var err error
	if p.X, err = r.Float64(); err != nil {
		return p, err
	}
	if p.Y, err = r.Float64(); err != nil {
		return p, err
	}
	if p.Z, err = r.Float64(); err != nil {
		return p, err
	}
	if p.OnGround, err = r.Bool(); err != nil {
		return p, err
	}
	return p, nil
}

// PlayerPositionRotation updates position and look.
type PlayerPositionRotation struct {
	X, Y, Z      float64
	Yaw, Pitch   float32
	OnGround     bool
}

func DecodePlayerPositionRotation(payload []byte) (PlayerPositionRotation, error) {
	r := codec.NewReader(payload)
	var p PlayerPositionRotation
	var err error
	if p.X, err = r.Float64(); err != nil {
		return p, err
	}
	if p.Y, err = r.Float64(); err != nil {
		return p, err
	}
	if p.Z, err = r.Float64(); err != nil {
		return p, err
	}
	if p.Yaw, err = r.Float32(); err != nil {
		return p, err
	}
	if p.Pitch, err = r.Float32(); err != nil {
		return p, err
	}
	if p.OnGround, err = r.Bool(); err != nil {
		return p, err
	}
	return p, nil
}

// PlayerRotation updates look only.
type PlayerRotation struct {
	Yaw, Pitch float32
	OnGround   bool
}

func DecodePlayerRotation(payload []byte) (PlayerRotation, error) {
	r := codec.NewReader(payload)
	var p PlayerRotation
	var err error
	if p.Yaw, err = r.Float32(); err != nil {
		return p, err
	}
	if p.Pitch, err = r.Float32(); err != nil {
		return p, err
	}
	if p.OnGround, err = r.Bool(); err != nil {
		return p, err
	}
	return p, nil
}

// PlayerMovement updates ground state only.
type PlayerMovement struct {
	OnGround bool
}

func DecodePlayerMovement(payload []byte) (PlayerMovement, error) {
	onGround, err := codec.NewReader(payload).Bool()
	return PlayerMovement{OnGround: onGround}, err
}

// ChatMessageServerbound is a raw chat line from the client.
type ChatMessageServerbound struct {
	Message string
}

func DecodeChatMessageServerbound(payload []byte) (ChatMessageServerbound, error) {
	msg, err := codec.NewReader(payload).String()
	return ChatMessageServerbound{Message: msg}, err
}

// CloseWindow carries the window id the client is closing.
type CloseWindow struct {
	WindowID byte
}

func DecodeCloseWindow(payload []byte) (CloseWindow, error) {
	id, err := codec.NewReader(payload).Byte()
	return CloseWindow{WindowID: id}, err
}

// InteractEntity is decoded but not acted upon by the server.
type InteractEntity struct {
	EntityID int32
	Type     int32
}

func DecodeInteractEntity(payload []byte) (InteractEntity, error) {
	r := codec.NewReader(payload)
	var ie InteractEntity
	var err error
	if ie.EntityID, err = r.VarInt(); err != nil {
		return ie, err
	}
	if ie.Type, err = r.VarInt(); err != nil {
		return ie, err
	}
	return ie, nil
}

// PlayerAbilitiesServerbound reports the client's ability toggles.
type PlayerAbilitiesServerbound struct {
	Flags        byte
	FlyingSpeed  float32
	WalkingSpeed float32
}

func DecodePlayerAbilitiesServerbound(payload []byte) (PlayerAbilitiesServerbound, error) {
	r := codec.NewReader(payload)
	var pa PlayerAbilitiesServerbound
	var err error
	if pa.Flags, err = r.Byte(); err != nil {
		return pa, err
	}
	if pa.FlyingSpeed, err = r.Float32(); err != nil {
		return pa, err
	}
	if pa.WalkingSpeed, err = r.Float32(); err != nil {
		return pa, err
	}
	return pa, nil
}

// PlayerDigging reports a digging status/location/face.
type PlayerDigging struct {
	Status         int32
	X, Y, Z        int32
	Face           byte
}

func DecodePlayerDigging(payload []byte) (PlayerDigging, error) {
	r := codec.NewReader(payload)
	var pd PlayerDigging
	var err error
	if pd.Status, err = r.VarInt(); err != nil {
		return pd, err
	}
	if pd.X, pd.Y, pd.Z, err = r.Position(); err != nil {
		return pd, err
	}
	if pd.Face, err = r.Byte(); err != nil {
		return pd, err
	}
	return pd, nil
}

// EntityAction reports a crouch/sprint/etc toggle on the sender's own
// entity.
type EntityAction struct {
	EntityID      int32
	ActionID      int32
	JumpBoost     int32
}

func DecodeEntityAction(payload []byte) (EntityAction, error) {
	r := codec.NewReader(payload)
	var ea EntityAction
	var err error
	if ea.EntityID, err = r.VarInt(); err != nil {
		return ea, err
	}
	if ea.ActionID, err = r.VarInt(); err != nil {
		return ea, err
	}
	if ea.JumpBoost, err = r.VarInt(); err != nil {
		return ea, err
	}
	return ea, nil
}

// HeldItemChangeServerbound selects the player's active hotbar slot.
type HeldItemChangeServerbound struct {
	Slot int16
}

func DecodeHeldItemChangeServerbound(payload []byte) (HeldItemChangeServerbound, error) {
	r := codec.NewReader(payload)
	b, err := r.Uint16()
	return HeldItemChangeServerbound{Slot: int16(b)}, err
}

// Animation reports a hand swing.
type Animation struct {
	Hand int32
}

func DecodeAnimation(payload []byte) (Animation, error) {
	hand, err := codec.NewReader(payload).VarInt()
	return Animation{Hand: hand}, err
}

// UseItem reports the client using the item in the given hand.
type UseItem struct {
	Hand int32
}

func DecodeUseItem(payload []byte) (UseItem, error) {
	hand, err := codec.NewReader(payload).VarInt()
	return UseItem{Hand: hand}, err
}

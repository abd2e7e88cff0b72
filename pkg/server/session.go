package server

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/mgrech/vitamine/pkg/chat"
	"github.com/mgrech/vitamine/pkg/logging"
	"github.com/mgrech/vitamine/pkg/protocol"
)

// Phase is one of the five session states. Read from both onPacket and
// onTick, so Session stores it as an atomic int32.
type Phase int32

const (
	PhaseInitial Phase = iota
	PhaseStatus
	PhaseLogin
	PhasePlayInit
	PhasePlay
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "INITIAL"
	case PhaseStatus:
		return "STATUS"
	case PhaseLogin:
		return "LOGIN"
	case PhasePlayInit:
		return "PLAY_INIT"
	case PhasePlay:
		return "PLAY"
	default:
		return "UNKNOWN"
	}
}

// PlayerState is everything about the connected player beyond the
// connection bookkeeping Session itself tracks. Written only from
// onPacket/dispose - no atomics needed here.
type PlayerState struct {
	EntityID int32
	UUID     [16]byte
	Username string

	ClientBrand string

	GameMode byte

	ViewDistance int32
	ChatMode     int32
	ChatColors   bool

	X, Y, Z    float64
	Yaw, Pitch float32

	// LastSentX/Y/Z is the position last broadcast to trackers, used to
	// compute the delta EntityMove-family packets carry.
	LastSentX, LastSentY, LastSentZ float64

	HeldSlot     int16
	OpenWindow   byte
	AbilityFlags byte
	FlyingSpeed  float32
	WalkingSpeed float32

	Crouching bool
	Sprinting bool

	OutstandingTeleportIDs map[int32]struct{}
	NextTeleportID         int32
}

// Session is one connection's state machine: phase, PlayerState, liveness
// timestamps, and the packet reader feeding onFrame.
type Session struct {
	global *GlobalState
	conn   Connection
	log    *logrus.Entry

	phase               atomic.Int32
	lastPacketTimeMs    atomic.Int64
	lastKeepAliveSentMs atomic.Int64
	closed              atomic.Bool

	reader *protocol.PacketReader

	Player PlayerState
}

// NewSession wires a fresh session to conn, ready to receive byte spans via
// Feed, and registers it in GlobalState's session table.
func NewSession(global *GlobalState, conn Connection) *Session {
	s := &Session{
		global: global,
		conn:   conn,
		log:    logging.For("session"),
		Player: PlayerState{
			OutstandingTeleportIDs: make(map[int32]struct{}),
		},
	}
	s.phase.Store(int32(PhaseInitial))
	now := global.Clock.NowMillis()
	s.lastPacketTimeMs.Store(now)
	s.lastKeepAliveSentMs.Store(now)
	s.reader = protocol.NewPacketReader(s.onFrame, s.onFramingError)
	global.addSession(s)
	return s
}

// Phase returns the session's current phase.
func (s *Session) Phase() Phase {
	return Phase(s.phase.Load())
}

func (s *Session) setPhase(p Phase) {
	s.phase.Store(int32(p))
}

// Feed hands a byte span read from the connection to the packet reader.
// Must be called with per-connection ordering (one call at a time, reads
// delivered in order) - the transport's responsibility, not this method's.
func (s *Session) Feed(span []byte) {
	s.reader.Feed(span)
}

func (s *Session) onFrame(frame protocol.Frame) {
	s.lastPacketTimeMs.Store(s.global.Clock.NowMillis())

	switch s.Phase() {
	case PhaseInitial:
		s.dispatchInitial(frame)
	case PhaseStatus:
		s.Disconnect("unexpected packet in STATUS")
	case PhaseLogin:
		s.dispatchLogin(frame)
	case PhasePlayInit:
		s.dispatchPlayInit(frame)
	case PhasePlay:
		s.dispatchPlay(frame)
	}
}

func (s *Session) onFramingError(err error) {
	s.log.WithError(err).Warn("fatal framing error")
	s.teardown()
}

// send writes a pre-framed outbound packet. Write errors and close races
// are swallowed here; the connection is torn down instead of propagating
// the error to the caller.
func (s *Session) send(frame []byte) {
	if err := s.conn.Send(frame); err != nil {
		s.log.WithError(err).Debug("send failed, tearing down")
		s.teardown()
	}
}

// Disconnect sends a JSON-wrapped reason (Disconnect in PLAY,
// DisconnectLogin otherwise) and tears the session down.
func (s *Session) Disconnect(reason string) {
	payload := disconnectReasonJSON(reason)
	if s.Phase() == PhasePlay {
		s.send(protocol.EncodeDisconnect(payload))
	} else {
		s.send(protocol.EncodeDisconnectLogin(payload))
	}
	s.teardown()
}

// teardown removes the session from every process-wide index exactly
// once - disconnecting a session is idempotent, so repeated calls
// (onFramingError after Disconnect, a send failure during teardown) are
// harmless.
func (s *Session) teardown() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	if s.Phase() == PhasePlay {
		coord := chunkOf(s.Player.X, s.Player.Z)
		s.global.Tracker.Lock()
		s.global.Tracker.Leave(coord, s.Player.ViewDistance, s)
		s.global.Tracker.Unlock()

		ids := []int32{s.Player.EntityID}
		s.global.BroadcastGlobal(func(other *Session) {
			if other == s {
				return
			}
			other.send(protocol.EncodeDestroyEntities(ids))
		})

		leaveMsg := chat.Colored(s.Player.Username+" left the game", "yellow").String()
		s.global.BroadcastJoined(func(other *Session) {
			if other == s {
				return
			}
			other.send(protocol.EncodeChatServer(leaveMsg, 0))
		})
	}

	s.global.removeSession(s)
	_ = s.conn.Close()
}

// startTeleport allocates a fresh teleport id, records it as outstanding,
// and returns it.
func (s *Session) startTeleport() int32 {
	id := s.Player.NextTeleportID
	s.Player.NextTeleportID++
	s.Player.OutstandingTeleportIDs[id] = struct{}{}
	return id
}

// confirmTeleport consumes id from the outstanding set, reporting whether
// it was present.
func (s *Session) confirmTeleport(id int32) bool {
	if _, ok := s.Player.OutstandingTeleportIDs[id]; !ok {
		return false
	}
	delete(s.Player.OutstandingTeleportIDs, id)
	return true
}

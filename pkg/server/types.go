// Package server implements the per-connection session state machine and
// the process-wide state it mutates: login, the PLAY_INIT/PLAY packet
// handlers, chunk streaming, movement and broadcast. GlobalState and
// Session stay in one package deliberately - splitting them would force an
// import cycle, since GlobalState holds session handles and Session calls
// back into GlobalState for the tracker, chunk store, and broadcast.
package server

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mgrech/vitamine/pkg/config"
	"github.com/mgrech/vitamine/pkg/logging"
	"github.com/mgrech/vitamine/pkg/tick"
	"github.com/mgrech/vitamine/pkg/tracker"
	"github.com/mgrech/vitamine/pkg/world"
)

// Connection is the minimal contract Session needs from the transport: an
// ordered send and a close. The TCP implementation (tcpConn), the accept
// loop (ListenAndServe) and the per-connection read loop (Serve) live in
// tcpconn.go and listen.go.
type Connection interface {
	Send(frame []byte) error
	Close() error
}

// GlobalState owns every process-wide piece of mutable state: server
// settings, the clock, the entity-id and uuid generators, the
// chunk store, the player tracker, and the session set.
type GlobalState struct {
	Settings config.ServerSettings
	Clock    tick.Clock

	nextEntityID int32

	World   *world.Store
	Tracker *tracker.Tracker[*Session]

	sessionsMu sync.Mutex
	sessions   map[*Session]struct{}

	log *logrus.Entry
}

// NewGlobalState constructs the process-wide state, ready to accept
// sessions.
func NewGlobalState(settings config.ServerSettings, clock tick.Clock) *GlobalState {
	return &GlobalState{
		Settings: settings,
		Clock:    clock,
		World:    world.NewStore(),
		Tracker:  tracker.New[*Session](),
		sessions: make(map[*Session]struct{}),
		log:      logging.For("global"),
	}
}

// NextEntityID allocates the next monotonically-increasing entity id.
func (g *GlobalState) NextEntityID() int32 {
	return atomic.AddInt32(&g.nextEntityID, 1) - 1
}

// UUIDForUsername derives a deterministic name-based uuid from username,
// using the all-zero uuid as namespace - the offline-mode identity scheme.
func UUIDForUsername(username string) [16]byte {
	return uuid.NewMD5(uuid.Nil, []byte(username))
}

// addSession registers a session in the session table under the sessions
// lock.
func (g *GlobalState) addSession(s *Session) {
	g.sessionsMu.Lock()
	defer g.sessionsMu.Unlock()
	g.sessions[s] = struct{}{}
}

// removeSession unregisters a session; idempotent.
func (g *GlobalState) removeSession(s *Session) {
	g.sessionsMu.Lock()
	defer g.sessionsMu.Unlock()
	delete(g.sessions, s)
}

// Sessions returns a snapshot of every active session, safe to range over
// outside the sessions lock.
func (g *GlobalState) Sessions() []*Session {
	g.sessionsMu.Lock()
	defer g.sessionsMu.Unlock()
	out := make([]*Session, 0, len(g.sessions))
	for s := range g.sessions {
		out = append(out, s)
	}
	return out
}

// BroadcastGlobal calls fn for every active session under the sessions
// lock, so every listed session observes fn atomically with respect to joins/leaves.
func (g *GlobalState) BroadcastGlobal(fn func(*Session)) {
	g.sessionsMu.Lock()
	defer g.sessionsMu.Unlock()
	for s := range g.sessions {
		fn(s)
	}
}

// BroadcastJoined is BroadcastGlobal restricted to sessions that have
// completed LOGIN (have a resolved username) - the "players" list the
// LOGIN handler broadcasts PlayerInfo to, as opposed to every raw
// accepted connection the tick loop still needs to time out.
func (g *GlobalState) BroadcastJoined(fn func(*Session)) {
	g.sessionsMu.Lock()
	defer g.sessionsMu.Unlock()
	for s := range g.sessions {
		if s.Player.Username != "" {
			fn(s)
		}
	}
}

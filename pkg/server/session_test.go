package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgrech/vitamine/pkg/config"
	"github.com/mgrech/vitamine/pkg/protocol"
	"github.com/mgrech/vitamine/pkg/tick"
)

// fakeConn collects every frame Send receives, for assertions, and never
// errors - good enough for driving the state machine in tests.
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (c *fakeConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]byte, len(frame))
	copy(cp, frame)
	c.frames = append(c.frames, cp)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) ids(t *testing.T) []int32 {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int32, len(c.frames))
	for i, f := range c.frames {
		frame, _, result, err := protocol.DecodeFrame(f)
		require.NoError(t, err)
		require.Equal(t, protocol.DecodeOK, result)
		out[i] = frame.ID
	}
	return out
}

func newTestGlobalState() *GlobalState {
	settings := config.ServerSettings{ServerBrand: "test", MaxViewDistance: 32}
	return NewGlobalState(settings, tick.NewFakeClock(0))
}

func appendVarIntBytes(dst []byte, v int32) []byte {
	u := uint32(v)
	for {
		if u&^uint32(0x7F) == 0 {
			dst = append(dst, byte(u))
			return dst
		}
		dst = append(dst, byte(u&0x7F)|0x80)
		u >>= 7
	}
}

func appendString(dst []byte, s string) []byte {
	dst = appendVarIntBytes(dst, int32(len(s)))
	return append(dst, s...)
}

func appendU16(dst []byte, v uint16) []byte {
	return append(dst, byte(v>>8), byte(v))
}

func TestHandshakeVersionMismatchDisconnects(t *testing.T) {
	g := newTestGlobalState()
	conn := &fakeConn{}
	s := NewSession(g, conn)

	payload := appendVarIntBytes(nil, 47)
	payload = appendString(payload, "localhost")
	payload = appendU16(payload, 25565)
	payload = appendVarIntBytes(payload, 2)
	s.Feed(protocol.EncodeFrame(protocol.IDHandshake, payload))

	require.True(t, conn.closed)
	ids := conn.ids(t)
	require.Contains(t, ids, protocol.IDDisconnectLogin)
}

func TestHandshakeInvalidNextStateDisconnects(t *testing.T) {
	g := newTestGlobalState()
	conn := &fakeConn{}
	s := NewSession(g, conn)

	payload := appendVarIntBytes(nil, protocolVersion)
	payload = appendString(payload, "localhost")
	payload = appendU16(payload, 25565)
	payload = appendVarIntBytes(payload, 9)
	s.Feed(protocol.EncodeFrame(protocol.IDHandshake, payload))

	require.True(t, conn.closed)
}

func TestFullLoginReachesPlay(t *testing.T) {
	g := newTestGlobalState()
	conn := &fakeConn{}
	s := NewSession(g, conn)

	// Handshake -> LOGIN
	hs := appendVarIntBytes(nil, protocolVersion)
	hs = appendString(hs, "localhost")
	hs = appendU16(hs, 25565)
	hs = appendVarIntBytes(hs, 2)
	s.Feed(protocol.EncodeFrame(protocol.IDHandshake, hs))
	require.Equal(t, PhaseLogin, s.Phase())

	// LoginStart
	ls := appendString(nil, "alice")
	s.Feed(protocol.EncodeFrame(protocol.IDLoginStart, ls))
	require.Equal(t, PhasePlayInit, s.Phase())
	require.Equal(t, "alice", s.Player.Username)

	// ClientSettings
	cs := appendString(nil, "en_US")
	cs = append(cs, 4) // view distance
	cs = appendVarIntBytes(cs, 0)
	cs = append(cs, 1) // chat colors
	s.Feed(protocol.EncodeFrame(protocol.IDClientSettings, cs))
	require.Equal(t, int32(4), s.Player.ViewDistance)

	// TeleportConfirm with the id the server issued (0, the first one)
	tc := appendVarIntBytes(nil, 0)
	s.Feed(protocol.EncodeFrame(protocol.IDTeleportConfirm, tc))

	require.Equal(t, PhasePlay, s.Phase())
	g.Tracker.Lock()
	members := g.Tracker.Members(chunkOf(0, 0))
	g.Tracker.Unlock()
	require.Contains(t, members, s)
}

func TestTeleportConfirmUnknownIDDisconnects(t *testing.T) {
	g := newTestGlobalState()
	conn := &fakeConn{}
	s := NewSession(g, conn)

	hs := appendVarIntBytes(nil, protocolVersion)
	hs = appendString(hs, "localhost")
	hs = appendU16(hs, 25565)
	hs = appendVarIntBytes(hs, 2)
	s.Feed(protocol.EncodeFrame(protocol.IDHandshake, hs))

	ls := appendString(nil, "bob")
	s.Feed(protocol.EncodeFrame(protocol.IDLoginStart, ls))

	cs := appendString(nil, "en_US")
	cs = append(cs, 4)
	cs = appendVarIntBytes(cs, 0)
	cs = append(cs, 1)
	s.Feed(protocol.EncodeFrame(protocol.IDClientSettings, cs))

	tc := appendVarIntBytes(nil, 99)
	s.Feed(protocol.EncodeFrame(protocol.IDTeleportConfirm, tc))

	require.True(t, conn.closed)
}

package server

import (
	"context"

	"github.com/mgrech/vitamine/pkg/protocol"
	"github.com/mgrech/vitamine/pkg/tick"
)

const (
	readTimeoutMillis       = 10_000
	keepAliveIntervalMillis = 5_000
)

// RunTickLoop drives a tick.Driver over every active session until ctx is
// cancelled - the process's heartbeat for keep-alives and read timeouts.
func (g *GlobalState) RunTickLoop(ctx context.Context) error {
	driver := tick.NewDriver(func() {
		for _, s := range g.Sessions() {
			s.onTick()
		}
	})
	return driver.Run(ctx)
}

// onTick enforces the read timeout and keep-alive cadence for one session.
// Races against onFrame on the same session's atomics by design - onPacket
// and onTick intentionally run concurrently without a lock here.
func (s *Session) onTick() {
	now := s.global.Clock.NowMillis()

	if now-s.lastPacketTimeMs.Load() >= readTimeoutMillis {
		s.Disconnect("timeout")
		return
	}

	if s.Phase() == PhasePlay && now-s.lastKeepAliveSentMs.Load() >= keepAliveIntervalMillis {
		s.lastKeepAliveSentMs.Store(now)
		s.send(protocol.EncodeKeepAliveClient(now))
	}
}

package server

import (
	"context"
	"net"

	"github.com/mgrech/vitamine/pkg/logging"
)

// ListenAndServe accepts connections on address until ctx is cancelled,
// spawning one Session and one reader goroutine per connection. Returns
// once the listener is closed in response to cancellation.
func ListenAndServe(ctx context.Context, g *GlobalState, address string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	log := logging.For("listener")
	log.WithField("address", address).Info("listening")

	for {
		nc, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				log.WithError(err).Warn("accept failed")
				continue
			}
		}

		conn := newTCPConn(nc)
		session := NewSession(g, conn)
		go Serve(nc, session.Feed, func() { session.teardown() })
	}
}

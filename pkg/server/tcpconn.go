package server

import (
	"bufio"
	"net"
	"sync"
)

// tcpConn adapts a net.Conn to the Connection interface: a mutex-guarded
// writer (multiple goroutines - onPacket and onTick - may call send
// concurrently) and a buffered reader feeding Session.Feed from its own
// goroutine.
type tcpConn struct {
	nc net.Conn

	writeMu sync.Mutex
	closeMu sync.Mutex
	closed  bool
}

func newTCPConn(nc net.Conn) *tcpConn {
	if tc, ok := nc.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return &tcpConn{nc: nc}
}

func (c *tcpConn) Send(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.nc.Write(frame)
	return err
}

func (c *tcpConn) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.nc.Close()
}

// Serve reads from nc until EOF or error, handing each read span to feed in
// order, then calls onClose exactly once. Runs on the caller's goroutine -
// callers spawn one of these per accepted connection.
func Serve(nc net.Conn, feed func([]byte), onClose func()) {
	defer onClose()

	r := bufio.NewReaderSize(nc, 4096)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			feed(buf[:n])
		}
		if err != nil {
			// EOF or any other read error both end the session the same way;
			// onFramingError already tears sessions down on malformed data,
			// this path handles the transport dying underneath a well-formed
			// stream.
			return
		}
	}
}

package wakeonlan

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type datagram struct {
	payload []byte
	addr    net.Addr
}

// fakeConn records what a UDPSender writes to it.
type fakeConn struct {
	mu            sync.Mutex
	writes        []datagram
	writeErr      error
	shortWrite    bool
	writeDeadline time.Time
	closed        int
}

func (c *fakeConn) ReadFrom(p []byte) (int, net.Addr, error) {
	return 0, nil, net.ErrClosed
}

func (c *fakeConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeErr != nil {
		return 0, c.writeErr
	}

	payload := make([]byte, len(p))
	copy(payload, p)
	c.writes = append(c.writes, datagram{payload: payload, addr: addr})

	if c.shortWrite {
		return len(p) - 1, nil
	}
	return len(p), nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeConn) LocalAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4zero}
}

func (c *fakeConn) SetDeadline(t time.Time) error {
	return c.SetWriteDeadline(t)
}

func (c *fakeConn) SetReadDeadline(t time.Time) error {
	return nil
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeDeadline = t
	return nil
}

// fakeNetwork hands out a new fakeConn per listen call.
type fakeNetwork struct {
	mu         sync.Mutex
	conns      []*fakeConn
	listenErr  error
	writeErr   error
	shortWrite bool
}

func (n *fakeNetwork) listen(ctx context.Context) (net.PacketConn, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.listenErr != nil {
		return nil, n.listenErr
	}

	conn := &fakeConn{writeErr: n.writeErr, shortWrite: n.shortWrite}
	n.conns = append(n.conns, conn)
	return conn, nil
}

func (n *fakeNetwork) datagrams() []datagram {
	n.mu.Lock()
	defer n.mu.Unlock()

	var all []datagram
	for _, c := range n.conns {
		c.mu.Lock()
		all = append(all, c.writes...)
		c.mu.Unlock()
	}
	return all
}

func (n *fakeNetwork) listenCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.conns)
}

func (n *fakeNetwork) allClosedOnce() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, c := range n.conns {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed != 1 {
			return false
		}
	}
	return true
}

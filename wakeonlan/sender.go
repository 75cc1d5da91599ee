package wakeonlan

import (
	"context"
	"io"
	"net"
)

// Sender puts a single datagram on the wire.
type Sender interface {
	Send(ctx context.Context, packet []byte, port uint16) error
}

// UDPSender broadcasts datagrams over IPv4 UDP. The zero value sends to the limited
// broadcast address 255.255.255.255.
//
// Every call opens its own socket and closes it before returning, so a UDPSender is
// safe for concurrent use.
type UDPSender struct {
	// Broadcast is the destination address. Nil means 255.255.255.255.
	Broadcast net.IP

	// Listen opens the socket for a single send. Nil means an ephemeral udp4
	// socket with SO_BROADCAST enabled.
	Listen func(ctx context.Context) (net.PacketConn, error)
}

// Send writes packet to Broadcast:port. A deadline on ctx is applied to the write.
func (s *UDPSender) Send(ctx context.Context, packet []byte, port uint16) error {
	listen := s.Listen
	if listen == nil {
		listen = listenBroadcast
	}

	conn, err := listen(ctx)
	if err != nil {
		return &TransportError{Op: "listen udp", Err: err}
	}
	defer conn.Close()

	if err := ctx.Err(); err != nil {
		return &TransportError{Op: "write", Err: err}
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return &TransportError{Op: "set deadline", Err: err}
		}
	}

	raddr := &net.UDPAddr{IP: s.broadcast(), Port: int(port)}

	n, err := conn.WriteTo(packet, raddr)
	if err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	if n != len(packet) {
		return &TransportError{Op: "write", Err: io.ErrShortWrite}
	}

	return nil
}

func (s *UDPSender) broadcast() net.IP {
	if ip := s.Broadcast.To4(); ip != nil {
		return ip
	}
	return net.IPv4bcast
}

func listenBroadcast(ctx context.Context) (net.PacketConn, error) {
	lc := net.ListenConfig{Control: enableBroadcast}
	return lc.ListenPacket(ctx, "udp4", ":0")
}

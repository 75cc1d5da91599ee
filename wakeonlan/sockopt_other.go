//go:build !unix

package wakeonlan

import "syscall"

// The Go runtime already enables broadcast on datagram sockets here.
func enableBroadcast(network, address string, c syscall.RawConn) error {
	return nil
}

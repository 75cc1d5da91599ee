// Package wakeonlan builds and broadcasts Wake-on-LAN magic packets.
package wakeonlan

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
)

// DefaultPort is the discard port most network cards listen on.
const DefaultPort uint16 = 9

// Waker turns a textual MAC address into a magic packet and sends it.
//
// A Waker holds no per-call state and is safe for concurrent use.
type Waker struct {
	sender Sender
	log    logr.Logger
}

// Option configures a Waker.
type Option func(*Waker)

// WithSender replaces the default UDP broadcast sender.
func WithSender(s Sender) Option {
	return func(w *Waker) {
		w.sender = s
	}
}

// WithLogger sets the logger. Sends are logged at V(1), failures as errors.
func WithLogger(log logr.Logger) Option {
	return func(w *Waker) {
		w.log = log
	}
}

// New returns a Waker that broadcasts to 255.255.255.255 unless configured otherwise.
func New(opts ...Option) *Waker {
	w := &Waker{
		sender: &UDPSender{},
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wake sends a magic packet for macAddress to the given port. Port 0 means
// DefaultPort.
//
// Malformed input is reported as *InvalidMACAddressError before any socket is
// opened. Network failures are reported as *TransportError.
func (w *Waker) Wake(ctx context.Context, macAddress string, port uint16) error {
	mac, err := ParseMAC(macAddress)
	if err != nil {
		ErrorsTotal.WithLabelValues(reasonInvalidMAC).Inc()
		return err
	}

	if port == 0 {
		port = DefaultPort
	}

	packet := Build(mac)

	log := w.log.WithValues("mac", mac.String(), "port", port)
	log.V(1).Info("Sending magic packet", "size", len(packet))

	if err := w.sender.Send(ctx, packet[:], port); err != nil {
		ErrorsTotal.WithLabelValues(reasonTransport).Inc()
		log.Error(err, "Failed to send magic packet")

		var terr *TransportError
		if !errors.As(err, &terr) {
			err = &TransportError{Op: "send", Err: err}
		}
		return err
	}

	PacketsSentTotal.Inc()

	return nil
}

var defaultWaker = New()

// SendWakeOnLan broadcasts a magic packet for macAddress to 255.255.255.255:port
// using a fresh socket.
func SendWakeOnLan(ctx context.Context, macAddress string, port uint16) error {
	return defaultWaker.Wake(ctx, macAddress, port)
}

package wakeonlan

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMACAddress matches any *InvalidMACAddressError via errors.Is.
	ErrInvalidMACAddress = errors.New("invalid mac address")

	// ErrTransport matches any *TransportError via errors.Is.
	ErrTransport = errors.New("transport")

	// ErrInvalidArgument is returned when a hardware address is not 6 bytes long.
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidMACAddressError is returned when the input can not be normalized into a MAC.
type InvalidMACAddressError struct {
	Input string
}

func (e *InvalidMACAddressError) Error() string {
	return fmt.Sprintf("invalid mac address %q: use XX:XX:XX:XX:XX:XX or XX-XX-XX-XX-XX-XX", e.Input)
}

func (e *InvalidMACAddressError) Is(target error) bool {
	return target == ErrInvalidMACAddress
}

// TransportError is returned when the magic packet could not be put on the wire.
type TransportError struct {
	// Op is the step that failed, e.g. "listen udp" or "write".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

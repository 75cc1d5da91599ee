package wakeonlan

import (
	"encoding/hex"
	"fmt"
	"net"
	"regexp"
	"strings"
)

// MAC is a 48-bit hardware address in network byte order.
type MAC [6]byte

var macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$|^[0-9A-Fa-f]{12}$`)

// stripSeparators removes the colon, hyphen and Cisco dot separators.
var stripSeparators = strings.NewReplacer(":", "", "-", "", ".", "")

// Validate reports whether raw is a MAC address in one of the strict textual forms:
// XX:XX:XX:XX:XX:XX, XX-XX-XX-XX-XX-XX or XXXXXXXXXXXX.
//
// Whitespace is never accepted. Note that Validate is stricter than Normalize, which
// also accepts the dotted XXXX.XXXX.XXXX form and surrounding whitespace.
func Validate(raw string) bool {
	return macPattern.MatchString(raw)
}

// Normalize converts raw into its 6-byte form.
//
// All ':', '-' and '.' characters are removed and surrounding whitespace trimmed
// before the remainder is required to be exactly 12 hex digits.
func Normalize(raw string) (MAC, bool) {
	if strings.TrimSpace(raw) == "" {
		return MAC{}, false
	}

	digits := strings.TrimSpace(stripSeparators.Replace(raw))
	if len(digits) != 2*len(MAC{}) {
		return MAC{}, false
	}

	var mac MAC
	if _, err := hex.Decode(mac[:], []byte(digits)); err != nil {
		return MAC{}, false
	}

	return mac, true
}

// ParseMAC is like Normalize but returns an *InvalidMACAddressError on failure.
func ParseMAC(raw string) (MAC, error) {
	mac, ok := Normalize(raw)
	if !ok {
		return MAC{}, &InvalidMACAddressError{Input: raw}
	}
	return mac, nil
}

// HardwareAddr returns a copy of m as a net.HardwareAddr.
func (m MAC) HardwareAddr() net.HardwareAddr {
	hw := make(net.HardwareAddr, len(m))
	copy(hw, m[:])
	return hw
}

// String formats m as lowercase colon separated hex.
func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

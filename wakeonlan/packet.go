package wakeonlan

import (
	"fmt"
	"net"
)

const (
	// headerSize is the number of leading 0xFF bytes.
	headerSize = 6

	// repetitions is how many times the MAC follows the header.
	repetitions = 16

	// PacketSize is the length of a magic packet: 6 + 16*6 = 102 bytes.
	PacketSize = headerSize + repetitions*len(MAC{})
)

// MagicPacket is a frame that contains 6 bytes of all 255 (FF FF FF FF FF FF in
// hexadecimal), followed by sixteen repetitions of the target computer's 48-bit
// MAC address, for a total of 102 bytes.
// See https://en.wikipedia.org/wiki/Wake-on-LAN
type MagicPacket [PacketSize]byte

// Build encodes mac into a magic packet.
func Build(mac MAC) MagicPacket {
	var p MagicPacket
	for i := 0; i < headerSize; i++ {
		p[i] = 0xff
	}
	for i := 0; i < repetitions; i++ {
		copy(p[headerSize+i*len(mac):], mac[:])
	}
	return p
}

// BuildFromHardwareAddr encodes an EUI-48 hardware address. Longer addresses such as
// EUI-64 are rejected with ErrInvalidArgument.
func BuildFromHardwareAddr(hw net.HardwareAddr) (MagicPacket, error) {
	var mac MAC
	if len(hw) != len(mac) {
		return MagicPacket{}, fmt.Errorf("%w: hardware address is %d bytes, want %d", ErrInvalidArgument, len(hw), len(mac))
	}
	copy(mac[:], hw)
	return Build(mac), nil
}

// MAC returns the target address of p. It reports false when the header is not all
// 0xFF or the repetitions disagree.
func (p MagicPacket) MAC() (MAC, bool) {
	for i := 0; i < headerSize; i++ {
		if p[i] != 0xff {
			return MAC{}, false
		}
	}

	var mac MAC
	copy(mac[:], p[headerSize:])

	for i := 1; i < repetitions; i++ {
		offset := headerSize + i*len(mac)
		if MAC(p[offset:offset+len(mac)]) != mac {
			return MAC{}, false
		}
	}

	return mac, true
}

package wire

import (
	"encoding/binary"
	"net"

	"github.com/bsv-blockchain/bitwire/errors"
)

// NetAddressSize is services(8) + address(16) + port(2).
const NetAddressSize = 26

// AppendNetAddress appends a network address record: services little-endian,
// the address as 16 bytes with IPv4 in its IPv4-mapped IPv6 form, and the port
// big-endian.
func (b *Builder) AppendNetAddress(ip net.IP, port uint16, services uint64) error {
	if b.err != nil {
		return b.err
	}

	ip16 := ip.To16()
	if ip16 == nil {
		return b.fail("AppendNetAddress", errors.NewFieldLengthError(len(ip), net.IPv6len, "ip address must be 4 or 16 bytes, got %d", len(ip)))
	}

	b.appendNetAddress(ip16, port, services)

	return b.err
}

// AppendNetAddressIPv4 appends a network address record for an IPv4 address
// given as a host-order integer, so 0x7f000001 is 127.0.0.1.
func (b *Builder) AppendNetAddressIPv4(address uint32, port uint16, services uint64) {
	var ip [4]byte

	binary.BigEndian.PutUint32(ip[:], address)

	b.appendNetAddress(net.IPv4(ip[0], ip[1], ip[2], ip[3]).To16(), port, services)
}

func (b *Builder) appendNetAddress(ip16 net.IP, port uint16, services uint64) {
	if !b.reserve(NetAddressSize) {
		return
	}

	b.buf = binary.LittleEndian.AppendUint64(b.buf, services)
	b.buf = append(b.buf, ip16...)
	b.buf = binary.BigEndian.AppendUint16(b.buf, port)
}

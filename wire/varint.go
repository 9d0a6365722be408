package wire

import (
	"encoding/binary"

	"github.com/bsv-blockchain/go-bt/v2"
)

// SizeOfVarInt returns the number of bytes AppendVarInt writes for i: 1, 3, 5 or 9.
func SizeOfVarInt(i uint64) int {
	if i < 0xfd {
		return 1
	}

	if i <= 0xffff {
		return 3
	}

	if i <= 0xffffffff {
		return 5
	}

	return 9
}

func (b *Builder) AppendUint8(i uint8) {
	if !b.reserve(1) {
		return
	}

	b.buf = append(b.buf, i)
}

func (b *Builder) AppendUint16(i uint16) {
	if !b.reserve(2) {
		return
	}

	b.buf = binary.LittleEndian.AppendUint16(b.buf, i)
}

func (b *Builder) AppendUint32(i uint32) {
	if !b.reserve(4) {
		return
	}

	b.buf = binary.LittleEndian.AppendUint32(b.buf, i)
}

func (b *Builder) AppendUint64(i uint64) {
	if !b.reserve(8) {
		return
	}

	b.buf = binary.LittleEndian.AppendUint64(b.buf, i)
}

// AppendVarInt writes i in the minimal of the four varint forms.
func (b *Builder) AppendVarInt(i uint64) {
	b.appendBytes(bt.VarInt(i).Bytes())
}

package wire

import (
	"github.com/bsv-blockchain/bitwire/errors"
)

// AppendString appends the varint length of s followed by its bytes.
func (b *Builder) AppendString(s string) {
	if !b.reserve(SizeOfVarInt(uint64(len(s))) + len(s)) {
		return
	}

	b.AppendVarInt(uint64(len(s)))
	b.buf = append(b.buf, s...)
}

// AppendNullPaddedString appends s padded with zero bytes to exactly length
// bytes. Strings longer than length are rejected, never truncated.
func (b *Builder) AppendNullPaddedString(s string, length int) error {
	if b.err != nil {
		return b.err
	}

	if length < 0 || len(s) > length {
		return b.fail("AppendNullPaddedString", errors.NewFieldLengthError(len(s), length, "string of %d bytes does not fit a %d byte field", len(s), length))
	}

	if !b.reserve(length) {
		return b.err
	}

	b.appendNullPadded(s, length)

	return nil
}

// appendNullPadded expects the caller to have validated and reserved length bytes.
func (b *Builder) appendNullPadded(s string, length int) {
	b.buf = append(b.buf, s...)

	for i := len(s); i < length; i++ {
		b.buf = append(b.buf, 0)
	}
}

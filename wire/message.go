package wire

import (
	"encoding/binary"
	"math"

	"github.com/bsv-blockchain/bitwire/errors"
	gowire "github.com/bsv-blockchain/go-wire"
)

const (
	// CommandSize is go-wire's fixed width of the command field in a message header.
	CommandSize = gowire.CommandSize

	// MessageHeaderSize is magic(4) + command(12) + length(4) + checksum(4).
	MessageHeaderSize = 4 + CommandSize + 4 + checksumSize

	checksumSize = 4
)

// AppendMessage frames payload as a message of the given command for the
// builder's network: magic, zero padded command, payload length, checksum and
// the payload itself.
func (b *Builder) AppendMessage(payload []byte, command string) error {
	if b.err != nil {
		return b.err
	}

	if len(command) > CommandSize {
		return b.fail("AppendMessage", errors.NewFieldLengthError(len(command), CommandSize, "command %q is longer than %d bytes", command, CommandSize))
	}

	if uint64(len(payload)) > math.MaxUint32 {
		return b.fail("AppendMessage", errors.NewInvalidLengthError("payload of %d bytes does not fit a 4 byte length", len(payload)))
	}

	digest := b.hasher(payload)
	if len(digest) < checksumSize {
		return b.fail("AppendMessage", errors.NewEncodingError("checksum digest is %d bytes, need at least %d", len(digest), checksumSize))
	}

	if !b.reserve(MessageHeaderSize + len(payload)) {
		return b.err
	}

	b.buf = binary.LittleEndian.AppendUint32(b.buf, b.network.Magic)
	b.appendNullPadded(command, CommandSize)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(len(payload)))
	b.buf = append(b.buf, digest[:checksumSize]...)
	b.buf = append(b.buf, payload...)

	prometheusWireMessagesFramed.WithLabelValues(command).Inc()
	prometheusWireMessageSize.Observe(float64(MessageHeaderSize + len(payload)))

	b.logger.Debugf("[wire.Builder.AppendMessage] framed %s message on %s, payload %d bytes, checksum %x", command, b.network, len(payload), digest[:checksumSize])

	return nil
}

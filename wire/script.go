package wire

import (
	"bytes"

	base58 "github.com/bitcoin-sv/go-sdk/compat/base58"
	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

const (
	// Hash160Size is the length of the hash committed to by a P2PKH script.
	Hash160Size = 20

	// P2PKHScriptSize is OP_DUP OP_HASH160 <push 20> OP_EQUALVERIFY OP_CHECKSIG.
	P2PKHScriptSize = 25

	addressPayloadSize  = 1 + Hash160Size
	addressChecksumSize = 4
)

// AppendScriptPushData appends d as a single script push: a length opcode for
// up to 75 bytes, otherwise OP_PUSHDATA1, OP_PUSHDATA2 or OP_PUSHDATA4 with a
// little-endian length.
func (b *Builder) AppendScriptPushData(d []byte) error {
	if b.err != nil {
		return b.err
	}

	prefix, err := bscript.PushDataPrefix(d)
	if err != nil {
		return b.fail("AppendScriptPushData", errors.NewInvalidLengthError("cannot push %d bytes", len(d), err))
	}

	// no copy of d is made outside the builder's storage
	if !b.reserve(len(prefix) + len(d)) {
		return b.err
	}

	b.buf = append(b.buf, prefix...)
	b.buf = append(b.buf, d...)

	return nil
}

// AppendScriptPubKeyForHash appends a pay-to-public-key-hash output script for
// the given 20 byte hash.
func (b *Builder) AppendScriptPubKeyForHash(hash []byte) error {
	if b.err != nil {
		return b.err
	}

	if len(hash) != Hash160Size {
		return b.fail("AppendScriptPubKeyForHash", errors.NewFieldLengthError(len(hash), Hash160Size, "public key hash must be %d bytes, got %d", Hash160Size, len(hash)))
	}

	if !b.reserve(P2PKHScriptSize) {
		return b.err
	}

	b.buf = append(b.buf, bscript.OpDUP, bscript.OpHASH160, bscript.OpDATA20)
	b.buf = append(b.buf, hash...)
	b.buf = append(b.buf, bscript.OpEQUALVERIFY, bscript.OpCHECKSIG)

	return nil
}

// AppendScriptPubKeyForAddress decodes address with the builder's address
// decoder and appends the matching pay-to-public-key-hash script.
func (b *Builder) AppendScriptPubKeyForAddress(address string) error {
	if b.err != nil {
		return b.err
	}

	hash, err := b.decoder(address)
	if err != nil {
		if !errors.Is(err, errors.ErrInvalidAddress) {
			err = errors.NewInvalidAddressError("could not decode address %q", address, err)
		}

		return b.fail("AppendScriptPubKeyForAddress", err)
	}

	return b.AppendScriptPubKeyForHash(hash)
}

// DecodeAddress decodes a Base58Check pay-to-public-key-hash address for this
// network and returns its 20 byte hash.
func (n Network) DecodeAddress(address string) ([]byte, error) {
	return DecodeAddress(address, n.PubKeyHashAddrID)
}

// DecodeAddress decodes a Base58Check address, verifies its checksum and
// version byte, and returns the 20 byte hash it carries.
func DecodeAddress(address string, version byte) ([]byte, error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return nil, errors.NewInvalidAddressError("address %q is not valid base58", address, err)
	}

	if len(decoded) != addressPayloadSize+addressChecksumSize {
		return nil, errors.NewInvalidAddressError("address %q decodes to %d bytes, expected %d", address, len(decoded), addressPayloadSize+addressChecksumSize)
	}

	payload := decoded[:addressPayloadSize]
	checksum := decoded[addressPayloadSize:]

	if !bytes.Equal(checksum, chainhash.DoubleHashB(payload)[:addressChecksumSize]) {
		return nil, errors.NewInvalidAddressError("address %q has an invalid checksum", address)
	}

	if payload[0] != version {
		return nil, errors.NewInvalidAddressError("address %q has version 0x%02x, expected 0x%02x", address, payload[0], version)
	}

	hash := make([]byte, Hash160Size)
	copy(hash, payload[1:])

	return hash, nil
}

// EncodeAddress is the inverse of DecodeAddress.
func EncodeAddress(hash []byte, version byte) (string, error) {
	if len(hash) != Hash160Size {
		return "", errors.NewInvalidLengthError("public key hash must be %d bytes, got %d", Hash160Size, len(hash))
	}

	payload := make([]byte, 0, addressPayloadSize+addressChecksumSize)
	payload = append(payload, version)
	payload = append(payload, hash...)
	payload = append(payload, chainhash.DoubleHashB(payload)[:addressChecksumSize]...)

	return base58.Encode(payload), nil
}

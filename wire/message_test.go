package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	gowire "github.com/bsv-blockchain/go-wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMessage(t *testing.T) {
	t.Run("verack on mainnet", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AppendMessage(nil, "verack"))

		out, err := b.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "f9beb4d976657261636b000000000000000000005df6e0e2", hex.EncodeToString(out))
	})

	t.Run("ping layout", func(t *testing.T) {
		payload := make([]byte, 8)
		binary.LittleEndian.PutUint64(payload, 0x1122334455667788)

		b := NewBuilder(WithNetwork(TestNet))
		require.NoError(t, b.AppendMessage(payload, "ping"))

		out, err := b.Bytes()
		require.NoError(t, err)
		require.Len(t, out, MessageHeaderSize+len(payload))

		assert.Equal(t, []byte{0x0b, 0x11, 0x09, 0x07}, out[0:4], "magic")
		assert.Equal(t, append([]byte("ping"), make([]byte, 8)...), out[4:16], "command")
		assert.Equal(t, uint32(len(payload)), binary.LittleEndian.Uint32(out[16:20]), "length")
		assert.Equal(t, chainhash.DoubleHashB(payload)[:4], out[20:24], "checksum")
		assert.Equal(t, payload, out[24:], "payload")
	})

	t.Run("both networks in one process", func(t *testing.T) {
		mainBuilder := NewBuilder(WithNetwork(MainNet))
		testBuilder := NewBuilder(WithNetwork(TestNet))

		require.NoError(t, mainBuilder.AppendMessage([]byte{1}, "tx"))
		require.NoError(t, testBuilder.AppendMessage([]byte{1}, "tx"))

		mainOut, err := mainBuilder.Bytes()
		require.NoError(t, err)

		testOut, err := testBuilder.Bytes()
		require.NoError(t, err)

		assert.Equal(t, uint32(0xd9b4bef9), binary.LittleEndian.Uint32(mainOut))
		assert.Equal(t, uint32(0x0709110b), binary.LittleEndian.Uint32(testOut))
		assert.Equal(t, mainOut[4:], testOut[4:])
	})

	t.Run("twelve byte command fills the field", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AppendMessage(nil, "sendaddrv2xx"))

		out, err := b.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("sendaddrv2xx"), out[4:16])
	})

	t.Run("command too long", func(t *testing.T) {
		b := NewBuilder()
		b.AppendUint8(0x01)

		err := b.AppendMessage([]byte{1, 2, 3}, "thirteenchars")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidLength))

		out, err := b.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01}, out)
	})

	t.Run("custom hasher", func(t *testing.T) {
		b := NewBuilder(WithHasher(func([]byte) []byte {
			return []byte{0xde, 0xad, 0xbe, 0xef, 0x00}
		}))
		require.NoError(t, b.AppendMessage([]byte("x"), "ping"))

		out, err := b.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, out[20:24])
	})

	t.Run("short digest", func(t *testing.T) {
		b := NewBuilder(WithHasher(func([]byte) []byte { return []byte{0x01} }))

		err := b.AppendMessage(nil, "ping")
		assert.True(t, errors.Is(err, errors.ErrEncoding))
		assert.Equal(t, 0, b.Len())
	})

	t.Run("framing a built payload", func(t *testing.T) {
		payload := NewBuilder()
		payload.AppendUint64(0)
		payload.AppendNetAddressIPv4(0x7f000001, 8333, 1)

		inner, err := payload.Bytes()
		require.NoError(t, err)

		b := NewBuilder()
		require.NoError(t, b.AppendMessage(inner, "addr"))

		out, err := b.Bytes()
		require.NoError(t, err)
		assert.True(t, bytes.HasSuffix(out, inner))
	})
}

func BenchmarkAppendMessage(b *testing.B) {
	payload := make([]byte, 1024)

	for i := 0; i < b.N; i++ {
		builder := NewBuilder()
		_ = builder.AppendMessage(payload, "block")
	}
}

func TestAppendMessageDecodesWithGoWire(t *testing.T) {
	for _, network := range []Network{MainNet, TestNet} {
		t.Run(network.Name, func(t *testing.T) {
			nonce := uint64(0x0102030405060708)

			payload := NewBuilder()
			payload.AppendUint64(nonce)

			pingPayload, err := payload.Bytes()
			require.NoError(t, err)

			b := NewBuilder(WithNetwork(network))
			require.NoError(t, b.AppendMessage(nil, "verack"))
			require.NoError(t, b.AppendMessage(pingPayload, "ping"))

			out, err := b.Bytes()
			require.NoError(t, err)

			r := bytes.NewReader(out)

			msg, _, err := gowire.ReadMessage(r, gowire.ProtocolVersion, gowire.BitcoinNet(network.Magic))
			require.NoError(t, err)
			assert.Equal(t, "verack", msg.Command())

			msg, raw, err := gowire.ReadMessage(r, gowire.ProtocolVersion, gowire.BitcoinNet(network.Magic))
			require.NoError(t, err)
			require.IsType(t, &gowire.MsgPing{}, msg)
			assert.Equal(t, nonce, msg.(*gowire.MsgPing).Nonce)
			assert.Equal(t, pingPayload, raw)

			assert.Zero(t, r.Len())
		})
	}
}

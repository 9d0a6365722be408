package wire

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/bsv-blockchain/bitwire/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAllocator wraps a ScrubAllocator and keeps every released slice.
type recordingAllocator struct {
	*ScrubAllocator
	allocs   int
	released [][]byte
}

func newRecordingAllocator(maxSize int) *recordingAllocator {
	return &recordingAllocator{ScrubAllocator: NewScrubAllocator(maxSize)}
}

func (r *recordingAllocator) Alloc(length, capacity int) ([]byte, error) {
	b, err := r.ScrubAllocator.Alloc(length, capacity)
	if err == nil {
		r.allocs++
	}

	return b, err
}

func (r *recordingAllocator) Release(b []byte) {
	r.ScrubAllocator.Release(b)
	r.released = append(r.released, b[:cap(b)])
}

func allZero(b []byte) bool {
	return bytes.Count(b, []byte{0}) == len(b)
}

func TestSecureConstructors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		b, err := NewSecureBuilder()
		require.NoError(t, err)
		assert.True(t, b.Secure())
		assert.Equal(t, 0, b.Len())
	})

	t.Run("with length", func(t *testing.T) {
		b, err := NewSecureBuilderWithLength(4)
		require.NoError(t, err)

		b.AppendUint8(0x01)

		out, err := b.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 0, 1}, out)
	})

	t.Run("with capacity", func(t *testing.T) {
		alloc := newRecordingAllocator(0)

		b, err := NewSecureBuilderWithCapacity(64, WithAllocator(alloc))
		require.NoError(t, err)
		assert.Equal(t, 0, b.Len())

		require.NoError(t, b.AppendNullPaddedString("", 64))
		assert.Equal(t, 1, alloc.allocs, "no growth within the requested capacity")
	})

	t.Run("from bytes copies", func(t *testing.T) {
		src := []byte{0xca, 0xfe}

		b, err := NewSecureBuilderFromBytes(src)
		require.NoError(t, err)

		src[0] = 0x00

		out, err := b.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{0xca, 0xfe}, out)
	})

	t.Run("allocation failure", func(t *testing.T) {
		_, err := NewSecureBuilderWithCapacity(128, WithAllocator(NewScrubAllocator(64)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrAllocationFailure))

		_, err = NewSecureBuilderWithLength(-1)
		assert.True(t, errors.Is(err, errors.ErrAllocationFailure))
	})
}

func TestSecureBuilderScrubsOnRelease(t *testing.T) {
	alloc := newRecordingAllocator(0)

	b, err := NewSecureBuilderFromBytes(bytes.Repeat([]byte{0x5a}, 32), WithAllocator(alloc))
	require.NoError(t, err)

	out, err := b.Bytes()
	require.NoError(t, err)

	b.Release()

	require.Len(t, alloc.released, 1)
	assert.True(t, allZero(alloc.released[0]))
	assert.True(t, allZero(out))
	assert.Equal(t, 0, b.Len())

	// a second release is a no-op
	b.Release()
	assert.Len(t, alloc.released, 1)
}

func TestSecureBuilderScrubsOnGrowth(t *testing.T) {
	alloc := newRecordingAllocator(0)

	b, err := NewSecureBuilderWithCapacity(8, WithAllocator(alloc))
	require.NoError(t, err)

	b.AppendUint64(0x1111111111111111)
	b.AppendUint64(0x2222222222222222)

	require.Len(t, alloc.released, 1, "the outgrown buffer is handed back")
	assert.True(t, allZero(alloc.released[0]))

	out, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, append(bytes.Repeat([]byte{0x11}, 8), bytes.Repeat([]byte{0x22}, 8)...), out)
}

func TestGrowthFailureIsSticky(t *testing.T) {
	b, err := NewSecureBuilderWithCapacity(16, WithAllocator(NewScrubAllocator(32)), WithLogger(ulogger.NewVerboseTestLogger(t)))
	require.NoError(t, err)

	// grows to exactly 20 bytes after the doubled request is refused
	require.NoError(t, b.AppendNullPaddedString("", 20))
	assert.Equal(t, 20, b.Len())

	b.AppendUint64(1)
	b.AppendUint64(2)

	require.Error(t, b.Err())
	assert.True(t, errors.Is(b.Err(), errors.ErrAllocationFailure))
	assert.Equal(t, 28, b.Len(), "the append that could not grow wrote nothing")

	_, err = b.Bytes()
	assert.True(t, errors.Is(err, errors.ErrAllocationFailure))

	err = b.AppendScriptPubKeyForHash(make([]byte, 20))
	assert.True(t, errors.Is(err, errors.ErrAllocationFailure))
	assert.Equal(t, 28, b.Len())
}

func TestPlainBuilder(t *testing.T) {
	b := NewBuilder(WithLogger(ulogger.NewVerboseTestLogger(t)))
	assert.False(t, b.Secure())
	assert.Equal(t, MainNet, b.Network())

	big := bytes.Repeat([]byte{0x01}, 4096)
	require.NoError(t, b.AppendScriptPushData(big))
	assert.Equal(t, 3+4096, b.Len())

	b.Release()
	assert.Equal(t, 0, b.Len())

	b.AppendUint8(7)

	out, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, out)
}

func TestSecurePushKeepsDataInsideAllocator(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 1<<20)

	b, err := NewSecureBuilderWithCapacity(2 << 20)
	require.NoError(t, err)

	defer b.Release()

	var before, after runtime.MemStats

	runtime.ReadMemStats(&before)
	require.NoError(t, b.AppendScriptPushData(payload))
	runtime.ReadMemStats(&after)

	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(len(payload)/4), "pushed data must not be copied outside the builder")
	assert.Equal(t, 5+len(payload), b.Len())

	hash := bytes.Repeat([]byte{0x07}, Hash160Size)

	allocs := testing.AllocsPerRun(100, func() {
		_ = b.AppendScriptPubKeyForHash(hash)
	})
	assert.Zero(t, allocs)
}

func TestWithInitialCapacity(t *testing.T) {
	plain := NewBuilder(WithInitialCapacity(1024))
	assert.Equal(t, 1024, plain.Cap())

	secure, err := NewSecureBuilder(WithInitialCapacity(16))
	require.NoError(t, err)
	assert.Equal(t, 16, secure.Cap())

	// length wins over a smaller configured capacity
	withLength, err := NewSecureBuilderWithLength(40, WithInitialCapacity(16))
	require.NoError(t, err)
	assert.Equal(t, 40, withLength.Len())
	assert.GreaterOrEqual(t, withLength.Cap(), 40)

	// an explicit capacity argument wins over the option
	withCapacity, err := NewSecureBuilderWithCapacity(8, WithInitialCapacity(512))
	require.NoError(t, err)
	assert.Equal(t, 8, withCapacity.Cap())
}

func TestPlainBuilderInitialAllocationFailure(t *testing.T) {
	b := NewBuilder(WithInitialCapacity(-1), WithLogger(ulogger.NewVerboseTestLogger(t)))
	require.Error(t, b.Err())
	assert.True(t, errors.Is(b.Err(), errors.ErrAllocationFailure))

	b.AppendUint8(1)
	assert.Equal(t, 0, b.Len())

	_, err := b.Bytes()
	assert.True(t, errors.Is(err, errors.ErrAllocationFailure))
}

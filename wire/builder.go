// Package wire builds Bitcoin peer-to-peer wire protocol byte buffers.
//
// A Builder accumulates encoded fields into a single growable buffer. Every
// append either writes its complete encoding or nothing at all. Appends that
// validate their input return an error; when the backing allocator cannot grow
// the buffer the Builder records the failure, ignores further appends and
// reports the error from Bytes and Err.
//
// A Builder is owned by one goroutine at a time.
package wire

import (
	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/bsv-blockchain/bitwire/ulogger"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

const defaultInitialCapacity = 256

// AddressDecoder turns an address string into the 20 byte hash it commits to.
type AddressDecoder func(address string) ([]byte, error)

// Hasher computes the digest whose first 4 bytes become the message checksum.
type Hasher func(b []byte) []byte

type Builder struct {
	buf       []byte
	err       error
	secure    bool
	network   Network
	allocator Allocator
	decoder   AddressDecoder
	hasher    Hasher
	logger    ulogger.Logger
	capacity  int
}

type Option func(*Builder)

// WithNetwork selects the network magic and default address version.
func WithNetwork(network Network) Option {
	return func(b *Builder) {
		b.network = network
	}
}

// WithAllocator replaces the allocator. Secure builders expect it to zero
// released memory.
func WithAllocator(allocator Allocator) Option {
	return func(b *Builder) {
		b.allocator = allocator
	}
}

func WithAddressDecoder(decoder AddressDecoder) Option {
	return func(b *Builder) {
		b.decoder = decoder
	}
}

func WithHasher(hasher Hasher) Option {
	return func(b *Builder) {
		b.hasher = hasher
	}
}

func WithLogger(logger ulogger.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithInitialCapacity sets the capacity requested from the allocator when the
// builder is created. NewSecureBuilderWithCapacity overrides it.
func WithInitialCapacity(capacity int) Option {
	return func(b *Builder) {
		b.capacity = capacity
	}
}

func newBuilder(secure bool, opts []Option) *Builder {
	initPrometheusMetrics()

	b := &Builder{
		secure:   secure,
		network:  MainNet,
		hasher:   chainhash.DoubleHashB,
		logger:   ulogger.TestLogger{},
		capacity: defaultInitialCapacity,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.allocator == nil {
		if secure {
			b.allocator = NewScrubAllocator(DefaultMaxBufferSize)
		} else {
			b.allocator = heapAllocator{}
		}
	}

	if b.decoder == nil {
		b.decoder = b.network.DecodeAddress
	}

	return b
}

// NewBuilder returns an empty builder on ordinary heap memory. It has no error
// return; if the allocator refuses the initial buffer the failure is sticky and
// reported by Err and Bytes.
func NewBuilder(opts ...Option) *Builder {
	b := newBuilder(false, opts)

	if err := b.init(0, b.capacity); err != nil {
		b.logger.Warnf("[wire.NewBuilder] %v", err)
	}

	return b
}

// NewSecureBuilder returns an empty builder whose memory is scrubbed on Release.
func NewSecureBuilder(opts ...Option) (*Builder, error) {
	b := newBuilder(true, opts)

	return b.initSecure(0, b.capacity, nil)
}

// NewSecureBuilderWithLength returns a scrubbed builder already holding length
// zero bytes.
func NewSecureBuilderWithLength(length int, opts ...Option) (*Builder, error) {
	b := newBuilder(true, opts)

	return b.initSecure(length, max(length, b.capacity), nil)
}

// NewSecureBuilderWithCapacity returns an empty scrubbed builder able to hold
// capacity bytes without growing.
func NewSecureBuilderWithCapacity(capacity int, opts ...Option) (*Builder, error) {
	b := newBuilder(true, opts)

	return b.initSecure(0, capacity, nil)
}

// NewSecureBuilderFromBytes returns a scrubbed builder holding a copy of data.
func NewSecureBuilderFromBytes(data []byte, opts ...Option) (*Builder, error) {
	b := newBuilder(true, opts)

	return b.initSecure(len(data), max(len(data), b.capacity), data)
}

func (b *Builder) initSecure(length, capacity int, data []byte) (*Builder, error) {
	if err := b.init(length, capacity); err != nil {
		return nil, err
	}

	copy(b.buf, data)

	return b, nil
}

func (b *Builder) init(length, capacity int) error {
	buf, err := b.allocator.Alloc(length, capacity)
	if err != nil {
		b.err = errors.NewAllocationFailureError("could not allocate %d byte buffer", capacity, err)
		recordEncodeError(b.err)

		return b.err
	}

	b.buf = buf

	return nil
}

// Bytes returns the encoded buffer. The slice aliases the builder's storage
// until Release is called.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	return b.buf, nil
}

// Err returns the allocation failure that stopped the builder, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) Len() int {
	return len(b.buf)
}

// Cap is the number of bytes the builder can hold before it has to grow.
func (b *Builder) Cap() int {
	return cap(b.buf)
}

func (b *Builder) Network() Network {
	return b.network
}

// Secure reports whether the builder scrubs its memory on release.
func (b *Builder) Secure() bool {
	return b.secure
}

// Release hands the backing storage back to the allocator, which zeroes it for
// secure builders. Bytes previously returned must not be used afterwards.
func (b *Builder) Release() {
	if b.buf == nil {
		return
	}

	b.allocator.Release(b.buf)
	b.buf = nil

	prometheusWireBuildersReleased.Inc()
}

// reserve makes room for n more bytes so the following appends never move the
// buffer outside the allocator's control.
func (b *Builder) reserve(n int) bool {
	if b.err != nil {
		return false
	}

	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return true
	}

	newCap := max(2*cap(b.buf), need, defaultInitialCapacity)

	buf, err := b.allocator.Alloc(len(b.buf), newCap)
	if err != nil && newCap > need {
		buf, err = b.allocator.Alloc(len(b.buf), need)
	}

	if err != nil {
		b.err = errors.NewAllocationFailureError("could not grow buffer to %d bytes", need, err)
		b.logger.Errorf("[wire.Builder] %v", b.err)
		recordEncodeError(b.err)

		return false
	}

	copy(buf, b.buf)
	b.allocator.Release(b.buf)
	b.buf = buf

	return true
}

// fail records a rejected append. The buffer is left as it was.
func (b *Builder) fail(op string, err error) error {
	b.logger.Warnf("[wire.Builder.%s] %v", op, err)
	recordEncodeError(err)

	return err
}

func (b *Builder) appendBytes(p []byte) {
	if !b.reserve(len(p)) {
		return
	}

	b.buf = append(b.buf, p...)
}

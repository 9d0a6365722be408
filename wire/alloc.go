package wire

import (
	"runtime"

	"github.com/bsv-blockchain/bitwire/errors"
)

// DefaultMaxBufferSize caps a single allocation made by the scrubbing allocator.
const DefaultMaxBufferSize = 32 * 1024 * 1024

// Allocator hands out backing storage for a Builder and takes it back when the
// Builder grows or is released.
type Allocator interface {
	// Alloc returns a slice with the given length and at least the given capacity.
	Alloc(length, capacity int) ([]byte, error)
	// Release is called exactly once for every slice returned by Alloc.
	Release(b []byte)
}

// ScrubAllocator zeroes every buffer handed back to it. Use it for buffers that
// may carry key or script material.
type ScrubAllocator struct {
	maxSize int
}

// NewScrubAllocator returns an allocator refusing requests above maxSize bytes.
// A maxSize of zero or less means DefaultMaxBufferSize.
func NewScrubAllocator(maxSize int) *ScrubAllocator {
	if maxSize <= 0 {
		maxSize = DefaultMaxBufferSize
	}

	return &ScrubAllocator{maxSize: maxSize}
}

func (a *ScrubAllocator) Alloc(length, capacity int) ([]byte, error) {
	initPrometheusMetrics()

	maxSize := a.maxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxBufferSize
	}

	if length < 0 || capacity < length {
		return nil, errors.NewAllocationFailureError("invalid allocation request: length %d, capacity %d", length, capacity)
	}

	if capacity > maxSize {
		return nil, errors.NewAllocationFailureError("allocation of %d bytes exceeds the %d byte limit", capacity, maxSize)
	}

	prometheusWireSecureAllocations.Inc()

	return make([]byte, length, capacity), nil
}

func (a *ScrubAllocator) Release(b []byte) {
	if cap(b) == 0 {
		return
	}

	initPrometheusMetrics()

	b = b[:cap(b)]
	clear(b)
	runtime.KeepAlive(b)

	prometheusWireSecureReleases.Inc()
}

// heapAllocator backs plain builders. Nothing is scrubbed.
type heapAllocator struct{}

func (heapAllocator) Alloc(length, capacity int) ([]byte, error) {
	if length < 0 || capacity < length {
		return nil, errors.NewAllocationFailureError("invalid allocation request: length %d, capacity %d", length, capacity)
	}

	return make([]byte, length, capacity), nil
}

func (heapAllocator) Release([]byte) {}

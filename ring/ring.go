package ring

import (
	"math"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// GenericData is the data type the ring operates on. The ring never
// dereferences it; whatever it points at belongs to the caller.
type GenericData unsafe.Pointer

// maxSize caps the slot count at the longest slice the platform can address.
const maxSize = math.MaxInt / int(unsafe.Sizeof(unsafe.Pointer(nil)))

// Ring is a bounded ring buffer manipulated via atomics. It is safe for a
// single producer and, depending on its options, one or many consumers.
//
// Both indices only ever grow. The slot for index i is i&mask or i%size
// depending on the Addressing, and writeIdx-readIdx stays within [0, size].
type Ring struct {
	_ cpu.CacheLinePad

	// Owned by the producer.
	writeIdx     atomic.Uint64
	readIdxCache uint64

	_ cpu.CacheLinePad

	// Owned by the consumers.
	readIdx       atomic.Uint64
	writeIdxCache atomic.Uint64

	_ cpu.CacheLinePad

	buf  []unsafe.Pointer
	size uint64
	mask uint64
	opts options
}

// New creates a ring with the given size and options. It returns an
// *AllocationError if size is not positive, if Mask addressing is used with
// a size that is not a power of two or if the slots cannot be allocated.
func New(size int, opts ...Option) (*Ring, error) {
	var o options
	for _, opt := range opts {
		opt.apply(&o)
	}

	switch {
	case size <= 0:
		return nil, &AllocationError{Size: size, Reason: "size must be positive"}
	case size > maxSize:
		return nil, &AllocationError{Size: size, Reason: "size exceeds addressable memory"}
	}

	switch o.addressing {
	case Mask:
		if size&(size-1) != 0 {
			return nil, &AllocationError{Size: size, Reason: "mask addressing requires a power of two"}
		}
	case Modulo:
	default:
		return nil, &AllocationError{Size: size, Reason: "unknown addressing " + o.addressing.String()}
	}

	return &Ring{
		buf:  make([]unsafe.Pointer, size),
		size: uint64(size),
		mask: uint64(size - 1),
		opts: o,
	}, nil
}

func (r *Ring) slot(idx uint64) *unsafe.Pointer {
	if r.opts.addressing == Modulo {
		return &r.buf[idx%r.size]
	}
	return &r.buf[idx&r.mask]
}

// TryPush stores gd in the next free slot. It returns false if the ring is
// full. TryPush must only ever be called from one go-routine.
func (r *Ring) TryPush(gd GenericData) bool {
	writeIdx := r.writeIdx.Load()
	next := writeIdx + 1

	if next-r.readIdxCache > r.size {
		// The cache may be stale. Look at the real read index once before
		// giving up.
		r.readIdxCache = r.readIdx.Load()
		if next-r.readIdxCache > r.size {
			return false
		}
	}

	atomic.StorePointer(r.slot(writeIdx), unsafe.Pointer(gd))
	r.writeIdx.Store(next)
	return true
}

// TryPop will attempt to take the oldest token. If there is no data
// available, it will return (nil, false).
func (r *Ring) TryPop() (GenericData, bool) {
	if r.opts.singleReader {
		return r.tryPop()
	}
	return r.tryPopShared()
}

// TryPopMany takes up to len(dst) of the oldest tokens in one claim, stores
// them in order at the front of dst and returns how many it took. It returns 0
// only if the ring was empty.
func (r *Ring) TryPopMany(dst []GenericData) int {
	if len(dst) == 0 {
		return 0
	}
	if r.opts.singleReader {
		return r.tryPopMany(dst)
	}
	return r.tryPopManyShared(dst)
}

// available returns the write index a consumer at readIdx may read up to,
// refreshing the shared cache when it does not cover want more tokens.
func (r *Ring) available(readIdx, want uint64) uint64 {
	writeIdx := r.writeIdxCache.Load()
	if readIdx+want > writeIdx {
		writeIdx = r.writeIdx.Load()
		r.writeIdxCache.Store(writeIdx)
	}
	return writeIdx
}

func (r *Ring) tryPop() (GenericData, bool) {
	readIdx := r.readIdx.Load()
	if readIdx >= r.available(readIdx, 1) {
		return nil, false
	}

	// Nobody else reads this slot and the producer will not touch it until
	// readIdx moves, so it can be cleared for the GC.
	gd := atomic.SwapPointer(r.slot(readIdx), nil)
	r.readIdx.Store(readIdx + 1)
	return GenericData(gd), true
}

func (r *Ring) tryPopShared() (GenericData, bool) {
	for {
		readIdx := r.readIdx.Load()
		if readIdx >= r.available(readIdx, 1) {
			return nil, false
		}

		// The slot is only ours once the CAS succeeds. If it fails another
		// consumer got there first and what we read may already have been
		// replaced by the producer.
		gd := atomic.LoadPointer(r.slot(readIdx))
		if r.readIdx.CompareAndSwap(readIdx, readIdx+1) {
			return GenericData(gd), true
		}
	}
}

func (r *Ring) tryPopMany(dst []GenericData) int {
	readIdx := r.readIdx.Load()
	writeIdx := r.available(readIdx, uint64(len(dst)))
	if readIdx >= writeIdx {
		return 0
	}

	end := min(readIdx+uint64(len(dst)), writeIdx)
	for i := readIdx; i < end; i++ {
		dst[i-readIdx] = GenericData(atomic.SwapPointer(r.slot(i), nil))
	}
	r.readIdx.Store(end)
	return int(end - readIdx)
}

func (r *Ring) tryPopManyShared(dst []GenericData) int {
	for {
		readIdx := r.readIdx.Load()
		writeIdx := r.available(readIdx, uint64(len(dst)))
		if readIdx >= writeIdx {
			return 0
		}

		// Copy the whole range speculatively and claim it with a single CAS.
		// On failure the copies are garbage and the claim starts over.
		end := min(readIdx+uint64(len(dst)), writeIdx)
		for i := readIdx; i < end; i++ {
			dst[i-readIdx] = GenericData(atomic.LoadPointer(r.slot(i)))
		}
		if r.readIdx.CompareAndSwap(readIdx, end) {
			return int(end - readIdx)
		}
	}
}

// Drain pops until the ring is empty, handing every token to fn, and returns
// how many it popped. It is a consumer operation.
func (r *Ring) Drain(fn func(GenericData)) int {
	var n int
	for {
		gd, ok := r.TryPop()
		if !ok {
			return n
		}
		if fn != nil {
			fn(gd)
		}
		n++
	}
}

// Stats is a snapshot of both indices.
type Stats struct {
	Pushed uint64 // tokens ever published by the producer
	Popped uint64 // tokens ever claimed by consumers
}

// Stats returns the number of tokens pushed and popped so far. Pushed-Popped
// is the occupancy at roughly the time of the call.
func (r *Ring) Stats() Stats {
	// Read first so Popped can never overtake Pushed.
	popped := r.readIdx.Load()
	return Stats{
		Pushed: r.writeIdx.Load(),
		Popped: popped,
	}
}

// Len returns the approximate number of resident tokens.
func (r *Ring) Len() int {
	s := r.Stats()
	return int(min(s.Pushed-s.Popped, r.size))
}

// Cap returns the fixed number of slots.
func (r *Ring) Cap() int {
	return int(r.size)
}

// Addressing returns the index to slot mapping the ring was built with.
func (r *Ring) Addressing() Addressing {
	return r.opts.addressing
}

// SingleReader reports whether the ring was built WithSingleReader.
func (r *Ring) SingleReader() bool {
	return r.opts.singleReader
}

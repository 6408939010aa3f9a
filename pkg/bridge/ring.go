// ABOUTME: Lock-free single-producer single-consumer byte ring buffer
// ABOUTME: Transfer path between the submit side and the realtime render callback
package bridge

import "sync/atomic"

// Region is a contiguous span of unread bytes inside the ring. The slice
// aliases the ring's storage; it stays valid until AdvanceRead consumes it.
type Region struct {
	Buf []byte
}

// RingBuffer is a lock-free single-producer, single-consumer byte queue.
//
// Two monotonically increasing cursors index a power-of-two buffer through
// bitwise masking. The producer owns writePos, the consumer owns readPos;
// each side only loads the other's cursor. Go's sync/atomic is sequentially
// consistent, so the consumer observing a cursor update also observes every
// byte written before it.
//
// Thread assignment:
//   - Write, Free: producer only
//   - ReadVector, AdvanceRead: consumer (render callback) only
//   - Length: any thread
type RingBuffer struct {
	// The cursors live on separate cache lines so producer and consumer
	// stores do not false-share.
	writePos atomic.Uint64
	_        [56]byte
	readPos  atomic.Uint64
	_        [56]byte

	buf  []byte
	mask uint64
}

// NewRingBuffer creates a ring buffer holding at least capacity bytes,
// rounded up to the next power of two.
func NewRingBuffer(capacity int) *RingBuffer {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &RingBuffer{
		buf:  make([]byte, size),
		mask: uint64(size - 1),
	}
}

// Capacity returns the ring's storage size in bytes.
func (rb *RingBuffer) Capacity() int {
	return len(rb.buf)
}

// Write copies up to len(p) bytes into the ring and returns the number
// actually written. It never blocks and never overwrites unread data; a
// short count means the ring is out of space.
func (rb *RingBuffer) Write(p []byte) int {
	w := rb.writePos.Load()
	r := rb.readPos.Load()

	free := uint64(len(rb.buf)) - (w - r)
	if free == 0 {
		return 0
	}

	n := uint64(len(p))
	if n > free {
		n = free
	}

	pos := w & rb.mask
	first := uint64(len(rb.buf)) - pos
	if first >= n {
		copy(rb.buf[pos:pos+n], p[:n])
	} else {
		copy(rb.buf[pos:], p[:first])
		copy(rb.buf[:n-first], p[first:n])
	}

	rb.writePos.Store(w + n)
	return int(n)
}

// ReadVector exposes the unread bytes as at most two contiguous regions
// (two when the data wraps the physical end of the buffer), without copying
// or consuming them. Safe on the realtime thread: no locks, no allocation.
func (rb *RingBuffer) ReadVector() [2]Region {
	var v [2]Region

	r := rb.readPos.Load()
	w := rb.writePos.Load()

	avail := w - r
	if avail == 0 {
		return v
	}

	pos := r & rb.mask
	first := uint64(len(rb.buf)) - pos
	if first >= avail {
		v[0].Buf = rb.buf[pos : pos+avail]
	} else {
		v[0].Buf = rb.buf[pos:]
		v[1].Buf = rb.buf[:avail-first]
	}
	return v
}

// AdvanceRead consumes the first n unread bytes. Advancing past the current
// occupancy is clamped so the read cursor can never overtake the writer.
func (rb *RingBuffer) AdvanceRead(n int) {
	r := rb.readPos.Load()
	w := rb.writePos.Load()

	if avail := int(w - r); n > avail {
		n = avail
	}
	if n <= 0 {
		return
	}
	rb.readPos.Store(r + uint64(n))
}

// Length returns the number of unread bytes.
func (rb *RingBuffer) Length() int {
	return int(rb.writePos.Load() - rb.readPos.Load())
}

// Free returns the number of bytes that can be written without overrun.
func (rb *RingBuffer) Free() int {
	return len(rb.buf) - rb.Length()
}

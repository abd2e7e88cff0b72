// Package buffer implements the growable byte container used as the
// universal currency of the codec: packet builders append to the tail,
// frame headers are prepended once a payload is complete, and the packet
// reader discards consumed prefixes as frames are parsed off a stream.
package buffer

// smallBufferSize is the size of the buffer's inline storage. Packets under
// this size (almost all of them - keep-alives, movement, chat) never touch
// the heap.
const smallBufferSize = 256

// Buffer is a dynamically sized byte vector. It is not safe for concurrent
// use; callers serialize access the same way they serialize everything else
// on a connection's read or write side.
type Buffer struct {
	data   []byte
	inline [smallBufferSize]byte
}

// New returns an empty Buffer backed by inline storage.
func New() *Buffer {
	b := &Buffer{}
	b.data = b.inline[:0]
	return b
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer's contents. The slice is invalidated by any
// subsequent call to Append, Prepend, or Discard.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Append copies span onto the tail of the buffer.
func (b *Buffer) Append(span []byte) {
	b.data = append(b.data, span...)
}

// Prepend copies span onto the head of the buffer, shifting existing
// contents back. Used to write the length+id header after the payload has
// already been built.
func (b *Buffer) Prepend(span []byte) {
	n := len(span)
	if n == 0 {
		return
	}
	old := len(b.data)
	b.grow(n)
	b.data = b.data[:old+n]
	copy(b.data[n:], b.data[:old])
	copy(b.data[:n], span)
}

// grow ensures the buffer can hold n additional bytes without the Prepend
// shuffle reallocating mid-copy.
func (b *Buffer) grow(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}
	fresh := make([]byte, len(b.data), len(b.data)+n+len(b.data)/2)
	copy(fresh, b.data)
	b.data = fresh
}

// Discard drops the first n bytes, shifting the remainder to the head.
// Discarding n >= Len() empties the buffer; n <= 0 is a no-op.
func (b *Buffer) Discard(n int) {
	if n <= 0 {
		return
	}
	if n >= len(b.data) {
		b.data = b.data[:0]
		return
	}
	remaining := copy(b.data, b.data[n:])
	b.data = b.data[:remaining]
}

// Write implements io.Writer by appending p to the tail, so codec encoders
// can build a packet payload directly into a Buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

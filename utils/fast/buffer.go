// Package fast is a minimal append-only byte writer and cursor reader used to
// build hashing preimages and composite storage keys.
//
// Neither type checks bounds. Reading past the end of a Reader panics, so it
// is only used on buffers whose layout the caller produced itself.
package fast

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
)

type Reader struct {
	buf    []byte
	offset int
}

type Writer struct {
	buf []byte
}

// NewReader creates a Reader over bb.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// NewWriter creates a Writer that appends to bb.
// Callers usually pass `make([]byte, 0, capacity)`.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteU8 appends a single byte.
func (b *Writer) WriteU8(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends v.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// WriteUint64 appends v as 8 big-endian bytes.
func (b *Writer) WriteUint64(v uint64) {
	b.buf = append(b.buf, bigendian.Uint64ToBytes(v)...)
}

// WriteUint32 appends v as 4 big-endian bytes.
func (b *Writer) WriteUint32(v uint32) {
	b.buf = append(b.buf, bigendian.Uint32ToBytes(v)...)
}

// Read consumes the next n bytes. The result shares memory with the buffer.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadU8 consumes a single byte.
func (b *Reader) ReadU8() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// ReadUint64 consumes 8 big-endian bytes.
func (b *Reader) ReadUint64() uint64 {
	return bigendian.BytesToUint64(b.Read(8))
}

// ReadUint32 consumes 4 big-endian bytes.
func (b *Reader) ReadUint32() uint32 {
	return bigendian.BytesToUint32(b.Read(4))
}

// Position returns the cursor index.
func (b *Reader) Position() int {
	return b.offset
}

// Bytes returns the whole underlying buffer.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Bytes returns what has been written so far.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty reports whether every byte has been consumed.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}

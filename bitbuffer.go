package swiftcodec

import (
	"errors"
	"io"
)

// ErrSeekRange is returned when a seek would move the cursor before the first bit.
var ErrSeekRange = errors.New("swiftcodec: seek position out of range")

// BitBuffer is a growable sequence of bits addressed by a bit cursor.
// Bits are stored most-significant first within each byte.
type BitBuffer struct {
	buf []byte
	pos int // cursor, in bits
	n   int // written extent, in bits
}

// NewBitBuffer returns an empty BitBuffer with room for capacityBytes bytes before it has to grow.
func NewBitBuffer(capacityBytes int) *BitBuffer {
	if capacityBytes < 0 {
		capacityBytes = 0
	}
	return &BitBuffer{buf: make([]byte, 0, capacityBytes)}
}

// NewBitBufferFrom returns a BitBuffer positioned at bit 0 whose contents are p.
// The buffer takes ownership of p.
func NewBitBufferFrom(p []byte) *BitBuffer {
	return &BitBuffer{buf: p, n: len(p) * 8}
}

// Position reports the cursor in bits.
func (b *BitBuffer) Position() int {
	return b.pos
}

// Len reports the number of bits written so far.
func (b *BitBuffer) Len() int {
	return b.n
}

// ByteLen reports the cursor rounded up to whole bytes.
func (b *BitBuffer) ByteLen() int {
	return (b.pos + 7) >> 3
}

// Bytes returns the written extent rounded up to whole bytes. The slice aliases the buffer.
func (b *BitBuffer) Bytes() []byte {
	return b.buf[:(b.n+7)>>3]
}

// WriteBits writes the top bits of v at the cursor and advances it.
// bits is clamped to 8; values below 1 write nothing.
func (b *BitBuffer) WriteBits(v byte, bits int) {
	if bits <= 0 {
		return
	}
	if bits > 8 {
		bits = 8
	}
	b.grow(b.pos + bits)

	idx, off := b.pos>>3, uint(b.pos&7)
	mask := byte(0xFF << uint(8-bits))
	v &= mask

	b.buf[idx] = b.buf[idx]&^(mask>>off) | v>>off
	if int(off)+bits > 8 {
		b.buf[idx+1] = b.buf[idx+1]&^(mask<<(8-off)) | v<<(8-off)
	}

	b.pos += bits
	if b.pos > b.n {
		b.n = b.pos
	}
}

// ReadBits reads up to bits bits (at most 8) from the cursor, left-justified in v.
// n is the number of bits actually read; n < bits means the end of the written data was reached.
func (b *BitBuffer) ReadBits(bits int) (v byte, n int) {
	if bits > 8 {
		bits = 8
	}
	avail := b.n - b.pos
	if bits <= 0 || avail <= 0 {
		return 0, 0
	}
	n = min(bits, avail)

	idx, off := b.pos>>3, uint(b.pos&7)
	v = b.buf[idx] << off
	if int(off)+n > 8 {
		v |= b.buf[idx+1] >> (8 - off)
	}
	v &= byte(0xFF << uint(8-n))

	b.pos += n
	return v, n
}

// Seek moves the cursor. whence follows io.Seeker; io.SeekEnd is relative to the written extent.
func (b *BitBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(b.n)
	default:
		return int64(b.pos), errors.New("swiftcodec: invalid seek whence")
	}
	next := base + offset
	if next < 0 {
		return int64(b.pos), ErrSeekRange
	}
	b.pos = int(next)
	return next, nil
}

// grow makes sure the backing slice covers the first bits bits, zero-filling new bytes.
func (b *BitBuffer) grow(bits int) {
	need := (bits + 7) >> 3
	if need <= len(b.buf) {
		return
	}
	if need <= cap(b.buf) {
		old := len(b.buf)
		b.buf = b.buf[:need]
		clear(b.buf[old:])
		return
	}
	b.buf = append(b.buf, make([]byte, need-len(b.buf))...)
}

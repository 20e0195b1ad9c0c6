package swiftcodec

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitBufferWriteRead(t *testing.T) {
	t.Parallel()

	bb := NewBitBuffer(0)
	bb.WriteBits(0b10100000, 3) // 101
	bb.WriteBits(0b11110000, 5) // 11110
	bb.WriteBits(0b01000000, 2) // 01

	require.Equal(t, 10, bb.Position())
	require.Equal(t, 10, bb.Len())
	require.Equal(t, 2, bb.ByteLen())
	assert.Equal(t, []byte{0b10111110, 0b01000000}, bb.Bytes())

	_, err := bb.Seek(0, io.SeekStart)
	require.NoError(t, err)

	v, n := bb.ReadBits(6)
	assert.Equal(t, 6, n)
	assert.Equal(t, byte(0b10111100), v)

	v, n = bb.ReadBits(8)
	assert.Equal(t, 4, n, "short read at end of data")
	assert.Equal(t, byte(0b10010000), v)

	v, n = bb.ReadBits(8)
	assert.Equal(t, 0, n)
	assert.Equal(t, byte(0), v)
}

func TestBitBufferCrossesByteBoundary(t *testing.T) {
	t.Parallel()

	bb := NewBitBuffer(1)
	for i := 0; i < 8; i++ {
		bb.WriteBits(0xFC, 6) // 111111
	}
	require.Equal(t, 48, bb.Len())
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, bb.Bytes())
}

func TestBitBufferFromAndSeek(t *testing.T) {
	t.Parallel()

	bb := NewBitBufferFrom([]byte{0xA5, 0x0F})
	require.Equal(t, 16, bb.Len())
	require.Equal(t, 0, bb.Position())

	v, n := bb.ReadBits(4)
	require.Equal(t, 4, n)
	assert.Equal(t, byte(0xA0), v)

	pos, err := bb.Seek(-1, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)

	v, n = bb.ReadBits(2)
	require.Equal(t, 2, n)
	assert.Equal(t, byte(0b00000000), v) // bits 3..4 of 10100101 are 0,0

	pos, err = bb.Seek(-3, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(13), pos)
	v, n = bb.ReadBits(8)
	assert.Equal(t, 3, n)
	assert.Equal(t, byte(0b11100000), v)

	_, err = bb.Seek(-20, io.SeekCurrent)
	assert.ErrorIs(t, err, ErrSeekRange)
	assert.Equal(t, 16, bb.Position(), "failed seek leaves the cursor alone")

	_, err = bb.Seek(0, 7)
	assert.Error(t, err)
}

func TestBitBufferOverwrite(t *testing.T) {
	t.Parallel()

	bb := NewBitBufferFrom([]byte{0x00, 0x00})
	_, err := bb.Seek(6, io.SeekStart)
	require.NoError(t, err)

	bb.WriteBits(0xFF, 4)
	assert.Equal(t, []byte{0x03, 0xC0}, bb.Bytes())
	assert.Equal(t, 16, bb.Len(), "overwriting inside the extent does not grow it")
	assert.Equal(t, 10, bb.Position())
}

func TestBitBufferIgnoresInvalidWidths(t *testing.T) {
	t.Parallel()

	bb := NewBitBuffer(0)
	bb.WriteBits(0xFF, 0)
	bb.WriteBits(0xFF, -3)
	assert.Equal(t, 0, bb.Len())

	bb.WriteBits(0xFF, 12)
	assert.Equal(t, 8, bb.Len(), "width is clamped to a byte")

	_, err := bb.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, n := bb.ReadBits(0)
	assert.Equal(t, 0, n)
}

func TestBitBufferSeekPastEndGrowsOnWrite(t *testing.T) {
	t.Parallel()

	bb := NewBitBuffer(0)
	_, err := bb.Seek(12, io.SeekStart)
	require.NoError(t, err)

	_, n := bb.ReadBits(4)
	assert.Equal(t, 0, n)

	bb.WriteBits(0x80, 1)
	assert.Equal(t, 13, bb.Len())
	assert.Equal(t, []byte{0x00, 0x08}, bb.Bytes())
}

package token

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/swiftcodec"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("swiftcodec round trip "), 40)

	tests := []struct {
		name string
		opts Options
	}{
		{name: "plain"},
		{name: "zstd", opts: Options{Compress: true}},
		{name: "zstdBest", opts: Options{Compress: true, Level: zstd.SpeedBestCompression}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tok, err := Encode(payload, tc.opts)
			require.NoError(t, err)

			got, err := Decode(tok, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestCompressedTokenIsShorter(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{0xAB}, 4096)
	plain, err := Encode(payload, Options{})
	require.NoError(t, err)
	packed, err := Encode(payload, Options{Compress: true})
	require.NoError(t, err)

	assert.Less(t, len(packed), len(plain))
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := Decode("A*", Options{})
	assert.ErrorIs(t, err, swiftcodec.ErrMalformedInput)

	tok, err := Encode([]byte("not a zstd frame"), Options{})
	require.NoError(t, err)
	_, err = Decode(tok, Options{Compress: true})
	assert.ErrorContains(t, err, "decompress token")
}

func TestIDs(t *testing.T) {
	t.Parallel()

	id, tok, err := NewID()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	back, err := ParseID(tok)
	require.NoError(t, err)
	assert.Equal(t, id, back)

	formatted, err := FormatID(id.String())
	require.NoError(t, err)
	assert.Equal(t, tok, formatted)

	_, err = ParseID(swiftcodec.EncodeBase62([]byte("short")))
	assert.ErrorContains(t, err, "does not hold a uuid")

	_, err = FormatID("not-a-uuid")
	assert.Error(t, err)
}

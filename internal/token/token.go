// Package token turns binary payloads and UUIDs into base62 tokens, optionally zstd-compressed.
package token

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/oleg578/swiftcodec"
)

// Options controls how payloads are packed.
type Options struct {
	// Compress runs the payload through zstd before base62 packing.
	Compress bool
	// Level is the zstd encoder level used when Compress is set.
	Level zstd.EncoderLevel
}

// Encode packs data into a base62 token.
func Encode(data []byte, opts Options) (string, error) {
	if opts.Compress {
		level := opts.Level
		if level == 0 {
			level = zstd.SpeedDefault
		}
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
		if err != nil {
			return "", fmt.Errorf("create zstd encoder: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("close zstd encoder: %w", err)
		}
	}
	return swiftcodec.EncodeBase62(data), nil
}

// Decode unpacks a token produced by Encode with the same options.
func Decode(tok string, opts Options) ([]byte, error) {
	data, err := swiftcodec.DecodeBase62(tok)
	if err != nil {
		return nil, err
	}
	if !opts.Compress {
		return data, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress token: %w", err)
	}
	return out, nil
}

// NewID returns a random UUID together with its base62 token.
func NewID() (uuid.UUID, string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("generate uuid: %w", err)
	}
	return id, swiftcodec.EncodeBase62(id[:]), nil
}

// ParseID decodes a base62 token back into the UUID it carries.
func ParseID(tok string) (uuid.UUID, error) {
	b, err := swiftcodec.DecodeBase62(tok)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token does not hold a uuid: %w", err)
	}
	return id, nil
}

// FormatID renders an existing UUID, given in any form uuid.Parse accepts, as a token.
func FormatID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse uuid: %w", err)
	}
	return swiftcodec.EncodeBase62(id[:]), nil
}

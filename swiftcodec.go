// # SwiftCodec: Lossless Text Codecs for Go
//
// SwiftCodec packs binary data into compact alphanumeric text and escapes or tokenizes strings for C, JSON, CSV, TSV and CDATA contexts. Every codec is an exact round trip and operates on in-memory values without shared mutable state.
//
// # Features
//
// - Base62 encoding with 5/6-bit variable-width groups (`EncodeBase62`, `DecodeBase62`), built on a bit-addressable `BitBuffer`, and positional base62 integers (`FormatBase62Int`, `ParseBase62Int`).
// - A generic single-pass escape engine (`Ruleset`) with predefined rule tables for C strings, JSON literals, CSV and tab-delimited fields, CDATA sections and format strings.
// - A backslash-escaping CSV/TSV dialect: line tokenizer (`Dialect.Split`), field unescaping and escaping, plus an in-memory `Reader` and `Writer` for whole documents.
// - Structured errors via `DecodeError`, `ParseError`, `ErrMalformedInput`, `ErrUnterminatedQuote` and `ErrFieldCount`.
// - Benchmarks, fuzz targets and table-driven unit tests for regression protection.
//
// # Dialect
//
// The delimited format is not RFC 4180. Quotes inside a field are written as `\"` rather than doubled, backslashes as `\\`, and fields are wrapped in double quotes only when they contain the delimiter, a quote or a backslash.
//
// # Getting Started
//
// The module path is `github.com/oleg578/swiftcodec`. The `swiftcodec` command in cmd/swiftcodec exposes the same codecs on the command line.
package swiftcodec

// Package textenc decodes legacy-encoded input into UTF-8 before it reaches the codecs.
package textenc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownEncoding is returned for encoding names that cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown input encoding")

// ErrUnknownNormalization is returned for normalization forms other than none, nfc, nfd, nfkc and nfkd.
var ErrUnknownNormalization = errors.New("unknown normalization form")

var named = map[string]encoding.Encoding{
	"":             unicode.UTF8BOM,
	"utf-8":        unicode.UTF8BOM,
	"utf8":         unicode.UTF8BOM,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Lookup resolves an encoding name. The names above take precedence over the
// WHATWG index, which maps latin1 to windows-1252.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := named[key]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// ValidateNormalization reports whether form is a supported normalization form.
func ValidateNormalization(form string) error {
	_, err := normForm(form)
	return err
}

func normForm(form string) (*norm.Form, error) {
	var f norm.Form
	switch strings.ToLower(form) {
	case "", "none":
		return nil, nil
	case "nfc":
		f = norm.NFC
	case "nfd":
		f = norm.NFD
	case "nfkc":
		f = norm.NFKC
	case "nfkd":
		f = norm.NFKD
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNormalization, form)
	}
	return &f, nil
}

// Decoder converts input bytes to normalized UTF-8 text.
type Decoder struct {
	enc  encoding.Encoding
	form *norm.Form
}

// NewDecoder builds a Decoder for the named encoding and normalization form.
func NewDecoder(encodingName, normalization string) (*Decoder, error) {
	enc, err := Lookup(encodingName)
	if err != nil {
		return nil, err
	}
	form, err := normForm(normalization)
	if err != nil {
		return nil, err
	}
	return &Decoder{enc: enc, form: form}, nil
}

// ReadAll reads r to the end and returns its content as UTF-8.
func (d *Decoder) ReadAll(r io.Reader) (string, error) {
	var t transform.Transformer = d.enc.NewDecoder()
	if d.form != nil {
		t = transform.Chain(t, *d.form)
	}
	b, err := io.ReadAll(transform.NewReader(r, t))
	if err != nil {
		return "", fmt.Errorf("decode input: %w", err)
	}
	return string(b), nil
}

// String decodes s, which holds raw bytes in the decoder's encoding.
func (d *Decoder) String(s string) (string, error) {
	return d.ReadAll(strings.NewReader(s))
}

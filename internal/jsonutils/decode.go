// Package jsonutils provides small helpers for decoding and encoding
// the JSON objects used throughout the JOSE packages (JOSE headers,
// claims sets, and JWK parameter dictionaries).
package jsonutils

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Unmarshal is same as [encoding/json.Unmarshal], but it decodes numbers
// as [json.Number] to avoid precision loss on large integers, and it
// rejects any non-whitespace trailing data after the JSON value.
func Unmarshal(data []byte, v any) error {
	src := bytes.NewReader(data)
	dec := json.NewDecoder(src)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}

	r := io.MultiReader(dec.Buffered(), src)
	var buf [16]byte
	for {
		n, err := r.Read(buf[:])
		if err != nil && err != io.EOF {
			return err
		}
		for _, b := range buf[:n] {
			switch b {
			case ' ', '\t', '\r', '\n':
				continue
			default:
				return fmt.Errorf("jsonutils: trailing data")
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

var b64 = base64.RawURLEncoding

// Decoder reads typed parameters out of a decoded JSON object,
// accumulating the first error encountered instead of failing on it.
type Decoder struct {
	pkg string
	raw map[string]any

	// pre-allocated base64 decoding buffers, reused across calls.
	src []byte
	dst []byte

	err error
}

// NewDecoder returns a new Decoder. raw must have been decoded by the
// json package (ideally via [Unmarshal], to avoid float64 precision
// loss on large integers).
func NewDecoder(pkg string, raw map[string]any) *Decoder {
	return &Decoder{pkg: pkg, raw: raw}
}

func (d *Decoder) grow(n int) {
	if cap(d.src) >= n {
		return
	}
	if n < 64 {
		n = 64
	}
	d.src = make([]byte, n)
	d.dst = make([]byte, b64.DecodedLen(n))
}

// Has reports whether the named parameter is present.
func (d *Decoder) Has(name string) bool {
	_, ok := d.raw[name]
	return ok
}

// GetString gets a string parameter. If absent, it returns ("", false)
// without recording an error.
func (d *Decoder) GetString(name string) (string, bool) {
	v, ok := d.raw[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		d.SaveError(&typeError{pkg: d.pkg, name: name, want: "string", got: reflect.TypeOf(v)})
		return "", false
	}
	return s, true
}

// MustString gets a required string parameter, recording an error if
// it is missing or has the wrong type.
func (d *Decoder) MustString(name string) string {
	if !d.Has(name) {
		d.SaveError(&missingError{pkg: d.pkg, name: name})
		return ""
	}
	s, _ := d.GetString(name)
	return s
}

// GetBytes gets a parameter encoded as base64url without padding.
func (d *Decoder) GetBytes(name string) ([]byte, bool) {
	s, ok := d.GetString(name)
	if !ok {
		return nil, false
	}
	return d.decodeString(s, name), true
}

// MustBytes gets a required base64url-encoded parameter.
func (d *Decoder) MustBytes(name string) []byte {
	if !d.Has(name) {
		d.SaveError(&missingError{pkg: d.pkg, name: name})
		return nil
	}
	s, ok := d.GetString(name)
	if !ok {
		return nil
	}
	return d.decodeString(s, name)
}

// GetBigInt gets a base64url big-endian unsigned-integer parameter.
func (d *Decoder) GetBigInt(name string) (*big.Int, bool) {
	b, ok := d.GetBytes(name)
	if !ok {
		return nil, false
	}
	return new(big.Int).SetBytes(b), true
}

// MustBigInt gets a required base64url big-endian unsigned-integer
// parameter.
func (d *Decoder) MustBigInt(name string) *big.Int {
	b := d.MustBytes(name)
	if d.err != nil {
		return nil
	}
	return new(big.Int).SetBytes(b)
}

func (d *Decoder) decodeString(s, name string) []byte {
	d.grow(len(s))
	src := d.src[:len(s)]
	copy(src, s)
	n, err := b64.Decode(d.dst, src)
	if err != nil {
		d.SaveError(&base64DecodeError{pkg: d.pkg, name: name, err: err})
		return nil
	}
	return d.dst[:n]
}

// Zero clears the decoder's scratch buffers. Callers materializing key
// bytes from a JWK should call it once the key has been built, so that
// decoded secret bytes don't linger in memory longer than necessary.
func (d *Decoder) Zero() {
	for i := range d.src {
		d.src[i] = 0
	}
	for i := range d.dst {
		d.dst[i] = 0
	}
}

// SaveError records err if no error has been recorded yet.
func (d *Decoder) SaveError(err error) {
	if err != nil && d.err == nil {
		d.err = err
	}
}

// Err returns the first error recorded during decoding, if any.
func (d *Decoder) Err() error {
	return d.err
}

type base64DecodeError struct {
	pkg  string
	name string
	err  error
}

func (e *base64DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to parse the parameter %s as base64url: %v", e.pkg, e.name, e.err)
}

func (e *base64DecodeError) Unwrap() error { return e.err }

type typeError struct {
	pkg  string
	name string
	want string
	got  reflect.Type
}

func (e *typeError) Error() string {
	return fmt.Sprintf("%s: want %s for the parameter %s but got %s", e.pkg, e.want, e.name, e.got)
}

type missingError struct {
	pkg  string
	name string
}

func (e *missingError) Error() string {
	return fmt.Sprintf("%s: required parameter %s is missing", e.pkg, e.name)
}

// Package jws handles the JWS Compact Serialization of RFC 7515,
// restricted to a single signature over a protected header: no JWS
// JSON Serialization, no unprotected headers, no "b64"/"crit"
// (RFC 7797) payload-encoding opt-out.
package jws

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spoolauth/jose/internal/jsonutils"
	"github.com/spoolauth/jose/jwa"
	"github.com/spoolauth/jose/sig"
)

// shorthand for base64.RawURLEncoding, the encoding RFC 7515 Appendix
// C mandates for every Compact Serialization segment.
var b64 = base64.RawURLEncoding

// Header is a JOSE header. Only the "alg" and "typ" parameters are
// interpreted; everything else decoded from the header object is
// preserved verbatim in Raw and round-tripped by MarshalJSON.
type Header struct {
	// Raw is the JSON object the header was decoded from. JSON
	// numbers are preserved as json.Number to avoid precision loss.
	Raw map[string]any

	alg jwa.SignatureAlgorithm
	typ string
}

// NewHeader returns a new, empty Header.
func NewHeader() *Header {
	return &Header{Raw: map[string]any{}}
}

// Algorithm is RFC 7515 Section 4.1.1, the "alg" (Algorithm) Header Parameter.
func (h *Header) Algorithm() jwa.SignatureAlgorithm {
	return h.alg
}

// SetAlgorithm sets the "alg" (Algorithm) Header Parameter.
func (h *Header) SetAlgorithm(alg jwa.SignatureAlgorithm) {
	h.alg = alg
}

// Type is RFC 7515 Section 4.1.9, the "typ" (Type) Header Parameter.
func (h *Header) Type() string {
	return h.typ
}

// SetType sets the "typ" (Type) Header Parameter.
func (h *Header) SetType(typ string) {
	h.typ = typ
}

var _ json.Unmarshaler = (*Header)(nil)

// UnmarshalJSON implements [encoding/json.Unmarshaler]. It rejects a
// header whose "alg" names an algorithm this module doesn't
// recognize, rather than deferring the failure to signature
// verification.
func (h *Header) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := jsonutils.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("jws: failed to parse JOSE header: %w", err)
	}
	header, err := decodeHeader(raw)
	if err != nil {
		return err
	}
	*h = *header
	return nil
}

var _ json.Marshaler = (*Header)(nil)

// MarshalJSON implements [encoding/json.Marshaler].
func (h *Header) MarshalJSON() ([]byte, error) {
	raw, err := encodeHeader(h)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

func decodeHeader(raw map[string]any) (*Header, error) {
	d := jsonutils.NewDecoder("jws", raw)
	h := &Header{Raw: raw}

	alg := d.MustString(jwa.AlgorithmKey)
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("jws: failed to parse JOSE header: %w", err)
	}
	if !jwa.SignatureAlgorithm(alg).Known() {
		return nil, fmt.Errorf("jws: failed to parse JOSE header: unknown algorithm %q", alg)
	}
	h.alg = jwa.SignatureAlgorithm(alg)
	h.typ, _ = d.GetString(jwa.TypeKey)

	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("jws: failed to parse JOSE header: %w", err)
	}
	return h, nil
}

func encodeHeader(h *Header) (map[string]any, error) {
	if h == nil {
		return nil, nil
	}
	raw := make(map[string]any, len(h.Raw)+2)
	for k, v := range h.Raw {
		raw[k] = v
	}
	e := jsonutils.NewEncoder(raw)
	e.Set(jwa.AlgorithmKey, string(h.alg))
	if h.typ != "" {
		e.Set(jwa.TypeKey, h.typ)
	}
	if err := e.Err(); err != nil {
		return nil, err
	}
	return e.Data(), nil
}

// Message is a parsed or about-to-be-signed JWS with exactly one
// signature, the Compact Serialization's only supported shape.
type Message struct {
	Header *Header

	payload      []byte
	rawHeader    []byte
	b64signature []byte
	signature    []byte
}

// NewMessage returns a new, unsigned Message over payload.
func NewMessage(header *Header, payload []byte) *Message {
	return &Message{
		Header:  header,
		payload: payload,
	}
}

// Payload returns the message payload.
func (msg *Message) Payload() []byte {
	return msg.payload
}

// Signature returns the raw (not base64url-encoded) signature, or nil
// if the message has not been signed.
func (msg *Message) Signature() []byte {
	return msg.signature
}

// ParseCompact parses a JWS Compact Serialization: three base64url
// segments separated by ".", as produced by Compact.
func ParseCompact(data []byte) (*Message, error) {
	data = append([]byte(nil), data...)

	idx1 := bytes.IndexByte(data, '.')
	if idx1 < 0 {
		return nil, errors.New("jws: failed to parse JWS: invalid format")
	}
	idx2 := bytes.IndexByte(data[idx1+1:], '.')
	if idx2 < 0 {
		return nil, errors.New("jws: failed to parse JWS: invalid format")
	}
	idx2 += idx1 + 1

	rawHeader := data[:idx1]
	b64payload := data[idx1+1 : idx2]
	b64signature := data[idx2+1:]

	headerJSON, err := b64Decode(rawHeader)
	if err != nil {
		return nil, fmt.Errorf("jws: failed to parse JOSE header: %w", err)
	}
	var h Header
	if err := h.UnmarshalJSON(headerJSON); err != nil {
		return nil, err
	}

	payload, err := b64Decode(b64payload)
	if err != nil {
		return nil, fmt.Errorf("jws: failed to parse payload: %w", err)
	}

	signature, err := b64Decode(b64signature)
	if err != nil {
		return nil, fmt.Errorf("jws: failed to parse signature: %w", err)
	}

	return &Message{
		Header:       &h,
		payload:      payload,
		rawHeader:    rawHeader,
		b64signature: b64signature,
		signature:    signature,
	}, nil
}

// Sign signs the message with key, overwriting any previous signature.
func (msg *Message) Sign(key sig.SigningKey) error {
	rawHeaderJSON, err := msg.Header.MarshalJSON()
	if err != nil {
		return err
	}
	rawHeader := b64Encode(rawHeaderJSON)

	signature, err := key.Sign(signingInput(rawHeader, msg.payload))
	if err != nil {
		return fmt.Errorf("jws: failed to sign: %w", err)
	}

	msg.rawHeader = rawHeader
	msg.signature = signature
	msg.b64signature = b64Encode(signature)
	return nil
}

// Verify reports whether the message's signature is valid for key.
func (msg *Message) Verify(key sig.SigningKey) error {
	return key.Verify(signingInput(msg.rawHeader, msg.payload), msg.signature)
}

// Compact encodes the message into its Compact Serialization. The
// message must have been signed, or parsed from one, first.
func (msg *Message) Compact() ([]byte, error) {
	if msg.rawHeader == nil {
		return nil, errors.New("jws: message has not been signed")
	}
	b64payload := b64Encode(msg.payload)

	buf := make([]byte, 0, len(msg.rawHeader)+len(b64payload)+len(msg.b64signature)+2)
	buf = append(buf, msg.rawHeader...)
	buf = append(buf, '.')
	buf = append(buf, b64payload...)
	buf = append(buf, '.')
	buf = append(buf, msg.b64signature...)
	return buf, nil
}

func signingInput(rawHeader, payload []byte) []byte {
	b64payload := b64Encode(payload)
	buf := make([]byte, 0, len(rawHeader)+len(b64payload)+1)
	buf = append(buf, rawHeader...)
	buf = append(buf, '.')
	buf = append(buf, b64payload...)
	return buf
}

func b64Decode(src []byte) ([]byte, error) {
	dst := make([]byte, b64.DecodedLen(len(src)))
	n, err := b64.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

func b64Encode(src []byte) []byte {
	dst := make([]byte, b64.EncodedLen(len(src)))
	b64.Encode(dst, src)
	return dst
}

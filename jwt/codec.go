package jwt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spoolauth/jose/internal/jsonutils"
	"github.com/spoolauth/jose/jwa"
	"github.com/spoolauth/jose/jwk"
	"github.com/spoolauth/jose/jws"
)

// shorthand for base64.RawURLEncoding, the encoding every Compact
// Serialization segment uses.
var b64 = base64.RawURLEncoding

// maxSignatureLen bounds how large a signature this library will
// produce or accept on import; nothing HS/RS/ES produces comes close,
// so anything past this is almost certainly a malformed or hostile
// token.
const maxSignatureLen = 2048

// ErrSigningWithNone is returned by Sign when asked to sign with the
// "none" algorithm. Producing an unsecured token is never allowed.
var ErrSigningWithNone = errors.New("jwt: refusing to sign with the \"none\" algorithm")

// Sign writes alg into the token's header, serializes the header and
// claims, computes a new signature with key, and stores it,
// discarding any prior signature first. alg must not be NONE.
func (t *Token) Sign(alg jwa.SignatureAlgorithm, key *jwk.Key) error {
	t.signature = nil
	t.alg = jwa.None
	t.header.SetAlgorithm(jwa.None)

	if alg == jwa.None {
		return ErrSigningWithNone
	}
	if !alg.Known() {
		return newUnknownAlgorithmError(alg)
	}

	claimsText, err := encodeClaims(t.claims)
	if err != nil {
		return fmt.Errorf("jwt: failed to encode claims: %w", err)
	}

	t.header.SetAlgorithm(alg)
	headerText, err := t.header.MarshalJSON()
	if err != nil {
		t.header.SetAlgorithm(jwa.None)
		return fmt.Errorf("jwt: failed to encode header: %w", err)
	}

	signingKey := alg.New().NewSigningKey(key)
	signature, err := signingKey.Sign(signingInput(headerText, claimsText))
	if err != nil {
		t.header.SetAlgorithm(jwa.None)
		return fmt.Errorf("jwt: failed to sign: %w", err)
	}
	if len(signature) > maxSignatureLen {
		t.header.SetAlgorithm(jwa.None)
		return fmt.Errorf("jwt: signature too long: %d bytes", len(signature))
	}

	t.headerText = b64Encode(headerText)
	t.claimsText = b64Encode(claimsText)
	t.alg = alg
	t.signature = signature
	return nil
}

// VerifyOption customizes HasValidSignature.
type VerifyOption func(*verifyOptions) error

type verifyOptions struct {
	allowUnsecured bool
}

// AllowUnsecured permits HasValidSignature to return true for a token
// whose algorithm is NONE and whose signature is empty. Without this
// option, a NONE-algorithm token never verifies: callers must opt in
// explicitly before an unsecured token is treated as valid.
func AllowUnsecured() VerifyOption {
	return func(o *verifyOptions) error {
		o.allowUnsecured = true
		return nil
	}
}

// HasValidSignature reports whether the token's cached signing input
// verifies against key under its recorded algorithm. It never panics
// and never returns an error: any internal failure is reported as
// false.
func (t *Token) HasValidSignature(key *jwk.Key, opts ...VerifyOption) bool {
	var o verifyOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return false
		}
	}

	if t.alg == jwa.None {
		if !o.allowUnsecured {
			return false
		}
		return len(t.signature) == 0
	}
	if t.headerText == nil || t.claimsText == nil || key == nil {
		return false
	}
	if !t.alg.Available() {
		return false
	}

	signingKey := t.alg.New().NewSigningKey(key)
	input := make([]byte, 0, len(t.headerText)+len(t.claimsText)+1)
	input = append(input, t.headerText...)
	input = append(input, '.')
	input = append(input, t.claimsText...)
	return signingKey.Verify(input, t.signature) == nil
}

// ExportString serializes the token into its JWS Compact
// Serialization: base64url(header) "." base64url(claims) "."
// base64url(signature). A token that has never been signed exports
// in its current NONE form, with an empty trailing segment.
func (t *Token) ExportString() (string, error) {
	headerText := t.headerText
	claimsText := t.claimsText
	if headerText == nil || claimsText == nil {
		claimsTextRaw, err := encodeClaims(t.claims)
		if err != nil {
			return "", fmt.Errorf("jwt: failed to encode claims: %w", err)
		}
		headerTextRaw, err := t.header.MarshalJSON()
		if err != nil {
			return "", fmt.Errorf("jwt: failed to encode header: %w", err)
		}
		headerText = b64Encode(headerTextRaw)
		claimsText = b64Encode(claimsTextRaw)
	}

	b64signature := b64Encode(t.signature)
	buf := make([]byte, 0, len(headerText)+len(claimsText)+len(b64signature)+2)
	buf = append(buf, headerText...)
	buf = append(buf, '.')
	buf = append(buf, claimsText...)
	buf = append(buf, '.')
	buf = append(buf, b64signature...)
	return string(buf), nil
}

// ImportString parses a JWS Compact Serialization into a new,
// unverified Token. Signature verification is deferred to an
// explicit HasValidSignature call. An "alg" this library doesn't
// recognize is rejected at this point (not silently mapped to NONE).
// NONE requires an empty signature segment, and any other algorithm
// requires a non-empty one; a token that disagrees is rejected.
func ImportString(text string) (*Token, error) {
	data := []byte(text)

	idx1 := bytes.IndexByte(data, '.')
	if idx1 < 0 {
		return nil, errors.New("jwt: failed to parse: invalid format")
	}
	idx2 := bytes.IndexByte(data[idx1+1:], '.')
	if idx2 < 0 {
		return nil, errors.New("jwt: failed to parse: invalid format")
	}
	idx2 += idx1 + 1
	if bytes.IndexByte(data[idx2+1:], '.') >= 0 {
		return nil, errors.New("jwt: failed to parse: invalid format")
	}

	rawHeader := data[:idx1]
	rawClaims := data[idx1+1 : idx2]
	rawSignature := data[idx2+1:]

	headerJSON, err := b64Decode(rawHeader)
	if err != nil {
		return nil, fmt.Errorf("jwt: failed to parse header: %w", err)
	}
	var header jws.Header
	if err := header.UnmarshalJSON(headerJSON); err != nil {
		return nil, fmt.Errorf("jwt: failed to parse header: %w", err)
	}

	claimsJSON, err := b64Decode(rawClaims)
	if err != nil {
		return nil, fmt.Errorf("jwt: failed to parse claims: %w", err)
	}
	claims, err := decodeClaims(claimsJSON)
	if err != nil {
		return nil, err
	}

	signature, err := b64Decode(rawSignature)
	if err != nil {
		return nil, fmt.Errorf("jwt: failed to parse signature: %w", err)
	}
	if len(signature) > maxSignatureLen {
		return nil, fmt.Errorf("jwt: signature too long: %d bytes", len(signature))
	}

	alg := header.Algorithm()
	if (alg == jwa.None) != (len(signature) == 0) {
		return nil, errors.New("jwt: invalid token: alg and signature presence disagree")
	}

	return &Token{
		header:     &header,
		headerText: rawHeader,
		claims:     claims,
		claimsText: rawClaims,
		alg:        alg,
		signature:  signature,
	}, nil
}

func encodeClaims(claims map[string]any) ([]byte, error) {
	raw := make(map[string]any, len(claims))
	for k, v := range claims {
		raw[k] = v
	}
	return json.Marshal(raw)
}

func decodeClaims(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := jsonutils.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("jwt: failed to parse claims: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func signingInput(headerText, claimsText []byte) []byte {
	h := b64Encode(headerText)
	c := b64Encode(claimsText)
	buf := make([]byte, 0, len(h)+len(c)+1)
	buf = append(buf, h...)
	buf = append(buf, '.')
	buf = append(buf, c...)
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

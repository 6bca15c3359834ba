// Package jwt handles JSON Web Tokens (RFC 7519) carried in the JWS
// Compact Serialization. It decodes and signs tokens; it does not
// interpret claim semantics such as "exp", "nbf", "iss", or "aud" —
// callers that need those checks apply them to the decoded claims.
package jwt

import (
	"encoding/json"
	"fmt"

	"github.com/spoolauth/jose/jwa"
	"github.com/spoolauth/jose/jws"
)

// DefaultType is the "typ" header value New uses when none is given.
const DefaultType = "JWT"

// Token is a decoded or about-to-be-signed JSON Web Token.
//
// header and claims are mutable; headerText and claimsText cache the
// exact bytes that were last signed (or parsed), so that verification
// rehashes precisely what was signed rather than a re-serialization
// that might differ in member order or whitespace. Any claim mutation
// clears claimsText; Sign recomputes and repopulates both caches.
type Token struct {
	header     *jws.Header
	headerText []byte

	claims     map[string]any
	claimsText []byte

	alg       jwa.SignatureAlgorithm
	signature []byte
}

// New returns an empty, unsigned Token. typ defaults to "JWT" when
// empty.
func New(typ string) *Token {
	if typ == "" {
		typ = DefaultType
	}
	h := jws.NewHeader()
	h.SetType(typ)
	h.SetAlgorithm(jwa.None)
	return &Token{
		header: h,
		claims: map[string]any{},
		alg:    jwa.None,
	}
}

// Header returns the token's JOSE header.
func (t *Token) Header() *jws.Header {
	return t.header
}

// GetAlgorithm returns the token's current "alg".
func (t *Token) GetAlgorithm() jwa.SignatureAlgorithm {
	return t.alg
}

// GetClaims returns the token's claims set. The returned map is a
// live handle: mutating it directly bypasses claimsText invalidation
// and is not supported; use the SetClaim* accessors instead.
func (t *Token) GetClaims() map[string]any {
	return t.claims
}

// ClaimType identifies the JSON type of a claim value.
type ClaimType int

const (
	// ClaimTypeNull is the type of a claim that is absent, or whose
	// value is JSON null.
	ClaimTypeNull ClaimType = iota
	ClaimTypeString
	ClaimTypeNumber
	ClaimTypeBoolean
	ClaimTypeArray
	ClaimTypeObject
)

func (ct ClaimType) String() string {
	switch ct {
	case ClaimTypeString:
		return "string"
	case ClaimTypeNumber:
		return "number"
	case ClaimTypeBoolean:
		return "boolean"
	case ClaimTypeArray:
		return "array"
	case ClaimTypeObject:
		return "object"
	default:
		return "null"
	}
}

// GetClaimType reports the type of the named claim, ClaimTypeNull if
// it is absent.
func (t *Token) GetClaimType(name string) ClaimType {
	v, ok := t.claims[name]
	if !ok {
		return ClaimTypeNull
	}
	return claimTypeOf(v)
}

func claimTypeOf(v any) ClaimType {
	switch v.(type) {
	case nil:
		return ClaimTypeNull
	case string:
		return ClaimTypeString
	case float64, json.Number:
		return ClaimTypeNumber
	case bool:
		return ClaimTypeBoolean
	case []any:
		return ClaimTypeArray
	case map[string]any:
		return ClaimTypeObject
	default:
		return ClaimTypeNull
	}
}

// GetClaimString returns the named claim as a string, or "" if it is
// absent or not a string.
func (t *Token) GetClaimString(name string) string {
	s, _ := t.claims[name].(string)
	return s
}

// GetClaimNumber returns the named claim as a float64, or 0 if it is
// absent or not a number.
func (t *Token) GetClaimNumber(name string) float64 {
	switch v := t.claims[name].(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case float64:
		return v
	default:
		return 0
	}
}

// GetClaimValue returns the named claim's raw decoded value (nil if
// absent).
func (t *Token) GetClaimValue(name string) any {
	return t.claims[name]
}

// SetClaimString sets a string-valued claim, invalidating claimsText.
func (t *Token) SetClaimString(name, v string) {
	t.setClaim(name, v)
}

// SetClaimNumber sets a number-valued claim, invalidating claimsText.
func (t *Token) SetClaimNumber(name string, v float64) {
	t.setClaim(name, v)
}

// SetClaimValue sets a claim to any JSON-representable value (string,
// float64, bool, nil, []any, or map[string]any), invalidating
// claimsText.
func (t *Token) SetClaimValue(name string, v any) {
	t.setClaim(name, v)
}

func (t *Token) setClaim(name string, v any) {
	t.claims[name] = v
	t.invalidate()
}

// invalidate clears the cached signing text and the signature, and
// resets alg to none: a mutated, unsigned token has no valid
// signature to present, so it must not look signed.
func (t *Token) invalidate() {
	t.claimsText = nil
	t.headerText = nil
	t.signature = nil
	t.alg = jwa.None
	t.header.SetAlgorithm(jwa.None)
}

func newUnknownAlgorithmError(alg jwa.SignatureAlgorithm) error {
	return fmt.Errorf("jwt: unsupported algorithm: %q", alg)
}

// Package jwa implements the algorithm identifiers of RFC 7518 that
// this module supports: the HMAC, RSASSA-PKCS1-v1.5, and ECDSA
// signature families, plus the "none" parse state.
package jwa

import "github.com/spoolauth/jose/sig"

// SignatureAlgorithm is the "alg" (Algorithm) Header Parameter of a
// JWS, restricted to the closed, ten-member set this module supports.
type SignatureAlgorithm string

const (
	SignatureAlgorithmUnknown SignatureAlgorithm = ""

	// None is the recognized-but-unusable "none" algorithm. It is a
	// valid parse state; it is never produced by Sign.
	// import github.com/spoolauth/jose/jwa/none
	None SignatureAlgorithm = "none"

	// HS256 is HMAC using SHA-256.
	// import github.com/spoolauth/jose/jwa/hs
	HS256 SignatureAlgorithm = "HS256"

	// HS384 is HMAC using SHA-384.
	// import github.com/spoolauth/jose/jwa/hs
	HS384 SignatureAlgorithm = "HS384"

	// HS512 is HMAC using SHA-512.
	// import github.com/spoolauth/jose/jwa/hs
	HS512 SignatureAlgorithm = "HS512"

	// RS256 is RSASSA-PKCS1-v1_5 using SHA-256.
	// import github.com/spoolauth/jose/jwa/rs
	RS256 SignatureAlgorithm = "RS256"

	// RS384 is RSASSA-PKCS1-v1_5 using SHA-384.
	// import github.com/spoolauth/jose/jwa/rs
	RS384 SignatureAlgorithm = "RS384"

	// RS512 is RSASSA-PKCS1-v1_5 using SHA-512.
	// import github.com/spoolauth/jose/jwa/rs
	RS512 SignatureAlgorithm = "RS512"

	// ES256 is ECDSA using P-256 and SHA-256.
	// import github.com/spoolauth/jose/jwa/es
	ES256 SignatureAlgorithm = "ES256"

	// ES384 is ECDSA using P-384 and SHA-384.
	// import github.com/spoolauth/jose/jwa/es
	ES384 SignatureAlgorithm = "ES384"

	// ES512 is ECDSA using P-521 and SHA-512.
	// import github.com/spoolauth/jose/jwa/es
	ES512 SignatureAlgorithm = "ES512"
)

func (alg SignatureAlgorithm) String() string {
	if alg == SignatureAlgorithmUnknown {
		return "(unknown)"
	}
	return string(alg)
}

// New returns the signature engine registered for alg. It panics if
// alg has no registered engine; callers that accept untrusted alg
// strings should check [SignatureAlgorithm.Available] first.
func (alg SignatureAlgorithm) New() sig.Algorithm {
	f := signatureAlgorithms[alg]
	if f == nil {
		panic("jwa: requested signature algorithm " + alg.String() + " is not available")
	}
	return f()
}

// Available reports whether alg is one of the ten recognized
// identifiers and has a registered signature engine.
func (alg SignatureAlgorithm) Available() bool {
	return signatureAlgorithms[alg] != nil
}

// Known reports whether alg is one of the ten recognized identifiers,
// whether or not its package has been imported for side effects.
func (alg SignatureAlgorithm) Known() bool {
	_, ok := signatureAlgorithms[alg]
	return ok
}

var signatureAlgorithms = map[SignatureAlgorithm]func() sig.Algorithm{
	None:  nil,
	HS256: nil,
	HS384: nil,
	HS512: nil,
	RS256: nil,
	RS384: nil,
	RS512: nil,
	ES256: nil,
	ES384: nil,
	ES512: nil,
}

// RegisterSignatureAlgorithm registers the engine constructor for a
// known algorithm identifier. It is called from the init function of
// each jwa/{hs,rs,es,none} subpackage and panics on unknown or
// duplicate registration, mirroring a plugin registry.
func RegisterSignatureAlgorithm(alg SignatureAlgorithm, f func() sig.Algorithm) {
	g, ok := signatureAlgorithms[alg]
	if !ok {
		panic("jwa: RegisterSignatureAlgorithm of unknown algorithm " + alg.String())
	}
	if g != nil {
		panic("jwa: RegisterSignatureAlgorithm of already registered algorithm " + alg.String())
	}
	signatureAlgorithms[alg] = f
}

// KeyType is the "kty" (Key Type) Parameter of a JWK, restricted to
// the three types this module materializes keys for.
type KeyType string

const (
	KeyTypeUnknown KeyType = ""

	// EC is Elliptic Curve.
	EC KeyType = "EC"

	// RSA is RSA.
	RSA KeyType = "RSA"

	// Oct is an octet sequence, used for symmetric (HMAC) keys.
	Oct KeyType = "oct"
)

func (kty KeyType) String() string {
	if kty == KeyTypeUnknown {
		return "(unknown)"
	}
	return string(kty)
}

// EllipticCurve is the "crv" (Curve) Parameter of an EC JWK.
type EllipticCurve string

const (
	EllipticCurveUnknown EllipticCurve = ""

	// P256 is NIST P-256, used with ES256.
	P256 EllipticCurve = "P-256"

	// P384 is NIST P-384, used with ES384.
	P384 EllipticCurve = "P-384"

	// P521 is NIST P-521, used with ES512.
	P521 EllipticCurve = "P-521"
)

func (crv EllipticCurve) String() string {
	if crv == EllipticCurveUnknown {
		return "(unknown)"
	}
	return string(crv)
}

// JOSE header and JWK parameter names used by this module.
// https://www.iana.org/assignments/jose/jose.xhtml
const (
	AlgorithmKey = "alg"
	TypeKey      = "typ"
	KeyIDKey     = "kid"
	KeyTypeKey   = "kty"
)

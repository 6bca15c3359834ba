// Package jwk handles JSON Web Keys (RFC 7517), restricted to the
// three key types this module signs and verifies with: symmetric
// octet sequences ("oct") for HMAC, RSA ("RSA"), and elliptic-curve
// ("EC") keys on P-256, P-384, and P-521.
package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/spoolauth/jose/internal/jsonutils"
	"github.com/spoolauth/jose/jwa"
)

// Key is a JSON Web Key limited to the "kty" values oct, RSA, and EC.
// A Key may hold a private key, a public key, or both. Certificates,
// key-usage hints, and other RFC 7517 parameters are not interpreted;
// they are kept only as uninterpreted entries of Raw.
type Key struct {
	kty jwa.KeyType
	kid string

	priv crypto.PrivateKey
	pub  crypto.PublicKey

	// Raw holds the JSON object the key was decoded from, including
	// any parameters this package doesn't otherwise interpret. JSON
	// numbers are preserved as json.Number to avoid precision loss.
	// MarshalJSON starts from a copy of Raw and overwrites the
	// parameters it recomputes from priv/pub.
	Raw map[string]any
}

// KeyType is RFC 7517 Section 4.1, the "kty" (Key Type) Parameter.
func (key *Key) KeyType() jwa.KeyType {
	return key.kty
}

// KeyID is RFC 7517 Section 4.5, the "kid" (Key ID) Parameter.
func (key *Key) KeyID() string {
	return key.kid
}

// SetKeyID sets the "kid" parameter.
func (key *Key) SetKeyID(kid string) {
	key.kid = kid
}

// PrivateKey returns the private key, or nil if the Key holds only a
// public key. It implements [github.com/spoolauth/jose/sig.Key].
func (key *Key) PrivateKey() crypto.PrivateKey {
	return key.priv
}

// PublicKey returns the public key, or nil for a symmetric key. It
// implements [github.com/spoolauth/jose/sig.Key].
func (key *Key) PublicKey() crypto.PublicKey {
	return key.pub
}

// NewPrivateKey wraps a Go private key (*ecdsa.PrivateKey,
// *rsa.PrivateKey, or a symmetric []byte secret) as a Key.
func NewPrivateKey(key crypto.PrivateKey) (*Key, error) {
	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		if k == nil {
			return nil, fmt.Errorf("jwk: nil %T", k)
		}
		return &Key{kty: jwa.EC, priv: k, pub: &k.PublicKey}, nil
	case *rsa.PrivateKey:
		if k == nil {
			return nil, fmt.Errorf("jwk: nil %T", k)
		}
		return &Key{kty: jwa.RSA, priv: k, pub: &k.PublicKey}, nil
	case []byte:
		return &Key{kty: jwa.Oct, priv: append([]byte(nil), k...)}, nil
	default:
		return nil, fmt.Errorf("jwk: unsupported private key type: %T", key)
	}
}

// NewPublicKey wraps a Go public key (*ecdsa.PublicKey or
// *rsa.PublicKey) as a Key. Symmetric keys have no public half.
func NewPublicKey(key crypto.PublicKey) (*Key, error) {
	switch k := key.(type) {
	case *ecdsa.PublicKey:
		if k == nil {
			return nil, fmt.Errorf("jwk: nil %T", k)
		}
		return &Key{kty: jwa.EC, pub: k}, nil
	case *rsa.PublicKey:
		if k == nil {
			return nil, fmt.Errorf("jwk: nil %T", k)
		}
		return &Key{kty: jwa.RSA, pub: k}, nil
	default:
		return nil, fmt.Errorf("jwk: unsupported public key type: %T", key)
	}
}

// ParseKey parses a JWK from its JSON encoding.
func ParseKey(data []byte) (*Key, error) {
	var raw map[string]any
	if err := jsonutils.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return ParseMap(raw)
}

// ParseMap parses a JWK already decoded into a map, as produced by
// [github.com/spoolauth/jose/internal/jsonutils.Unmarshal].
func ParseMap(raw map[string]any) (*Key, error) {
	d := jsonutils.NewDecoder("jwk", raw)
	key := &Key{Raw: raw}

	kty := d.MustString("kty")
	key.kty = jwa.KeyType(kty)
	key.kid, _ = d.GetString("kid")
	if err := d.Err(); err != nil {
		return nil, err
	}

	switch key.kty {
	case jwa.EC:
		parseEC(d, key)
	case jwa.RSA:
		parseRSA(d, key)
	case jwa.Oct:
		parseSymmetric(d, key)
	default:
		return nil, fmt.Errorf("jwk: unsupported key type: %q", kty)
	}
	d.Zero()
	if err := d.Err(); err != nil {
		return nil, err
	}
	return key, nil
}

var _ json.Unmarshaler = (*Key)(nil)

// UnmarshalJSON implements [encoding/json.Unmarshaler].
func (key *Key) UnmarshalJSON(data []byte) error {
	k, err := ParseKey(data)
	if err != nil {
		return err
	}
	*key = *k
	return nil
}

var _ json.Marshaler = (*Key)(nil)

// MarshalJSON implements [encoding/json.Marshaler].
func (key *Key) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(key.Raw)+1)
	for k, v := range key.Raw {
		raw[k] = v
	}
	e := jsonutils.NewEncoder(raw)
	e.Set(jwa.KeyTypeKey, key.kty.String())
	if key.kid != "" {
		e.Set(jwa.KeyIDKey, key.kid)
	}

	switch key.kty {
	case jwa.EC:
		pub, ok := key.pub.(*ecdsa.PublicKey)
		if !ok {
			return nil, newUnknownKeyTypeError(key)
		}
		priv, _ := key.priv.(*ecdsa.PrivateKey)
		encodeEC(e, priv, pub)
	case jwa.RSA:
		pub, ok := key.pub.(*rsa.PublicKey)
		if !ok {
			return nil, newUnknownKeyTypeError(key)
		}
		priv, _ := key.priv.(*rsa.PrivateKey)
		encodeRSA(e, priv, pub)
	case jwa.Oct:
		secret, ok := key.priv.([]byte)
		if !ok {
			return nil, newUnknownKeyTypeError(key)
		}
		encodeSymmetric(e, secret)
	default:
		return nil, newUnknownKeyTypeError(key)
	}

	if err := e.Err(); err != nil {
		return nil, err
	}
	return json.Marshal(e.Data())
}

type unknownKeyTypeError struct {
	kty  jwa.KeyType
	pub  reflect.Type
	priv reflect.Type
}

func newUnknownKeyTypeError(key *Key) *unknownKeyTypeError {
	return &unknownKeyTypeError{
		kty:  key.kty,
		pub:  reflect.TypeOf(key.pub),
		priv: reflect.TypeOf(key.priv),
	}
}

func (err *unknownKeyTypeError) Error() string {
	return fmt.Sprintf("jwk: key type %q doesn't match private/public key types %v, %v", err.kty, err.priv, err.pub)
}

// Package none registers a signature engine for the "none" algorithm
// identifier that never signs. jws.ParseCompact and jwt.ImportString
// recognize "none" whether or not this package is imported; the
// registration only matters to callers that obtain an engine through
// jwa.None.New().
package none

import (
	"errors"

	"github.com/spoolauth/jose/jwa"
	"github.com/spoolauth/jose/sig"
)

// ErrUnsecured is returned by Sign for the none algorithm. Producing
// an unsecured JWS is never allowed by this module.
var ErrUnsecured = errors.New("none: refusing to sign with the \"none\" algorithm")

var algo = &algorithm{}

// New returns the "none" pseudo-algorithm. Its signing key always
// rejects Sign; Verify only accepts a zero-length signature.
func New() sig.Algorithm {
	return algo
}

func init() {
	jwa.RegisterSignatureAlgorithm(jwa.None, New)
}

var _ sig.Algorithm = (*algorithm)(nil)

type algorithm struct{}

var _ sig.SigningKey = (*signingKey)(nil)

type signingKey struct{}

// NewSigningKey implements [github.com/spoolauth/jose/sig.Algorithm].
// The none algorithm takes no key at all: any non-nil key is invalid.
func (alg *algorithm) NewSigningKey(key sig.Key) sig.SigningKey {
	if key != nil {
		return sig.NewInvalidKey("none", key, nil)
	}
	return &signingKey{}
}

// Sign implements [github.com/spoolauth/jose/sig.SigningKey]. It
// always fails: this module never produces an unsecured JWS.
func (key *signingKey) Sign(payload []byte) (signature []byte, err error) {
	return nil, ErrUnsecured
}

// Verify implements [github.com/spoolauth/jose/sig.SigningKey]. A
// "none"-algorithm JWS only verifies against an empty signature
// segment. Verify itself applies no opt-in check; the opt-in is
// enforced by jwt.HasValidSignature (see jwt.AllowUnsecured), which
// handles "none" tokens without calling this engine.
func (key *signingKey) Verify(payload, signature []byte) error {
	if len(signature) != 0 {
		return sig.ErrSignatureMismatch
	}
	return nil
}

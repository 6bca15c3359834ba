package jwk

import (
	"crypto/rsa"
	"fmt"
	"math"
	"math/big"

	"github.com/spoolauth/jose/internal/jsonutils"
	"github.com/spoolauth/jose/jwa"
)

// parseRSA decodes RFC 7518 Section 6.3, Parameters for RSA Keys. It
// supports the two-prime form only; multi-prime ("oth") keys are out
// of scope.
func parseRSA(d *jsonutils.Decoder, key *Key) {
	e := d.MustBigInt("e")
	if d.Err() != nil {
		return
	}
	if !e.IsInt64() || e.Int64() <= 0 || e.Int64() > math.MaxInt {
		d.SaveError(fmt.Errorf("jwk: parameter e out of range: %s", e))
		return
	}
	n := d.MustBigInt("n")
	pub := rsa.PublicKey{
		E: int(e.Int64()),
		N: n,
	}
	key.pub = &pub
	if d.Err() != nil {
		return
	}

	if !d.Has("d") {
		return
	}
	priv := rsa.PrivateKey{
		PublicKey: pub,
		D:         d.MustBigInt("d"),
		Primes: []*big.Int{
			d.MustBigInt("p"),
			d.MustBigInt("q"),
		},
	}
	if d.Has("dp") && d.Has("dq") && d.Has("qi") {
		priv.Precomputed = rsa.PrecomputedValues{
			Dp:   d.MustBigInt("dp"),
			Dq:   d.MustBigInt("dq"),
			Qinv: d.MustBigInt("qi"),
		}
	}
	if d.Err() != nil {
		return
	}
	if err := priv.Validate(); err != nil {
		d.SaveError(err)
		return
	}
	priv.Precompute()
	key.priv = &priv
}

func encodeRSA(e *jsonutils.Encoder, priv *rsa.PrivateKey, pub *rsa.PublicKey) {
	e.Set(jwa.KeyTypeKey, jwa.RSA.String())

	if pub.E <= 0 {
		e.SaveError(fmt.Errorf("jwk: parameter e out of range: %d", pub.E))
		return
	}
	e.SetBytes("e", big.NewInt(int64(pub.E)).Bytes())
	e.SetBigInt("n", pub.N)

	if priv == nil {
		return
	}
	e.SetBigInt("d", priv.D)
	e.SetBigInt("p", priv.Primes[0])
	e.SetBigInt("q", priv.Primes[1])
	if priv.Precomputed.Dp != nil {
		e.SetBigInt("dp", priv.Precomputed.Dp)
		e.SetBigInt("dq", priv.Precomputed.Dq)
		e.SetBigInt("qi", priv.Precomputed.Qinv)
	}
}

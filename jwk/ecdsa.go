package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/spoolauth/jose/internal/jsonutils"
	"github.com/spoolauth/jose/jwa"
)

// parseEC decodes RFC 7518 Section 6.2, Parameters for Elliptic Curve Keys.
func parseEC(d *jsonutils.Decoder, key *Key) {
	var privateKey ecdsa.PrivateKey
	crv := jwa.EllipticCurve(d.MustString("crv"))
	switch crv {
	case jwa.P256:
		privateKey.Curve = elliptic.P256()
	case jwa.P384:
		privateKey.Curve = elliptic.P384()
	case jwa.P521:
		privateKey.Curve = elliptic.P521()
	default:
		d.SaveError(fmt.Errorf("jwk: unsupported crv: %q", crv))
		return
	}

	privateKey.X = new(big.Int).SetBytes(d.MustBytes("x"))
	privateKey.Y = new(big.Int).SetBytes(d.MustBytes("y"))
	key.pub = &privateKey.PublicKey

	if dd, ok := d.GetBigInt("d"); ok {
		privateKey.D = dd
		key.priv = &privateKey
	}
}

func encodeEC(e *jsonutils.Encoder, priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey) {
	e.Set(jwa.KeyTypeKey, jwa.EC.String())

	var crv jwa.EllipticCurve
	switch pub.Curve {
	case elliptic.P256():
		crv = jwa.P256
	case elliptic.P384():
		crv = jwa.P384
	case elliptic.P521():
		crv = jwa.P521
	default:
		e.SaveError(fmt.Errorf("jwk: unsupported curve: %v", pub.Curve))
		return
	}
	e.Set("crv", crv.String())

	size := curveCoordinateSize(pub.Curve)
	e.SetBytes("x", pub.X.FillBytes(make([]byte, size)))
	e.SetBytes("y", pub.Y.FillBytes(make([]byte, size)))

	if priv != nil {
		e.SetBytes("d", priv.D.FillBytes(make([]byte, size)))
	}
}

func curveCoordinateSize(crv elliptic.Curve) int {
	return (crv.Params().BitSize + 7) / 8
}

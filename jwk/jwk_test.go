package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/spoolauth/jose/jwa"
)

func TestParseKey_EC(t *testing.T) {
	t.Run("RFC 7517 A.1. Example Public Keys (EC)", func(t *testing.T) {
		rawKey := `{"kty":"EC",` +
			`"crv":"P-256",` +
			`"x":"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4",` +
			`"y":"4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFyM",` +
			`"kid":"1"}`
		key, err := ParseKey([]byte(rawKey))
		if err != nil {
			t.Fatal(err)
		}
		if got, want := key.KeyType(), jwa.EC; got != want {
			t.Errorf("KeyType = %s, want %s", got, want)
		}
		if got := key.PrivateKey(); got != nil {
			t.Errorf("PrivateKey = %v, want nil", got)
		}
		x, _ := new(big.Int).SetString("21994169848703329112137818087919262246467304847122821377551355163096090930238", 10)
		y, _ := new(big.Int).SetString("101451294974385619524093058399734017814808930032421185206609461750712400090915", 10)
		want := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
		got, ok := key.PublicKey().(*ecdsa.PublicKey)
		if !ok || !want.Equal(got) {
			t.Errorf("PublicKey mismatch: got %v, want %v", got, want)
		}
	})

	t.Run("RFC 7517 A.2. Example Private Keys (EC)", func(t *testing.T) {
		rawKey := `{"kty":"EC",` +
			`"crv":"P-256",` +
			`"x":"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4",` +
			`"y":"4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFyM",` +
			`"d":"870MB6gfuTJ4HtUnUvYMyJpr5eUZNP4Bk43bVdj3eAE",` +
			`"kid":"1"}`
		key, err := ParseKey([]byte(rawKey))
		if err != nil {
			t.Fatal(err)
		}
		priv, ok := key.PrivateKey().(*ecdsa.PrivateKey)
		if !ok {
			t.Fatalf("PrivateKey has type %T, want *ecdsa.PrivateKey", key.PrivateKey())
		}
		if priv.Curve != elliptic.P256() {
			t.Errorf("curve = %v, want P-256", priv.Curve)
		}
	})

	t.Run("unknown curve", func(t *testing.T) {
		rawKey := `{"kty":"EC","crv":"P-224","x":"","y":""}`
		if _, err := ParseKey([]byte(rawKey)); err == nil {
			t.Error("ParseKey should reject an unsupported curve")
		}
	})
}

func TestParseKey_RSA(t *testing.T) {
	// RFC 7517 Appendix A.1/A.2, abbreviated.
	rawKey := `{"kty":"RSA",` +
		`"n":"0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx` +
		`4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMs` +
		`tn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2` +
		`QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbI` +
		`SD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqb` +
		`w0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",` +
		`"e":"AQAB",` +
		`"alg":"RS256",` +
		`"kid":"2011-04-29"}`
	key, err := ParseKey([]byte(rawKey))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := key.KeyType(), jwa.RSA; got != want {
		t.Errorf("KeyType = %s, want %s", got, want)
	}
	pub, ok := key.PublicKey().(*rsa.PublicKey)
	if !ok {
		t.Fatalf("PublicKey has type %T, want *rsa.PublicKey", key.PublicKey())
	}
	if pub.E != 65537 {
		t.Errorf("e = %d, want 65537", pub.E)
	}
	if key.PrivateKey() != nil {
		t.Errorf("PrivateKey = %v, want nil", key.PrivateKey())
	}
}

func TestParseKey_Symmetric(t *testing.T) {
	// RFC 7515 Appendix A.1.
	rawKey := `{"kty":"oct",` +
		`"k":"AyM1SysPpbyDfgZld3umj1qzKObwVMkoqQ-EstJQLr_T-1qS0gZH75aKtMN3Yj0iPS4hcgUuTwjAzZr1Z9CAow"}`
	key, err := ParseKey([]byte(rawKey))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := key.KeyType(), jwa.Oct; got != want {
		t.Errorf("KeyType = %s, want %s", got, want)
	}
	secret, ok := key.PrivateKey().([]byte)
	if !ok || len(secret) != 64 {
		t.Errorf("PrivateKey = %v (%T), want 64-byte []byte", key.PrivateKey(), key.PrivateKey())
	}
}

func TestParseKey_UnknownType(t *testing.T) {
	if _, err := ParseKey([]byte(`{"kty":"OKP","crv":"Ed25519","x":""}`)); err == nil {
		t.Error("ParseKey should reject a key type this module doesn't materialize")
	}
}

func TestParseKey_MissingRequiredParameter(t *testing.T) {
	if _, err := ParseKey([]byte(`{"kty":"oct"}`)); err == nil {
		t.Error("ParseKey should fail when the symmetric secret \"k\" is missing")
	}
}

func TestMarshalJSON_RoundTrip_EC(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := NewPrivateKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	data, err := key.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseKey(data)
	if err != nil {
		t.Fatal(err)
	}
	gotPriv, ok := got.PrivateKey().(*ecdsa.PrivateKey)
	if !ok || !priv.Equal(gotPriv) {
		t.Errorf("round-tripped private key mismatch")
	}
}

package none

import (
	"crypto"
	"errors"
	"testing"
)

type dummyKey struct{}

func (k *dummyKey) PrivateKey() crypto.PrivateKey { return nil }
func (k *dummyKey) PublicKey() crypto.PublicKey   { return nil }

func TestSign_AlwaysRejected(t *testing.T) {
	alg := New()
	key := alg.NewSigningKey(nil)
	if _, err := key.Sign([]byte("payload")); !errors.Is(err, ErrUnsecured) {
		t.Errorf("Sign error = %v, want %v", err, ErrUnsecured)
	}
}

func TestSign_InvalidKey(t *testing.T) {
	alg := New()
	// only a nil key is accepted; a key value is rejected even when
	// its private and public halves are both nil.
	key := alg.NewSigningKey(&dummyKey{})
	if _, err := key.Sign([]byte("payload")); err == nil {
		t.Error("want error, got nil")
	}
}

func TestVerify(t *testing.T) {
	alg := New()
	key := alg.NewSigningKey(nil)

	if err := key.Verify([]byte("payload"), []byte{}); err != nil {
		t.Fatal(err)
	}
	if err := key.Verify([]byte("payload"), []byte{'a'}); err == nil {
		t.Error("want error, got nil")
	}
}

func TestVerify_InvalidKey(t *testing.T) {
	alg := New()
	key := alg.NewSigningKey(&dummyKey{})

	if err := key.Verify([]byte("payload"), []byte{}); err == nil {
		t.Error("want error, got nil")
	}
}

package jwk

import (
	"github.com/spoolauth/jose/internal/jsonutils"
	"github.com/spoolauth/jose/jwa"
)

// parseSymmetric decodes RFC 7518 Section 6.4, Parameters for
// Symmetric Keys. The secret is copied out of the decoder's shared
// scratch buffer: Decoder.Zero clears that buffer once parsing
// finishes, and the copy must outlive it.
func parseSymmetric(d *jsonutils.Decoder, key *Key) {
	secret := d.MustBytes("k")
	key.priv = append([]byte(nil), secret...)
}

func encodeSymmetric(e *jsonutils.Encoder, secret []byte) {
	e.Set(jwa.KeyTypeKey, jwa.Oct.String())
	e.SetBytes("k", secret)
}

package tokenseal

import tscrypto "github.com/vaultsandbox/tokenseal/internal/crypto"

// Cipher identifiers accepted by WithCipher and the header's enc field.
const (
	CipherChaCha20Poly1305 = tscrypto.ChaCha20Poly1305
	CipherAES128GCM        = tscrypto.AES128GCM
	CipherAES192GCM        = tscrypto.AES192GCM
	CipherAES256GCM        = tscrypto.AES256GCM

	// DefaultCipher is used when no cipher is selected.
	DefaultCipher = tscrypto.DefaultSuite
)

// Cipher describes an envelope AEAD cipher.
type Cipher struct {
	ID      string
	KeySize int // derived key length in bytes
}

// LookupCipher reports the cipher registered under id.
func LookupCipher(id string) (Cipher, bool) {
	s, err := tscrypto.LookupSuite(id)
	if err != nil {
		return Cipher{}, false
	}
	return Cipher{ID: s.ID, KeySize: s.KeySize}, true
}

// Ciphers lists every supported cipher, sorted by identifier.
func Ciphers() []Cipher {
	suites := tscrypto.Suites()
	out := make([]Cipher, len(suites))
	for i, s := range suites {
		out[i] = Cipher{ID: s.ID, KeySize: s.KeySize}
	}
	return out
}

func resolveSuite(id string) (tscrypto.Suite, error) {
	s, err := tscrypto.LookupSuite(id)
	if err != nil {
		return tscrypto.Suite{}, &InvalidAlgorithmError{Alg: id}
	}
	return s, nil
}

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source for nonces and salts.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// RandomBytes returns n bytes from the configured random source.
func RandomBytes(n int) ([]byte, error) {
	r := randReader
	if r == nil {
		r = rand.Reader
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}

	return buf, nil
}

// NewNonceAndSalt draws a fresh AEAD nonce and scrypt salt.
// Every encryption must call this; reusing a (key, nonce) pair breaks both
// GCM and ChaCha20-Poly1305.
func NewNonceAndSalt() (nonce, salt []byte, err error) {
	nonce, err = RandomBytes(NonceSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generating nonce: %w", err)
	}

	salt, err = RandomBytes(SaltSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generating salt: %w", err)
	}

	return nonce, salt, nil
}

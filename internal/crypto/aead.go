package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

// truncatedChaCha is ChaCha20-Poly1305 with the tag cut to TagSize bytes.
//
// The x/crypto implementation only speaks 16-byte tags. Sealing is the
// standard construction with the tail of the tag dropped. Opening decrypts
// the body with the raw ChaCha20 keystream (block counter 1 onwards, exactly
// as RFC 8439 does), re-seals the candidate plaintext and compares the
// leading TagSize bytes of the recomputed tag in constant time.
type truncatedChaCha struct {
	key  []byte
	aead cipher.AEAD
}

func newTruncatedChaCha(key []byte) (cipher.AEAD, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	return &truncatedChaCha{key: key, aead: aead}, nil
}

func (c *truncatedChaCha) NonceSize() int { return chacha20poly1305.NonceSize }

func (c *truncatedChaCha) Overhead() int { return TagSize }

func (c *truncatedChaCha) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	sealed := c.aead.Seal(nil, nonce, plaintext, additionalData)
	return append(dst, sealed[:len(sealed)-(fullTagSize-TagSize)]...)
}

func (c *truncatedChaCha) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != chacha20poly1305.NonceSize {
		return nil, ErrInvalidNonceSize
	}
	if len(ciphertext) < TagSize {
		return nil, ErrDecryptionFailed
	}

	body := ciphertext[:len(ciphertext)-TagSize]
	tag := ciphertext[len(ciphertext)-TagSize:]

	stream, err := chacha20.NewUnauthenticatedCipher(c.key, nonce)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	stream.SetCounter(1)

	candidate := make([]byte, len(body))
	stream.XORKeyStream(candidate, body)

	resealed := c.aead.Seal(nil, nonce, candidate, additionalData)
	want := resealed[len(body) : len(body)+TagSize]
	if subtle.ConstantTimeCompare(want, tag) != 1 {
		clear(candidate)
		return nil, ErrDecryptionFailed
	}

	return append(dst, candidate...), nil
}

func newTruncatedGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCMWithTagSize(block, TagSize)
}

// Seal encrypts plaintext under the suite and returns the ciphertext and the
// TagSize-byte tag separately. The ciphertext has the same length as the
// plaintext.
func Seal(suite Suite, key, nonce, plaintext, aad []byte) (ciphertext, tag []byte, err error) {
	aead, err := suite.aead(key, nonce)
	if err != nil {
		return nil, nil, err
	}

	sealed := aead.Seal(nil, nonce, plaintext, aad)
	n := len(sealed) - TagSize

	return sealed[:n], sealed[n:], nil
}

// Open authenticates and decrypts ciphertext under the suite.
// Any authentication failure returns ErrDecryptionFailed and no plaintext.
func Open(suite Suite, key, nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	if len(tag) != TagSize {
		return nil, ErrDecryptionFailed
	}

	aead, err := suite.aead(key, nonce)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

func (s Suite) aead(key, nonce []byte) (cipher.AEAD, error) {
	if s.newAEAD == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, s.ID)
	}
	if len(key) != s.KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), s.KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	return s.newAEAD(key)
}

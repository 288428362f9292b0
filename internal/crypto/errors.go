package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned when an AEAD tag does not verify.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when a key does not match the suite's key size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidSaltSize is returned when the scrypt salt size is invalid.
	ErrInvalidSaltSize = errors.New("invalid salt size")

	// ErrUnknownSuite is returned when a cipher suite identifier is not registered.
	ErrUnknownSuite = errors.New("unknown cipher suite")

	// ErrKeyDerivation wraps every failure reported by DeriveKey.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrNoKeyMaterial is returned when the KDF produced an empty key.
	ErrNoKeyMaterial = errors.New("no key material")
)

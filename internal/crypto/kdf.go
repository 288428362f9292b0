package crypto

import (
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// DeriveKey stretches a password into a keyLen-byte key with scrypt.
//
// The work factors are fixed (ScryptN, ScryptR, ScryptP) and the salt must
// be exactly SaltSize bytes. keyLen must be one of the AEAD key sizes (16,
// 24 or 32). Every error returned wraps ErrKeyDerivation.
func DeriveKey(password, salt []byte, keyLen int) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: %w: got %d, want %d", ErrKeyDerivation, ErrInvalidSaltSize, len(salt), SaltSize)
	}

	switch keyLen {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %w: got %d, want 16, 24 or 32", ErrKeyDerivation, ErrInvalidKeySize, keyLen)
	}

	key, err := scrypt.Key(password, salt, ScryptN, ScryptR, ScryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}

	if len(key) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, ErrNoKeyMaterial)
	}

	return key, nil
}

package tokenseal

import (
	"crypto"
	"crypto/rsa"
	"fmt"

	tscrypto "github.com/vaultsandbox/tokenseal/internal/crypto"
)

// Secret is the key material handed to Sign and Verify.
//
// It is a closed set of variants built with Symmetric, SymmetricFromBase64,
// PrivateKey and PublicKey. Each algorithm family accepts only some
// variants; any other combination fails with a KeyTypeMismatchError.
//
//	Family   Sign           Verify
//	HMAC     Symmetric      Symmetric
//	RSA      PrivateKey     PrivateKey or PublicKey
type Secret interface {
	kind() string
}

type symmetricSecret []byte

func (symmetricSecret) kind() string { return "symmetric" }

type privateKeySecret struct {
	signer crypto.Signer
}

func (privateKeySecret) kind() string { return "private key" }

type publicKeySecret struct {
	key crypto.PublicKey
}

func (publicKeySecret) kind() string { return "public key" }

// Symmetric returns a MAC secret holding a copy of key.
func Symmetric(key []byte) Secret {
	return symmetricSecret(append([]byte(nil), key...))
}

// SymmetricFromBase64 decodes a base64 MAC secret, accepting standard or
// URL alphabets with or without padding.
func SymmetricFromBase64(s string) (Secret, error) {
	key, err := tscrypto.DecodeBase64(s)
	if err != nil {
		return nil, fmt.Errorf("decoding secret: %w", err)
	}
	return symmetricSecret(key), nil
}

// PrivateKey returns an asymmetric signing secret. For the RSA family the
// signer's public key must be an *rsa.PublicKey; *rsa.PrivateKey satisfies
// this.
func PrivateKey(signer crypto.Signer) Secret {
	return privateKeySecret{signer: signer}
}

// PublicKey returns an asymmetric verification-only secret.
func PublicKey(pub crypto.PublicKey) Secret {
	return publicKeySecret{key: pub}
}

func secretKind(s Secret) string {
	if s == nil {
		return "nil"
	}
	return s.kind()
}

func mismatch(alg Algorithm, s Secret) error {
	return &KeyTypeMismatchError{Alg: alg.ID, Family: alg.Family, Secret: secretKind(s)}
}

// hmacKey returns the raw key of a symmetric secret.
func hmacKey(alg Algorithm, s Secret) ([]byte, error) {
	key, ok := s.(symmetricSecret)
	if !ok {
		return nil, mismatch(alg, s)
	}
	return key, nil
}

// rsaSigner returns the signer of a private key secret whose public half is RSA.
func rsaSigner(alg Algorithm, s Secret) (crypto.Signer, error) {
	priv, ok := s.(privateKeySecret)
	if !ok || priv.signer == nil {
		return nil, mismatch(alg, s)
	}
	if _, ok := priv.signer.Public().(*rsa.PublicKey); !ok {
		return nil, mismatch(alg, s)
	}
	return priv.signer, nil
}

// rsaPublicKey extracts an RSA public key from either asymmetric variant.
func rsaPublicKey(alg Algorithm, s Secret) (*rsa.PublicKey, error) {
	var pub crypto.PublicKey
	switch v := s.(type) {
	case privateKeySecret:
		if v.signer != nil {
			pub = v.signer.Public()
		}
	case publicKeySecret:
		pub = v.key
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok || rsaPub == nil {
		return nil, mismatch(alg, s)
	}
	return rsaPub, nil
}

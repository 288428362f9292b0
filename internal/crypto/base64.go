package crypto

import (
	"encoding/base64"
)

// ToBase64URL encodes bytes to URL-safe base64 without padding.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64URL decodes URL-safe base64 without padding.
// Unused trailing bits must be zero, so every byte string has exactly one
// accepted encoding.
func FromBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.Strict().DecodeString(s)
}

// ToBase64 encodes bytes to standard base64 with padding.
// The envelope uses it for the nonce inside the AAD record and for the
// salt||ciphertext blob.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64 (with padding) to bytes.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.Strict().DecodeString(s)
}

// DecodeBase64 decodes base64 in any of the four common variants.
// Secrets handed around as text are often produced by tools that disagree
// on alphabet and padding, so it tries each in turn.
func DecodeBase64(s string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}

	if data, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return data, nil
	}

	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return data, nil
	}

	return base64.RawURLEncoding.DecodeString(s)
}

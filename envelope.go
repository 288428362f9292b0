package tokenseal

import (
	"context"
	"encoding/json"
	"strings"

	tscrypto "github.com/vaultsandbox/tokenseal/internal/crypto"
	"github.com/vaultsandbox/tokenseal/internal/segment"
)

// aadRecord is the first envelope segment. Its base64url text is the AEAD
// associated data. Field order is part of the wire format.
type aadRecord struct {
	IV string          `json:"iv"` // standard base64 nonce
	AD json.RawMessage `json:"ad"` // canonical object or null
}

// dataRecord is the second envelope segment.
type dataRecord struct {
	Data string `json:"data"` // standard base64 of salt || ciphertext
}

// Encrypt seals plaintext under a key derived from password and returns the
// envelope "aad.data.tag".
//
// Each call draws a fresh 12-byte nonce and 32-byte salt. Associated data
// given with WithAssociatedData is authenticated but travels in clear in the
// first segment. The context is consulted once, before key derivation; the
// operation is not interrupted after that.
func Encrypt(ctx context.Context, password, plaintext []byte, opts ...EnvelopeOption) (string, error) {
	cfg := newEnvelopeConfig(opts)

	suite, err := resolveSuite(cfg.cipher)
	if err != nil {
		return "", err
	}

	ad, err := segment.NormalizeObject(cfg.associatedData)
	if err != nil {
		return "", &AssociatedDataError{Err: err}
	}

	nonce, salt, err := tscrypto.NewNonceAndSalt()
	if err != nil {
		return "", err
	}

	aadSeg, err := segment.Encode(aadRecord{IV: tscrypto.ToBase64(nonce), AD: ad})
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := tscrypto.DeriveKey(password, salt, suite.KeySize)
	if err != nil {
		return "", wrapError(err)
	}
	defer clear(key)

	ciphertext, tag, err := tscrypto.Seal(suite, key, nonce, plaintext, []byte(aadSeg))
	if err != nil {
		return "", wrapError(err)
	}

	blob := make([]byte, 0, len(salt)+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, ciphertext...)

	dataSeg, err := segment.Encode(dataRecord{Data: tscrypto.ToBase64(blob)})
	if err != nil {
		return "", err
	}

	return aadSeg + "." + dataSeg + "." + tscrypto.ToBase64URL(tag), nil
}

// Decrypt opens an envelope produced by Encrypt with the same password and
// cipher.
//
// An envelope that is not exactly three segments fails with
// MalformedEnvelopeError and an unknown cipher with InvalidAlgorithmError.
// Every other failure, whether a wrong password, a tampered segment or an
// undecodable one, is reported as the same AuthenticationError.
func Decrypt(ctx context.Context, password []byte, envelope string, opts ...EnvelopeOption) ([]byte, error) {
	parts := strings.Split(envelope, ".")
	if len(parts) != 3 {
		return nil, &MalformedEnvelopeError{Segments: len(parts)}
	}

	cfg := newEnvelopeConfig(opts)

	suite, err := resolveSuite(cfg.cipher)
	if err != nil {
		return nil, err
	}

	nonce, ad, err := parseAAD(parts[0])
	if err != nil {
		return nil, &AuthenticationError{}
	}

	// The associated data is rebuilt from the parsed record. A first
	// segment that is not already in that form is rejected.
	aadSeg, err := segment.Encode(aadRecord{IV: tscrypto.ToBase64(nonce), AD: ad})
	if err != nil || aadSeg != parts[0] {
		return nil, &AuthenticationError{}
	}

	salt, ciphertext, err := parseData(parts[1])
	if err != nil {
		return nil, &AuthenticationError{}
	}

	tag, err := tscrypto.FromBase64URL(parts[2])
	if err != nil || len(tag) != tscrypto.TagSize {
		return nil, &AuthenticationError{}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := tscrypto.DeriveKey(password, salt, suite.KeySize)
	if err != nil {
		return nil, wrapError(err)
	}
	defer clear(key)

	plaintext, err := tscrypto.Open(suite, key, nonce, ciphertext, tag, []byte(aadSeg))
	if err != nil {
		return nil, &AuthenticationError{}
	}

	return plaintext, nil
}

// parseAAD returns the nonce and associated data of the first envelope
// segment. The associated data keeps the key order it was received in.
func parseAAD(seg string) (nonce []byte, ad json.RawMessage, err error) {
	fields, err := segment.DecodeObject(seg, "iv", "ad")
	if err != nil {
		return nil, nil, err
	}

	var iv string
	if err := json.Unmarshal(fields["iv"], &iv); err != nil {
		return nil, nil, err
	}
	nonce, err = tscrypto.FromBase64(iv)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != tscrypto.NonceSize {
		return nil, nil, tscrypto.ErrInvalidNonceSize
	}

	ad, err = segment.CompactObject(fields["ad"])
	if err != nil {
		return nil, nil, err
	}

	return nonce, ad, nil
}

// parseData returns the salt and ciphertext of the second envelope segment.
func parseData(seg string) (salt, ciphertext []byte, err error) {
	fields, err := segment.DecodeObject(seg, "data")
	if err != nil {
		return nil, nil, err
	}

	var data string
	if err := json.Unmarshal(fields["data"], &data); err != nil {
		return nil, nil, err
	}
	blob, err := tscrypto.FromBase64(data)
	if err != nil {
		return nil, nil, err
	}
	if len(blob) < tscrypto.SaltSize {
		return nil, nil, tscrypto.ErrInvalidSaltSize
	}

	return blob[:tscrypto.SaltSize], blob[tscrypto.SaltSize:], nil
}

// peekAssociatedData returns the associated data of an envelope without
// authenticating it. Callers must treat the result as untrusted until
// Decrypt succeeds.
func peekAssociatedData(envelope string) (json.RawMessage, error) {
	parts := strings.Split(envelope, ".")
	if len(parts) != 3 {
		return nil, &MalformedEnvelopeError{Segments: len(parts)}
	}
	_, ad, err := parseAAD(parts[0])
	if err != nil {
		return nil, &AuthenticationError{}
	}
	return ad, nil
}

package tokenseal

import (
	"context"
	"encoding/json"
)

// SealToken signs a token and encrypts it under password.
//
// Unless overridden with options, the token header becomes the envelope's
// associated data and h.Enc, when set, selects the cipher. The signing
// secret and the password are independent.
func SealToken(ctx context.Context, h Header, c Claims, secret Secret, password []byte, opts ...EnvelopeOption) (string, error) {
	token, err := Sign(h, c, secret)
	if err != nil {
		return "", err
	}

	cfg := newEnvelopeConfig(opts)
	defaults := make([]EnvelopeOption, 0, 2)
	if !cfg.cipherSet && h.Enc != "" {
		defaults = append(defaults, WithCipher(h.Enc))
	}
	if !cfg.associatedDataSet {
		defaults = append(defaults, WithAssociatedData(h))
	}

	return Encrypt(ctx, password, []byte(token), append(defaults, opts...)...)
}

// OpenToken reverses SealToken: it decrypts the envelope, parses the inner
// token and verifies its signature with the algorithm in the token header.
//
// When no cipher option is given, the enc field of the envelope's associated
// data selects the cipher. That field is covered by the envelope tag, so a
// forged hint, including one naming an unknown cipher, fails with
// AuthenticationError. A token whose signature does not verify fails with
// SignatureVerificationError.
func OpenToken(ctx context.Context, envelope string, password []byte, secret Secret, opts ...EnvelopeOption) (*Token, error) {
	cfg := newEnvelopeConfig(opts)
	if !cfg.cipherSet {
		if enc := cipherHint(envelope); enc != "" {
			if _, ok := LookupCipher(enc); !ok {
				return nil, &AuthenticationError{}
			}
			opts = append([]EnvelopeOption{WithCipher(enc)}, opts...)
		}
	}

	plaintext, err := Decrypt(ctx, password, envelope, opts...)
	if err != nil {
		return nil, err
	}

	tok, err := Parse(string(plaintext))
	if err != nil {
		return nil, err
	}

	ok, err := Verify(string(plaintext), secret)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &SignatureVerificationError{Alg: tok.Header.Alg}
	}

	return tok, nil
}

// cipherHint reads an enc string from the envelope's associated data.
func cipherHint(envelope string) string {
	ad, err := peekAssociatedData(envelope)
	if err != nil {
		return ""
	}

	var hint struct {
		Enc string `json:"enc"`
	}
	if err := json.Unmarshal(ad, &hint); err != nil {
		return ""
	}
	return hint.Enc
}

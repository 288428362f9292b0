// Package tokenseal signs compact tokens and seals data in password-based
// authenticated-encryption envelopes.
//
// # Tokens
//
// A token is three base64url segments joined by ".": a JSON header, a JSON
// claims object and a signature over the first two segments. The header's
// alg selects the algorithm and Verify always uses that algorithm; there is
// no way to ask for a different one.
//
//	secret := tokenseal.Symmetric([]byte("k"))
//	token, err := tokenseal.Sign(tokenseal.NewHeader(tokenseal.HS256),
//	    tokenseal.Claims{"sub": "alice"}, secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := tokenseal.Verify(token, secret)
//
// HS256, HS384 and HS512 take a Symmetric secret. RS256, RS384 and RS512 sign
// with a PrivateKey and verify with a PrivateKey or PublicKey. ES* and PS*
// identifiers are recognized but return UnsupportedAlgorithmError.
//
// # Envelopes
//
// Encrypt derives a key from a password with scrypt, encrypts with an AEAD
// cipher (ChaCha20-Poly1305 by default, or AES-GCM with a 128, 192 or 256-bit
// key) and returns three base64url segments:
//
//	{"iv": <nonce>, "ad": <associated data>} . {"data": <salt || ciphertext>} . <tag>
//
// The text of the first segment is bound into the tag, so associated data
// is authenticated without being encrypted. The tag is 12 bytes for every
// cipher, which is shorter than the usual 16 and is kept for compatibility
// with existing envelopes.
//
//	envelope, err := tokenseal.Encrypt(ctx, []byte("s3cret-pw"), []byte("hello"),
//	    tokenseal.WithAssociatedData(map[string]string{"purpose": "demo"}))
//	plaintext, err := tokenseal.Decrypt(ctx, []byte("s3cret-pw"), envelope)
//
// SealToken and OpenToken compose the two: the signed token is encrypted
// under a second, independent password with its header as associated data.
//
// # Error Handling
//
// All errors implement [TokenSealError] and match a sentinel with
// errors.Is:
//
//	_, err := tokenseal.Decrypt(ctx, pw, envelope)
//	if errors.Is(err, tokenseal.ErrAuthenticationFailed) {
//	    // wrong password or tampered envelope
//	}
//
// Verify returns false with a nil error for a well-formed token whose
// signature does not match, and an error only when the token or the request
// itself is malformed.
//
// # Concurrency
//
// All functions are safe for concurrent use. Key derivation is the only slow
// step and is never interrupted once started.
package tokenseal

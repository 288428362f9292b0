// Package crypto provides the primitives behind tokenseal envelopes.
//
// # Algorithm Suite
//
//   - scrypt (RFC 7914) with N=1024, r=4, p=4 derives a 16, 24 or 32 byte
//     key from a password and a fresh 32-byte salt.
//
//   - ChaCha20-Poly1305 (RFC 8439) and AES-GCM with 128, 192 or 256-bit
//     keys provide authenticated encryption with associated data.
//
// # Tag Length
//
// Envelopes carry a 12-byte authentication tag for every suite. AES-GCM
// supports this natively through [cipher.NewGCMWithTagSize]. For
// ChaCha20-Poly1305 the 16-byte Poly1305 tag is truncated on [Seal] and
// [Open] recomputes it over the candidate plaintext before comparing. A
// 96-bit tag gives a lower forgery bound than the full 128 bits; it is kept
// for compatibility with existing envelopes.
//
// # Nonces
//
// A nonce MUST be unique for each encryption under the same key. Every
// envelope draws a fresh salt as well, so the derived key itself is never
// reused; [NewNonceAndSalt] draws both.
//
// # Base64 Encoding
//
//   - [ToBase64URL]/[FromBase64URL]: URL-safe base64 without padding (RFC 4648 §5).
//     Used for the compact segments of tokens and envelopes.
//
//   - [ToBase64]/[FromBase64]: Standard base64 with padding (RFC 4648 §4).
//     Used for binary values embedded in JSON records.
package crypto

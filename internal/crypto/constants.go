package crypto

const (
	// NonceSize is the size of the per-encryption AEAD nonce in bytes.
	NonceSize = 12
	// SaltSize is the size of the per-encryption scrypt salt in bytes.
	SaltSize = 32
	// TagSize is the size of the authentication tag carried in an envelope.
	// Both ChaCha20-Poly1305 and AES-GCM natively produce 16-byte tags; the
	// envelope format keeps only the first 12 bytes.
	TagSize = 12

	// ScryptN is the scrypt CPU/memory cost parameter.
	ScryptN = 1024
	// ScryptR is the scrypt block size parameter.
	ScryptR = 4
	// ScryptP is the scrypt parallelization parameter.
	ScryptP = 4

	// fullTagSize is the untruncated Poly1305 / GHASH tag size.
	fullTagSize = 16
)

// Cipher suite identifiers, spelled the way OpenSSL names them.
const (
	ChaCha20Poly1305 = "chacha20-poly1305"
	AES128GCM        = "aes-128-gcm"
	AES192GCM        = "aes-192-gcm"
	AES256GCM        = "aes-256-gcm"
)

// DefaultSuite is the suite used when the caller does not name one.
const DefaultSuite = ChaCha20Poly1305

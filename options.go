package tokenseal

// envelopeConfig holds configuration for a single Encrypt or Decrypt call.
type envelopeConfig struct {
	cipher    string
	cipherSet bool

	associatedData    any
	associatedDataSet bool
}

// EnvelopeOption configures Encrypt, Decrypt, SealToken and OpenToken.
type EnvelopeOption func(*envelopeConfig)

// WithCipher selects the AEAD cipher by identifier, e.g. "aes-256-gcm".
// Default: chacha20-poly1305
func WithCipher(id string) EnvelopeOption {
	return func(c *envelopeConfig) {
		c.cipher = id
		c.cipherSet = true
	}
}

// WithAssociatedData binds v into the envelope as authenticated, unencrypted
// context. v must marshal to a JSON object or null. Decrypt ignores it; the
// value is recovered from the envelope itself.
func WithAssociatedData(v any) EnvelopeOption {
	return func(c *envelopeConfig) {
		c.associatedData = v
		c.associatedDataSet = true
	}
}

func newEnvelopeConfig(opts []EnvelopeOption) *envelopeConfig {
	cfg := &envelopeConfig{cipher: DefaultCipher}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

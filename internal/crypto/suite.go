package crypto

import (
	"crypto/cipher"
	"fmt"
	"sort"
)

// Suite describes one AEAD cipher usable inside an envelope.
type Suite struct {
	// ID is the wire identifier, e.g. "aes-256-gcm".
	ID string
	// KeySize is the key length in bytes requested from the KDF.
	KeySize int

	newAEAD func(key []byte) (cipher.AEAD, error)
}

var suites = map[string]Suite{
	ChaCha20Poly1305: {ID: ChaCha20Poly1305, KeySize: 32, newAEAD: newTruncatedChaCha},
	AES128GCM:        {ID: AES128GCM, KeySize: 16, newAEAD: newTruncatedGCM},
	AES192GCM:        {ID: AES192GCM, KeySize: 24, newAEAD: newTruncatedGCM},
	AES256GCM:        {ID: AES256GCM, KeySize: 32, newAEAD: newTruncatedGCM},
}

// LookupSuite returns the registered suite for id.
func LookupSuite(id string) (Suite, error) {
	s, ok := suites[id]
	if !ok {
		return Suite{}, fmt.Errorf("%w: %q", ErrUnknownSuite, id)
	}
	return s, nil
}

// Suites returns every registered suite, sorted by ID.
func Suites() []Suite {
	out := make([]Suite, 0, len(suites))
	for _, s := range suites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

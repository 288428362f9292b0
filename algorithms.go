package tokenseal

import (
	"crypto"
	_ "crypto/sha256" // registers SHA-256 for crypto.Hash
	_ "crypto/sha512" // registers SHA-384 and SHA-512 for crypto.Hash
	"sort"
)

// Family groups signature algorithms that share a primitive.
type Family int

const (
	FamilyHMAC Family = iota + 1
	FamilyRSA
	FamilyECDSA
	FamilyRSAPSS
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSA:
		return "RSA"
	case FamilyECDSA:
		return "ECDSA"
	case FamilyRSAPSS:
		return "RSA-PSS"
	default:
		return "unknown"
	}
}

// Supported reports whether algorithms of the family can sign and verify.
func (f Family) Supported() bool {
	return f == FamilyHMAC || f == FamilyRSA
}

// Algorithm is one entry of the signature algorithm table.
type Algorithm struct {
	ID        string      // header alg value, e.g. "HS256"
	Family    Family      // primitive family
	Primitive string      // underlying primitive name, e.g. "sha256" or "rsa-sha256"
	Hash      crypto.Hash // digest used by the primitive
}

// Signature algorithm identifiers.
const (
	HS256 = "HS256"
	HS384 = "HS384"
	HS512 = "HS512"
	RS256 = "RS256"
	RS384 = "RS384"
	RS512 = "RS512"
	ES256 = "ES256"
	ES384 = "ES384"
	ES512 = "ES512"
	PS256 = "PS256"
	PS384 = "PS384"
	PS512 = "PS512"
)

// algorithms is never written after initialization.
var algorithms = map[string]Algorithm{
	HS256: {HS256, FamilyHMAC, "sha256", crypto.SHA256},
	HS384: {HS384, FamilyHMAC, "sha384", crypto.SHA384},
	HS512: {HS512, FamilyHMAC, "sha512", crypto.SHA512},

	RS256: {RS256, FamilyRSA, "rsa-sha256", crypto.SHA256},
	RS384: {RS384, FamilyRSA, "rsa-sha384", crypto.SHA384},
	RS512: {RS512, FamilyRSA, "rsa-sha512", crypto.SHA512},

	ES256: {ES256, FamilyECDSA, "ecdsa256", crypto.SHA256},
	ES384: {ES384, FamilyECDSA, "ecdsa384", crypto.SHA384},
	ES512: {ES512, FamilyECDSA, "ecdsa512", crypto.SHA512},

	PS256: {PS256, FamilyRSAPSS, "rsa-pss-sha256", crypto.SHA256},
	PS384: {PS384, FamilyRSAPSS, "rsa-pss-sha384", crypto.SHA384},
	PS512: {PS512, FamilyRSAPSS, "rsa-pss-sha512", crypto.SHA512},
}

// LookupAlgorithm reports the table entry for id. Lookup is case-sensitive
// and "none" is never present.
func LookupAlgorithm(id string) (Algorithm, bool) {
	a, ok := algorithms[id]
	return a, ok
}

// Algorithms lists the whole table ordered by family, then identifier.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithms))
	for _, a := range algorithms {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// resolveAlgorithm looks up id and rejects families without an implementation.
func resolveAlgorithm(id string) (Algorithm, error) {
	a, ok := algorithms[id]
	if !ok {
		return Algorithm{}, &InvalidAlgorithmError{Alg: id}
	}
	if !a.Family.Supported() {
		return Algorithm{}, &UnsupportedAlgorithmError{Alg: id, Family: a.Family}
	}
	return a, nil
}

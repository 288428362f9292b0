package tokenseal

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	tscrypto "github.com/vaultsandbox/tokenseal/internal/crypto"
)

// ComputeSignature signs the serialized header and claims with the
// algorithm named by h.Alg and returns the base64url signature.
//
// HMAC algorithms need a Symmetric secret and RSA algorithms a PrivateKey
// backed by an RSA key. ECDSA and RSA-PSS algorithms are recognized but fail
// with UnsupportedAlgorithmError; unknown identifiers, including "none",
// fail with InvalidAlgorithmError.
func ComputeSignature(h Header, c Claims, secret Secret) (string, error) {
	headerSeg, payloadSeg, err := Serialize(h, c)
	if err != nil {
		return "", err
	}

	sig, err := signInput(h.Alg, headerSeg+"."+payloadSeg, secret)
	if err != nil {
		return "", err
	}

	return tscrypto.ToBase64URL(sig), nil
}

// Sign returns the complete compact token "header.payload.signature".
func Sign(h Header, c Claims, secret Secret) (string, error) {
	headerSeg, payloadSeg, err := Serialize(h, c)
	if err != nil {
		return "", err
	}

	input := headerSeg + "." + payloadSeg
	sig, err := signInput(h.Alg, input, secret)
	if err != nil {
		return "", err
	}

	return input + "." + tscrypto.ToBase64URL(sig), nil
}

// Verify checks a compact token's signature with the algorithm declared in
// its own header.
//
// A well-formed token whose signature does not match, including one with a
// tampered payload or an undecodable signature segment, yields false and a
// nil error. Errors are reserved for a wrong segment count, an undecodable
// header, an unknown or unsupported algorithm and a secret that does not fit
// the algorithm's family.
func Verify(token string, secret Secret) (bool, error) {
	parts, err := splitToken(token)
	if err != nil {
		return false, err
	}

	h, err := decodeHeader(parts[0])
	if err != nil {
		return false, err
	}

	alg, err := resolveAlgorithm(h.Alg)
	if err != nil {
		return false, err
	}

	input := []byte(parts[0] + "." + parts[1])

	switch alg.Family {
	case FamilyHMAC:
		key, err := hmacKey(alg, secret)
		if err != nil {
			return false, err
		}
		sig, err := tscrypto.FromBase64URL(parts[2])
		if err != nil {
			return false, nil
		}
		return hmac.Equal(macSum(alg, key, input), sig), nil

	case FamilyRSA:
		pub, err := rsaPublicKey(alg, secret)
		if err != nil {
			return false, err
		}
		sig, err := tscrypto.FromBase64URL(parts[2])
		if err != nil {
			return false, nil
		}
		return rsa.VerifyPKCS1v15(pub, alg.Hash, digest(alg, input), sig) == nil, nil
	}

	return false, &UnsupportedAlgorithmError{Alg: alg.ID, Family: alg.Family}
}

func signInput(algID, input string, secret Secret) ([]byte, error) {
	alg, err := resolveAlgorithm(algID)
	if err != nil {
		return nil, err
	}

	switch alg.Family {
	case FamilyHMAC:
		key, err := hmacKey(alg, secret)
		if err != nil {
			return nil, err
		}
		return macSum(alg, key, []byte(input)), nil

	case FamilyRSA:
		signer, err := rsaSigner(alg, secret)
		if err != nil {
			return nil, err
		}
		sig, err := signer.Sign(rand.Reader, digest(alg, []byte(input)), alg.Hash)
		if err != nil {
			return nil, fmt.Errorf("signing with %s: %w", alg.ID, err)
		}
		return sig, nil
	}

	return nil, &UnsupportedAlgorithmError{Alg: alg.ID, Family: alg.Family}
}

func macSum(alg Algorithm, key, input []byte) []byte {
	mac := hmac.New(alg.Hash.New, key)
	mac.Write(input)
	return mac.Sum(nil)
}

func digest(alg Algorithm, input []byte) []byte {
	h := alg.Hash.New()
	h.Write(input)
	return h.Sum(nil)
}

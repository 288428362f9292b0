package tokenseal

import (
	"errors"
	"fmt"

	tscrypto "github.com/vaultsandbox/tokenseal/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrKeyDerivation is returned when the password KDF fails or yields no key.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrMalformedToken is returned when a token is not three dot-separated
	// segments or its payload cannot be decoded.
	ErrMalformedToken = errors.New("malformed token")

	// ErrMalformedEnvelope is returned when an envelope is not three
	// dot-separated segments.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrMalformedHeader is returned when a token header is not valid JSON.
	ErrMalformedHeader = errors.New("malformed token header")

	// ErrInvalidAlgorithm is returned for an unrecognized algorithm or cipher identifier.
	ErrInvalidAlgorithm = errors.New("invalid algorithm")

	// ErrUnsupportedAlgorithm is returned for a recognized algorithm whose
	// family has no implementation.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrKeyTypeMismatch is returned when a secret cannot serve the
	// algorithm's family.
	ErrKeyTypeMismatch = errors.New("key type does not match algorithm")

	// ErrAuthenticationFailed is returned when an envelope does not
	// authenticate under the given password.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidSignature is returned by OpenToken when the inner token's
	// signature does not verify.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidAssociatedData is returned when associated data is not a
	// JSON object or null.
	ErrInvalidAssociatedData = errors.New("associated data must be a JSON object or null")
)

// TokenSealError is implemented by all errors returned from this package.
type TokenSealError interface {
	error
	TokenSealError() // marker method
}

// KeyDerivationError reports a failure of the password KDF.
type KeyDerivationError struct {
	Err error
}

func (e *KeyDerivationError) Error() string {
	return fmt.Sprintf("key derivation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyDerivationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyDerivationError) Is(target error) bool {
	return target == ErrKeyDerivation
}

// TokenSealError implements the TokenSealError interface.
func (e *KeyDerivationError) TokenSealError() {}

// MalformedTokenError reports a token that cannot be split or decoded.
type MalformedTokenError struct {
	Segments int
	Err      error
}

func (e *MalformedTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed token: %v", e.Err)
	}
	return fmt.Sprintf("malformed token: got %d segments, want 3", e.Segments)
}

// Unwrap returns the underlying error.
func (e *MalformedTokenError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MalformedTokenError) Is(target error) bool {
	return target == ErrMalformedToken
}

// TokenSealError implements the TokenSealError interface.
func (e *MalformedTokenError) TokenSealError() {}

// MalformedEnvelopeError reports an envelope with the wrong number of segments.
type MalformedEnvelopeError struct {
	Segments int
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("malformed envelope: got %d segments, want 3", e.Segments)
}

// Is implements errors.Is for sentinel error matching.
func (e *MalformedEnvelopeError) Is(target error) bool {
	return target == ErrMalformedEnvelope
}

// TokenSealError implements the TokenSealError interface.
func (e *MalformedEnvelopeError) TokenSealError() {}

// MalformedHeaderError reports a token header segment that is not valid JSON.
type MalformedHeaderError struct {
	Err error
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed token header: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedHeaderError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MalformedHeaderError) Is(target error) bool {
	return target == ErrMalformedHeader
}

// TokenSealError implements the TokenSealError interface.
func (e *MalformedHeaderError) TokenSealError() {}

// InvalidAlgorithmError reports an identifier missing from the algorithm
// or cipher table.
type InvalidAlgorithmError struct {
	Alg string
}

func (e *InvalidAlgorithmError) Error() string {
	return fmt.Sprintf("invalid algorithm %q", e.Alg)
}

// Is implements errors.Is for sentinel error matching.
func (e *InvalidAlgorithmError) Is(target error) bool {
	return target == ErrInvalidAlgorithm
}

// TokenSealError implements the TokenSealError interface.
func (e *InvalidAlgorithmError) TokenSealError() {}

// UnsupportedAlgorithmError reports a known algorithm whose family cannot
// sign or verify.
type UnsupportedAlgorithmError struct {
	Alg    string
	Family Family
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm %q (%s family)", e.Alg, e.Family)
}

// Is implements errors.Is for sentinel error matching.
func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}

// TokenSealError implements the TokenSealError interface.
func (e *UnsupportedAlgorithmError) TokenSealError() {}

// KeyTypeMismatchError reports a secret whose variant does not fit the
// algorithm family, such as an RSA key passed for HS256.
type KeyTypeMismatchError struct {
	Alg    string
	Family Family
	Secret string // "symmetric", "private key" or "public key"
}

func (e *KeyTypeMismatchError) Error() string {
	return fmt.Sprintf("%s secret cannot be used with %s (%s family)", e.Secret, e.Alg, e.Family)
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyTypeMismatchError) Is(target error) bool {
	return target == ErrKeyTypeMismatch
}

// TokenSealError implements the TokenSealError interface.
func (e *KeyTypeMismatchError) TokenSealError() {}

// AuthenticationError reports that an envelope did not authenticate.
//
// It carries no detail: a wrong password, a flipped bit in
// any segment and an undecodable segment all look the same.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return "authentication failed"
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// TokenSealError implements the TokenSealError interface.
func (e *AuthenticationError) TokenSealError() {}

// SignatureVerificationError reports a sealed token whose signature did not
// verify after the envelope was opened.
type SignatureVerificationError struct {
	Alg string
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("signature verification failed for %s token", e.Alg)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureVerificationError) Is(target error) bool {
	return target == ErrInvalidSignature
}

// TokenSealError implements the TokenSealError interface.
func (e *SignatureVerificationError) TokenSealError() {}

// AssociatedDataError reports associated data that cannot be bound into an
// envelope.
type AssociatedDataError struct {
	Err error
}

func (e *AssociatedDataError) Error() string {
	return fmt.Sprintf("invalid associated data: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *AssociatedDataError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AssociatedDataError) Is(target error) bool {
	return target == ErrInvalidAssociatedData
}

// TokenSealError implements the TokenSealError interface.
func (e *AssociatedDataError) TokenSealError() {}

// wrapError converts internal crypto errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var tsErr TokenSealError
	if errors.As(err, &tsErr) {
		return err
	}

	switch {
	case errors.Is(err, tscrypto.ErrKeyDerivation):
		return &KeyDerivationError{Err: err}
	case errors.Is(err, tscrypto.ErrDecryptionFailed):
		return &AuthenticationError{}
	}

	return err
}

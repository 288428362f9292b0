package tokenseal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vaultsandbox/tokenseal/internal/segment"
)

// Header is the first segment of a token.
type Header struct {
	Typ string `json:"typ"`
	Alg string `json:"alg"`
	Enc string `json:"enc,omitempty"` // cipher expected when the token is sealed
}

// NewHeader returns a JWT header for alg.
func NewHeader(alg string) Header {
	return Header{Typ: "JWT", Alg: alg}
}

// Claims is the token payload. Keys are serialized in sorted order.
// Expiry-style claims are carried but never enforced.
type Claims map[string]any

// Token is a parsed compact token.
type Token struct {
	Header    Header
	Claims    Claims // numbers decode as json.Number
	Signature string // base64url, as received

	headerSeg  string
	payloadSeg string
}

// SigningInput returns the bytes covered by the signature: the header and
// payload segments exactly as received, joined by ".".
func (t *Token) SigningInput() string {
	return t.headerSeg + "." + t.payloadSeg
}

// String reassembles the compact form.
func (t *Token) String() string {
	return t.SigningInput() + "." + t.Signature
}

// Serialize encodes the header and payload segments of a token.
// A nil Claims encodes as an empty object.
func Serialize(h Header, c Claims) (headerSeg, payloadSeg string, err error) {
	headerSeg, err = segment.Encode(h)
	if err != nil {
		return "", "", fmt.Errorf("encoding header: %w", err)
	}

	if c == nil {
		c = Claims{}
	}
	payloadSeg, err = segment.Encode(c)
	if err != nil {
		return "", "", fmt.Errorf("encoding claims: %w", err)
	}

	return headerSeg, payloadSeg, nil
}

// Parse splits a compact token and decodes its header and claims. It does
// not verify the signature; use Verify for that.
func Parse(token string) (*Token, error) {
	parts, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	h, err := decodeHeader(parts[0])
	if err != nil {
		return nil, err
	}

	var claims Claims
	if err := segment.Decode(parts[1], &claims); err != nil {
		return nil, &MalformedTokenError{Segments: 3, Err: fmt.Errorf("payload: %w", err)}
	}
	if claims == nil {
		return nil, &MalformedTokenError{Segments: 3, Err: errors.New("payload: not a JSON object")}
	}

	return &Token{
		Header:     h,
		Claims:     claims,
		Signature:  parts[2],
		headerSeg:  parts[0],
		payloadSeg: parts[1],
	}, nil
}

func splitToken(token string) ([]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, &MalformedTokenError{Segments: len(parts)}
	}
	return parts, nil
}

// decodeHeader reads typ, alg and enc with exact key matching. Other header
// parameters are ignored.
func decodeHeader(seg string) (Header, error) {
	var fields map[string]json.RawMessage
	if err := segment.Decode(seg, &fields); err != nil {
		return Header{}, &MalformedHeaderError{Err: err}
	}
	if fields == nil {
		return Header{}, &MalformedHeaderError{Err: errors.New("not a JSON object")}
	}

	var h Header
	for name, dst := range map[string]*string{"typ": &h.Typ, "alg": &h.Alg, "enc": &h.Enc} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return Header{}, &MalformedHeaderError{Err: fmt.Errorf("%s: %w", name, err)}
		}
	}

	if h.Alg == "" {
		return Header{}, &MalformedHeaderError{Err: errors.New(`missing "alg"`)}
	}

	return h, nil
}

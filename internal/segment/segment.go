// Package segment converts between JSON values and the base64url text
// segments used by tokens and envelopes.
//
// Serialization is canonical: the same value always yields the same
// bytes. Structs keep their declared field order. Maps and decoded
// free-form objects are emitted with keys in sorted order, HTML
// characters are not escaped and no trailing newline is written.
//
// Received JSON is re-emitted with Compact, which keeps object members in
// the order they arrived and escapes strings the way JavaScript's
// JSON.stringify does.
package segment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vaultsandbox/tokenseal/internal/crypto"
)

var (
	// ErrNotObject is returned by NormalizeObject for values that are not a
	// JSON object or null.
	ErrNotObject = errors.New("value is not a JSON object")

	// ErrInvalidSegment is returned when a segment is not valid base64url or
	// does not contain valid JSON.
	ErrInvalidSegment = errors.New("invalid segment")
)

// Canonical returns the canonical JSON encoding of v.
func Canonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Normalize re-encodes an arbitrary value into canonical JSON.
//
// The value is marshaled, decoded back into generic form with numbers kept
// as their literal text, and marshaled again. Object keys therefore come out
// sorted at every depth regardless of how the caller built the value, and
// two semantically equal inputs yield identical bytes.
func Normalize(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return normalizeRaw(raw)
}

// NormalizeObject is Normalize restricted to JSON objects and null.
// A nil value normalizes to null.
func NormalizeObject(v any) (json.RawMessage, error) {
	if v == nil {
		return json.RawMessage("null"), nil
	}
	out, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	if !isObjectOrNull(out) {
		return nil, ErrNotObject
	}
	return out, nil
}

func normalizeRaw(raw []byte) (json.RawMessage, error) {
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidSegment)
	}
	out, err := Canonical(generic)
	if err != nil {
		return nil, err
	}
	return Compact(out)
}

// Compact re-emits a single JSON value without insignificant whitespace.
// Object members keep their received order and number literals keep their
// text. Duplicate object keys are rejected.
func Compact(raw []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeValue(&buf, dec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSegment, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidSegment)
	}
	return json.RawMessage(buf.Bytes()), nil
}

// CompactObject is Compact restricted to JSON objects and null.
func CompactObject(raw []byte) (json.RawMessage, error) {
	out, err := Compact(raw)
	if err != nil {
		return nil, err
	}
	if !isObjectOrNull(out) {
		return nil, ErrNotObject
	}
	return out, nil
}

func writeValue(buf *bytes.Buffer, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return writeObject(buf, dec)
		case '[':
			return writeArray(buf, dec)
		default:
			return fmt.Errorf("unexpected %v", t)
		}
	case string:
		writeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}
	return nil
}

func writeObject(buf *bytes.Buffer, dec *json.Decoder) error {
	seen := make(map[string]struct{})

	buf.WriteByte('{')
	for i := 0; dec.More(); i++ {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = struct{}{}

		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, key)
		buf.WriteByte(':')
		if err := writeValue(buf, dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, dec *json.Decoder) error {
	buf.WriteByte('[')
	for i := 0; dec.More(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	buf.WriteByte(']')
	return nil
}

// writeString quotes s. Only the quote, the backslash and control
// characters are escaped; U+2028, U+2029 and HTML characters are written
// as is.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

func isObjectOrNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '{' || bytes.Equal(trimmed, []byte("null")))
}

// Encode serializes v canonically and returns it as a base64url segment.
func Encode(v any) (string, error) {
	raw, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return crypto.ToBase64URL(raw), nil
}

// Decode decodes a base64url segment into v. Numbers decoded into
// interface values are kept as json.Number.
func Decode(seg string, v any) error {
	raw, err := DecodeBytes(seg)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSegment, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidSegment)
	}
	return nil
}

// DecodeBytes returns the raw bytes held in a base64url segment.
func DecodeBytes(seg string) ([]byte, error) {
	raw, err := crypto.FromBase64URL(seg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSegment, err)
	}
	return raw, nil
}

// DecodeObject decodes a segment that must hold a JSON object whose keys
// are exactly those listed. Key matching is case-sensitive, which
// encoding/json's struct decoding is not.
func DecodeObject(seg string, keys ...string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := Decode(seg, &fields); err != nil {
		return nil, err
	}
	if fields == nil || len(fields) != len(keys) {
		return nil, fmt.Errorf("%w: unexpected fields", ErrInvalidSegment)
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidSegment, k)
		}
	}
	return fields, nil
}

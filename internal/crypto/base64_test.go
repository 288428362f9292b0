package crypto

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestBase64URLRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello")},
		{"binary mixed", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"url unsafe chars", []byte{0xfb, 0xf0}}, // Would produce + or / in standard base64
		{"tag sized", bytes.Repeat([]byte{0x5a}, TagSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := ToBase64URL(tt.data)
			if strings.ContainsAny(encoded, "+/=") {
				t.Errorf("encoded string is not raw URL-safe: %s", encoded)
			}
			decoded, err := FromBase64URL(encoded)
			if err != nil {
				t.Fatalf("FromBase64URL() error = %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip failed: got %v, want %v", decoded, tt.data)
			}
		})
	}
}

func TestFromBase64URL_InvalidInput(t *testing.T) {
	// "YR" decodes to "a" only if trailing bits are ignored.
	for _, input := range []string{"!!!invalid!!!", "aGVs bG8", "aGVsbG8=", "YR"} {
		if _, err := FromBase64URL(input); err == nil {
			t.Errorf("FromBase64URL(%q): expected error", input)
		}
	}
}

func TestDecodeBase64_MultipleFormats(t *testing.T) {
	original := []byte{0xfb, 0xff, 0xbf, 'h', 'i'}

	tests := []struct {
		name    string
		encoded string
	}{
		{"standard encoding", "+/+/aGk="},
		{"raw standard encoding", "+/+/aGk"},
		{"url encoding with padding", "-_-_aGk="},
		{"raw url encoding", "-_-_aGk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeBase64(tt.encoded)
			if err != nil {
				t.Fatalf("DecodeBase64() error = %v", err)
			}
			if !bytes.Equal(decoded, original) {
				t.Errorf("DecodeBase64() = %v, want %v", decoded, original)
			}
		})
	}

	if _, err := DecodeBase64("not base64!"); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestToBase64_StandardEncoding(t *testing.T) {
	tests := []struct {
		data     []byte
		expected string
	}{
		{[]byte{}, ""},
		{[]byte("a"), "YQ=="},
		{[]byte("ab"), "YWI="},
		{[]byte("abc"), "YWJj"},
		{[]byte{0xfb, 0xff}, "+/8="},
	}

	for _, tt := range tests {
		encoded := ToBase64(tt.data)
		if encoded != tt.expected {
			t.Errorf("ToBase64(%v) = %s, want %s", tt.data, encoded, tt.expected)
		}
		decoded, err := FromBase64(encoded)
		if err != nil {
			t.Fatalf("FromBase64() error = %v", err)
		}
		if !bytes.Equal(decoded, tt.data) {
			t.Errorf("FromBase64(%s) = %v, want %v", encoded, decoded, tt.data)
		}
	}
}

func TestFromBase64_RejectsURLAlphabet(t *testing.T) {
	if _, err := FromBase64("-_8"); err == nil {
		t.Error("expected error for URL-safe input")
	}
}

// Example_base64Encoding demonstrates the two base64 encoding variants.
func Example_base64Encoding() {
	data := []byte("Hello, World!")

	// URL-safe base64 without padding (for compact segments).
	fmt.Printf("URL-safe: %s\n", ToBase64URL(data))

	// Standard base64 with padding (for values inside JSON records).
	fmt.Printf("Standard: %s\n", ToBase64(data))

	// Output:
	// URL-safe: SGVsbG8sIFdvcmxkIQ
	// Standard: SGVsbG8sIFdvcmxkIQ==
}

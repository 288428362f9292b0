package tokenseal

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	tscrypto "github.com/vaultsandbox/tokenseal/internal/crypto"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name        string
		header      Header
		claims      Claims
		wantHeader  string
		wantPayload string
	}{
		{
			name:        "hs256",
			header:      NewHeader(HS256),
			claims:      Claims{"sub": "alice"},
			wantHeader:  `{"typ":"JWT","alg":"HS256"}`,
			wantPayload: `{"sub":"alice"}`,
		},
		{
			name:        "with enc",
			header:      Header{Typ: "JWT", Alg: RS256, Enc: CipherAES256GCM},
			claims:      Claims{"z": 1, "a": []int{1, 2}, "html": "<b>"},
			wantHeader:  `{"typ":"JWT","alg":"RS256","enc":"aes-256-gcm"}`,
			wantPayload: `{"a":[1,2],"html":"<b>","z":1}`,
		},
		{
			name:        "nil claims",
			header:      NewHeader(HS512),
			claims:      nil,
			wantHeader:  `{"typ":"JWT","alg":"HS512"}`,
			wantPayload: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headerSeg, payloadSeg, err := Serialize(tt.header, tt.claims)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if got := decodeSeg(t, headerSeg); got != tt.wantHeader {
				t.Errorf("header = %s, want %s", got, tt.wantHeader)
			}
			if got := decodeSeg(t, payloadSeg); got != tt.wantPayload {
				t.Errorf("payload = %s, want %s", got, tt.wantPayload)
			}
		})
	}
}

func decodeSeg(t *testing.T, seg string) string {
	t.Helper()
	raw, err := tscrypto.FromBase64URL(seg)
	if err != nil {
		t.Fatalf("segment %q is not raw base64url: %v", seg, err)
	}
	return string(raw)
}

func TestSerialize_Unencodable(t *testing.T) {
	if _, _, err := Serialize(NewHeader(HS256), Claims{"f": func() {}}); err == nil {
		t.Error("expected error for unencodable claims")
	}
}

func TestParse(t *testing.T) {
	headerSeg, payloadSeg, err := Serialize(Header{Typ: "JWT", Alg: HS256, Enc: CipherAES128GCM}, Claims{"sub": "alice", "exp": 1700000000})
	if err != nil {
		t.Fatal(err)
	}
	token := headerSeg + "." + payloadSeg + ".c2ln"

	tok, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Token{
		Header:    Header{Typ: "JWT", Alg: HS256, Enc: CipherAES128GCM},
		Claims:    Claims{"sub": "alice", "exp": json.Number("1700000000")},
		Signature: "c2ln",
	}
	if diff := cmp.Diff(want, tok, cmpopts.IgnoreUnexported(Token{})); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if tok.String() != token {
		t.Errorf("String() = %s, want %s", tok.String(), token)
	}
	if tok.SigningInput() != headerSeg+"."+payloadSeg {
		t.Errorf("SigningInput() = %s", tok.SigningInput())
	}
}

func TestParse_ExtraHeaderFields(t *testing.T) {
	header := tscrypto.ToBase64URL([]byte(`{"alg":"HS256","kid":"key-1","typ":"JWT"}`))
	payload := tscrypto.ToBase64URL([]byte(`{}`))

	tok, err := Parse(header + "." + payload + ".")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tok.Header != NewHeader(HS256) {
		t.Errorf("Header = %+v", tok.Header)
	}
	if tok.Signature != "" {
		t.Errorf("Signature = %q, want empty", tok.Signature)
	}
}

func TestParse_Malformed(t *testing.T) {
	goodHeader := tscrypto.ToBase64URL([]byte(`{"typ":"JWT","alg":"HS256"}`))
	goodPayload := tscrypto.ToBase64URL([]byte(`{"sub":"alice"}`))
	seg := func(s string) string { return tscrypto.ToBase64URL([]byte(s)) }

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"two segments", goodHeader + "." + goodPayload, ErrMalformedToken},
		{"four segments", goodHeader + "." + goodPayload + ".sig.extra", ErrMalformedToken},
		{"no dots", "abc", ErrMalformedToken},
		{"header not base64", "!!!." + goodPayload + ".sig", ErrMalformedHeader},
		{"header not json", seg("not json") + "." + goodPayload + ".sig", ErrMalformedHeader},
		{"header is array", seg(`["HS256"]`) + "." + goodPayload + ".sig", ErrMalformedHeader},
		{"header is null", seg(`null`) + "." + goodPayload + ".sig", ErrMalformedHeader},
		{"alg not string", seg(`{"alg":256}`) + "." + goodPayload + ".sig", ErrMalformedHeader},
		{"alg missing", seg(`{"typ":"JWT"}`) + "." + goodPayload + ".sig", ErrMalformedHeader},
		{"alg wrong case", seg(`{"ALG":"HS256"}`) + "." + goodPayload + ".sig", ErrMalformedHeader},
		{"payload not json", goodHeader + "." + seg("{") + ".sig", ErrMalformedToken},
		{"payload is array", goodHeader + "." + seg("[1]") + ".sig", ErrMalformedToken},
		{"payload is null", goodHeader + "." + seg("null") + ".sig", ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParse_SegmentCount(t *testing.T) {
	_, err := Parse(strings.Repeat("a.", 4))

	var malformed *MalformedTokenError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedTokenError, got %T", err)
	}
	if malformed.Segments != 5 {
		t.Errorf("Segments = %d, want 5", malformed.Segments)
	}
}

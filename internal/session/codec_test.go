package session

import (
	"errors"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4/jwt"
)

func testRecord() *Record {
	return &Record{
		AccessToken:  "at-123",
		RefreshToken: "rt-456",
		IDToken:      "idt-789",
		ExpiresAt:    time.Now().Unix() + 3600,
		Role:         "admin",
		Name:         "Emil Ivanov",
		Email:        "emil.ivanov@logipack.dev",
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	rec := testRecord()
	token, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if *got != *rec {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, rec)
	}

	// Re-encoding must still decode to the same record.
	token2, err := codec.Encode(got)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	got2, err := codec.Decode(token2)
	if err != nil {
		t.Fatalf("re-Decode: %v", err)
	}
	if *got2 != *rec {
		t.Errorf("second round trip mismatch: got %+v, want %+v", got2, rec)
	}
}

func TestCodecKeyDerivationIsDeterministic(t *testing.T) {
	a, err := NewCodec("shared-secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	b, err := NewCodec("shared-secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	token, err := a.Encode(testRecord())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := b.Decode(token); err != nil {
		t.Errorf("codec from same secret failed to decode: %v", err)
	}
}

func TestCodecRejectsWrongKey(t *testing.T) {
	a, _ := NewCodec("secret-one")
	b, _ := NewCodec("secret-two")

	token, err := a.Encode(testRecord())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := b.Decode(token); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for wrong key, got %v", err)
	}
}

func TestCodecRejectsTamperedToken(t *testing.T) {
	codec, _ := NewCodec("test-secret")
	token, err := codec.Encode(testRecord())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if _, err := codec.Decode(tampered); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for tampered token, got %v", err)
	}

	if _, err := codec.Decode("not-a-token"); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for garbage token, got %v", err)
	}
}

func TestCodecRejectsExpiredEnvelope(t *testing.T) {
	codec, _ := NewCodec("test-secret")

	issued := time.Now().Add(-8 * 24 * time.Hour)
	token, err := codec.encodeAt(testRecord(), issued)
	if err != nil {
		t.Fatalf("encodeAt: %v", err)
	}

	if _, err := codec.Decode(token); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for expired envelope, got %v", err)
	}
}

func TestCodecRejectsInvalidPayload(t *testing.T) {
	codec, _ := NewCodec("test-secret")
	now := time.Now()
	claims := jwt.Claims{
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(envelopeTTL)),
	}

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"missing access token", map[string]any{"expires_at": now.Unix() + 3600}},
		{"empty access token", map[string]any{"access_token": "", "expires_at": now.Unix() + 3600}},
		{"missing expiry", map[string]any{"access_token": "at-123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := jwt.Encrypted(codec.encrypter).Claims(claims).Claims(tc.payload).Serialize()
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			if _, err := codec.Decode(token); !errors.Is(err, ErrDecode) {
				t.Errorf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestCodecRefusesToEncodeInvalidRecord(t *testing.T) {
	codec, _ := NewCodec("test-secret")

	if _, err := codec.Encode(&Record{ExpiresAt: time.Now().Unix()}); err == nil {
		t.Error("expected error encoding record without access token")
	}
	if _, err := codec.Encode(&Record{AccessToken: "at"}); err == nil {
		t.Error("expected error encoding record without expiry")
	}
}

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	secret := []byte("secret")
	claims := Claims{"sub": "user-1", "email": "alice@example.com", "ver": 2}

	token, err := SignHS256(claims, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := ParseAndVerifyHS256(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if parsed.Subject() != "user-1" {
		t.Fatalf("expected sub user-1, got %q", parsed.Subject())
	}
	if parsed.Email() != "alice@example.com" {
		t.Fatalf("unexpected email claim %q", parsed.Email())
	}
	if parsed.Version() != 2 {
		t.Fatalf("expected ver 2, got %d", parsed.Version())
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := SignHS256(Claims{"sub": "user-1"}, []byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("other")); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := ParseAndVerifyHS256(token, []byte("secret")); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	token, err := SignHS256(Claims{"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix()}, []byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("secret")); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsForeignAlgorithm(t *testing.T) {
	token, err := SignHS256(Claims{"sub": "user-1"}, []byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	// swap the header for one claiming a different algorithm
	foreignHeader := segmentEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	parts := strings.Split(token, ".")
	tampered := foreignHeader + "." + parts[1] + "." + parts[2]
	if _, err := ParseAndVerifyHS256(tampered, []byte("secret")); err == nil {
		t.Fatal("expected tampered algorithm to be rejected")
	}
}

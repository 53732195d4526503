package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

func TestSignAndParse(t *testing.T) {
	s, err := NewSigner("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	token, err := s.Sign(7, "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "admin@example.com" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "7" {
		t.Fatalf("subject = %q, want 7", claims.Subject)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	s, _ := NewSigner("test-secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }
	token, err := s.Sign(1, "a@b.co", "admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	s.now = time.Now
	if _, err := s.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	a, _ := NewSigner("secret-a", time.Hour)
	b, _ := NewSigner("secret-b", time.Hour)
	token, _ := a.Sign(1, "a@b.co", "admin")
	if _, err := b.Parse(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	s, _ := NewSigner("test-secret", time.Hour)
	claims := Claims{UserID: 1, RegisteredClaims: jwtlib.RegisteredClaims{
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := s.Parse(token); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}

func TestNewSignerDefaults(t *testing.T) {
	if _, err := NewSigner("", time.Hour); err == nil {
		t.Fatal("expected empty secret to fail")
	}
	s, err := NewSigner("x", 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.TTL() != DefaultTTL {
		t.Fatalf("ttl = %v, want %v", s.TTL(), DefaultTTL)
	}
}

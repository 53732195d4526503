package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nilehomes/landing/internal/pkg/apperr"
	"github.com/nilehomes/landing/internal/pkg/jwt"
	"github.com/nilehomes/landing/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *jwt.Signer) {
	t.Helper()
	db := testutil.NewDB(t)
	signer, err := jwt.NewSigner("auth-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	testutil.CreateAdmin(t, db, "admin@example.com", "correct-horse")
	return NewService(db, signer), signer
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	svc, signer := newTestService(t)

	res, err := svc.Login(context.Background(), "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := signer.Parse(res.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != res.User.ID || claims.Email != "admin@example.com" || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
	if res.User.PasswordHash == "" {
		t.Fatal("expected stored hash to be loaded")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string][2]string{
		"wrong password": {"admin@example.com", "wrong-password"},
		"unknown email":  {"nobody@example.com", "correct-horse"},
		"case mismatch":  {"Admin@Example.com", "correct-horse"},
	}
	var messages []string
	for name, creds := range cases {
		_, err := svc.Login(ctx, creds[0], creds[1])
		if !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Fatalf("%s: err = %v, want ErrInvalidCredentials", name, err)
		}
		messages = append(messages, err.Error())
	}
	for _, m := range messages[1:] {
		if m != messages[0] {
			t.Fatalf("error messages differ: %q vs %q", m, messages[0])
		}
	}
}

func TestUpsertAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.UpsertAdmin(ctx, "admin@example.com", "rotated-password", MinBcryptCost)
	if err != nil {
		t.Fatalf("upsert existing: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("rotated-password")) != nil {
		t.Fatal("password was not rotated")
	}
	if _, err := svc.Login(ctx, "admin@example.com", "correct-horse"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}

	created, err := svc.UpsertAdmin(ctx, "second@example.com", "another-password", MinBcryptCost)
	if err != nil {
		t.Fatalf("upsert new: %v", err)
	}
	if created.ID == 0 || created.ID == u.ID {
		t.Fatalf("expected a new admin row, got id %d", created.ID)
	}

	var verr *apperr.ValidationError
	if _, err := svc.UpsertAdmin(ctx, "third@example.com", "short", MinBcryptCost); !errors.As(err, &verr) {
		t.Fatalf("short password: err = %v, want validation error", err)
	}
}

func TestHashPasswordEnforcesMinimumCost(t *testing.T) {
	hash, err := HashPassword("some-password", 4)
	if err != nil {
		t.Fatal(err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatal(err)
	}
	if cost < MinBcryptCost {
		t.Fatalf("cost = %d, want >= %d", cost, MinBcryptCost)
	}
}

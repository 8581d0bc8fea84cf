package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/boggle/internal/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db, "test_secret", time.Hour)
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "  alice ", "correct horse")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Username != "alice" || len(u.ID) != 22 {
		t.Fatalf("unexpected user %+v", u)
	}
	if _, err := s.CreateUser(ctx, "ALICE", "another pass"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := s.Authenticate(ctx, "alice", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	got, err := s.Authenticate(ctx, "Alice", "correct horse")
	if err != nil || got.ID != u.ID {
		t.Fatalf("Authenticate = %+v, %v", got, err)
	}
}

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		user, pass string
		ok         bool
	}{
		{"bob", "12345678", true},
		{"bo", "12345678", false},
		{"bob!", "12345678", false},
		{"bob", "short", false},
	}
	for _, tc := range cases {
		if err := ValidateSignup(tc.user, tc.pass); (err == nil) != tc.ok {
			t.Fatalf("ValidateSignup(%q, %q) = %v", tc.user, tc.pass, err)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := NewService(nil, "secret", time.Hour)
	tok, exp, err := s.SignToken("id1", "carol")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("token already expired")
	}
	c, err := s.ParseToken(tok)
	if err != nil || c.ID != "id1" || c.Username != "carol" {
		t.Fatalf("ParseToken = %+v, %v", c, err)
	}

	other := NewService(nil, "different", time.Hour)
	if _, err := other.ParseToken(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
	expired := NewService(nil, "secret", -time.Minute)
	old, _, _ := expired.SignToken("id1", "carol")
	if _, err := s.ParseToken(old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestRecordRound(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u, err := s.CreateUser(ctx, "dave", "password1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	for _, score := range []int{4, 9, 2} {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := RecordRound(ctx, tx, u.ID, score); err != nil {
			t.Fatalf("RecordRound: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.GamesPlayed != 3 || got.TotalScore != 15 || got.BestScore != 9 {
		t.Fatalf("unexpected totals %+v", got)
	}
}

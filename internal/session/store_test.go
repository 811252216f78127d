package session

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"id": 3, "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	tok := signed(t, time.Now().Add(time.Hour))
	if err := s.Save(tok+"\n", " ana ", true); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	got, err := again.Token()
	if err != nil || got != tok {
		t.Fatalf("Token() = %q, %v; want %q", got, err, tok)
	}
	if again.Username() != "ana" {
		t.Fatalf("Username() = %q", again.Username())
	}
}

func TestStoreWithoutRememberStaysInMemory(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(dir)
	if err := s.Save("opaque-token", "bo", false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.HasToken() {
		t.Fatalf("in-memory token missing")
	}
	if _, err := os.Stat(s.Path(tokenFile)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("token file should not exist, stat err=%v", err)
	}
}

func TestStoreClearsExpiredToken(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	_ = s.Save(signed(t, time.Now().Add(-time.Minute)), "ana", true)

	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("want ErrNoToken, got %v", err)
	}
	if _, err := os.Stat(s.Path(tokenFile)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expired token should be removed from disk")
	}
	if s.Username() != "" {
		t.Fatalf("username should be cleared")
	}
}

func TestExpiredIgnoresOpaqueTokens(t *testing.T) {
	if Expired("not-a-jwt", time.Now()) {
		t.Fatalf("opaque token must not be treated as expired")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestProfileIDSanitizes(t *testing.T) {
	if got := ProfileID("  Dev Box!! "); got != "dev_box" {
		t.Fatalf("ProfileID = %q", got)
	}
}

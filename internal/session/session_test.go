package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yildizm/TalentTrack/internal/common"
)

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "rec-1",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func testUser() common.User {
	return common.User{ID: "rec-1", Name: "Jane", Email: "jane@example.com"}
}

func TestManager_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	m := NewManager(path)

	token := signedToken(t, time.Now().Add(time.Hour))
	if err := m.Save(testUser(), token); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if saved.Token != token {
		t.Error("Expected saved token back")
	}
	if saved.User.Email != "jane@example.com" {
		t.Errorf("Expected saved user, got %+v", saved.User)
	}
}

func TestManager_LoadMissing(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "session.yaml"))

	if _, err := m.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
}

func TestManager_ExpiredSessionDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	m := NewManager(path)

	token := signedToken(t, time.Now().Add(-time.Hour))
	if err := m.Save(testUser(), token); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := m.Load(); !errors.Is(err, ErrExpired) {
		t.Errorf("Expected ErrExpired, got %v", err)
	}

	// The expired file is gone; the next load sees no session.
	if _, err := m.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession after discard, got %v", err)
	}
}

func TestManager_OpaqueTokenRestored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	m := NewManager(path)

	// Not a JWT; the client cannot judge expiry, so it restores.
	if err := m.Save(testUser(), "opaque-server-token"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if saved.Token != "opaque-server-token" {
		t.Errorf("Expected opaque token restored, got %q", saved.Token)
	}
}

func TestManager_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	m := NewManager(path)

	if err := m.Clear(); err != nil {
		t.Errorf("Clear on missing file should succeed, got %v", err)
	}

	token := signedToken(t, time.Now().Add(time.Hour))
	if err := m.Save(testUser(), token); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := m.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession after clear, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := signedToken(t, expiry)

	got, ok := TokenExpiry(token)
	if !ok {
		t.Fatal("Expected exp claim to parse")
	}
	if !got.Equal(expiry) {
		t.Errorf("Expected expiry %v, got %v", expiry, got)
	}

	if _, ok := TokenExpiry("not-a-jwt"); ok {
		t.Error("Expected no expiry for opaque token")
	}
}

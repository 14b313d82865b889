package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/TalentTrack/internal/common"
)

// Saved is the persisted session file written after a successful login
type Saved struct {
	Token   string      `yaml:"token"`
	User    common.User `yaml:"user"`
	SavedAt time.Time   `yaml:"saved_at"`
}

// ErrNoSession is returned when no session file exists
var ErrNoSession = fmt.Errorf("no saved session")

// ErrExpired is returned when the saved token's exp claim has passed
var ErrExpired = fmt.Errorf("saved session has expired")

// Manager persists the bearer token and user between runs
type Manager struct {
	path string
	now  func() time.Time
}

// NewManager creates a manager storing the session at path
func NewManager(path string) *Manager {
	return &Manager{path: path, now: time.Now}
}

// Path returns the session file location
func (m *Manager) Path() string {
	return m.path
}

// Save writes the session file, creating its directory as needed.
// The file holds a credential, so it is written 0600.
func (m *Manager) Save(user common.User, token string) error {
	if token == "" {
		return fmt.Errorf("cannot save an empty token")
	}

	data, err := yaml.Marshal(Saved{
		Token:   token,
		User:    user,
		SavedAt: m.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads the saved session. An expired token is discarded and
// reported as ErrExpired; a missing file as ErrNoSession.
func (m *Manager) Load() (Saved, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return Saved{}, ErrNoSession
	}
	if err != nil {
		return Saved{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var saved Saved
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return Saved{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if saved.Token == "" {
		return Saved{}, ErrNoSession
	}

	if expiry, ok := TokenExpiry(saved.Token); ok && !expiry.After(m.now()) {
		_ = m.Clear()
		return Saved{}, ErrExpired
	}

	return saved, nil
}

// Clear deletes the session file; a missing file is not an error
func (m *Manager) Clear() error {
	err := os.Remove(m.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// TokenExpiry extracts the exp claim from a bearer token without
// verifying its signature; the client holds no signing key, so the
// claim is advisory only. Returns false for opaque tokens or tokens
// without an exp claim.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}

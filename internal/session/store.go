package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenFile    = "token.json"
	usernameFile = "username.txt"
)

var ErrNoToken = errors.New("no token")

// Store keeps the auth token for the current run, optionally persisted
// under a config directory. The window and the CLI share one directory per
// profile so a terminal login is picked up by the next window start.
type Store struct {
	dir string

	mu    sync.RWMutex
	token string
	user  string

	now func() time.Time
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}
	s := &Store{dir: dir, now: time.Now}
	s.token = s.readFile(tokenFile)
	s.user = s.readFile(usernameFile)
	return s, nil
}

func (s *Store) Dir() string { return s.dir }

// Path returns a file inside the session directory.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

func (s *Store) readFile(name string) string {
	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Token returns the current token, clearing it first when its exp claim has
// passed.
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	tok := s.token
	s.mu.RUnlock()
	if tok == "" {
		return "", ErrNoToken
	}
	if Expired(tok, s.now()) {
		_ = s.Clear()
		return "", fmt.Errorf("token expired: %w", ErrNoToken)
	}
	return tok, nil
}

func (s *Store) HasToken() bool {
	_, err := s.Token()
	return err == nil
}

func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Save sets the token and username; with remember they are also written to disk.
func (s *Store) Save(token, username string, remember bool) error {
	token = strings.TrimSpace(token)
	username = strings.TrimSpace(username)
	s.mu.Lock()
	s.token, s.user = token, username
	s.mu.Unlock()

	if !remember {
		s.removeFiles()
		return nil
	}
	if err := os.WriteFile(s.Path(tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := os.WriteFile(s.Path(usernameFile), []byte(username), 0o600); err != nil {
		return fmt.Errorf("save username: %w", err)
	}
	return nil
}

// SetUsername updates the remembered name after a profile edit.
func (s *Store) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	s.mu.Lock()
	s.user = username
	s.mu.Unlock()
	if _, err := os.Stat(s.Path(tokenFile)); err != nil {
		return nil
	}
	return os.WriteFile(s.Path(usernameFile), []byte(username), 0o600)
}

func (s *Store) Clear() error {
	s.mu.Lock()
	s.token, s.user = "", ""
	s.mu.Unlock()
	return s.removeFiles()
}

func (s *Store) removeFiles() error {
	var errs []error
	for _, name := range []string{tokenFile, usernameFile} {
		if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Expired reports whether tok carries an exp claim in the past. The
// signature is not checked; only the server can do that.
func Expired(tok string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

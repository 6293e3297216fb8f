// ABOUTME: Persisted client session: auth token plus cached user record
// ABOUTME: Single source of truth for "is this client authenticated, as whom"

package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/AzlNach/NutriChef/internal/api"
)

const sessionFile = "session.json"

// Session is the authenticated identity held by this client instance.
type Session struct {
	Token string          `json:"token"`
	User  api.UserSummary `json:"user"`
}

// Store persists the session under the client config directory. It owns
// the token/user pair exclusively; view caches that depend on an
// authenticated session are cleared by the caller on logout.
type Store struct {
	dir     string
	current *Session
}

// NewStore creates a store rooted at the given config directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}

// Restore reads the persisted token and user. When both are present the
// session is optimistically considered authenticated; callers should then
// revalidate against the server with Verify and log out on a definitive
// rejection.
func (s *Store) Restore() (*Session, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt state; drop it rather than carrying a half-session.
		os.Remove(s.path())
		return nil, false
	}
	if sess.Token == "" || sess.User.Username == "" {
		return nil, false
	}

	s.current = &sess
	return &sess, true
}

// Login persists the token and user and marks the session active.
// Idempotent: a second call simply replaces the previous session.
func (s *Store) Login(token string, user api.UserSummary) error {
	sess := &Session{Token: token, User: user}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename so a crash never leaves a torn session file.
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		os.Remove(tmp)
		return err
	}

	s.current = sess
	return nil
}

// Logout clears the persisted token and user and marks the session
// inactive. Removing the single session file clears both atomically.
func (s *Store) Logout() error {
	s.current = nil
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Token returns the current bearer token, or "" when logged out. Suitable
// as an api.TokenSource.
func (s *Store) Token() string {
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// User returns the cached user record, or nil when logged out.
func (s *Store) User() *api.UserSummary {
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	return s.current != nil
}

// Verify performs a lightweight authenticated request against the server.
// It reports validity without mutating the store; the caller decides
// whether an invalid result cascades into Logout. A network failure is
// "cannot confirm", surfaced as an error.
func (s *Store) Verify(ctx context.Context, client *api.Client) (bool, error) {
	if s.current == nil {
		return false, nil
	}
	return client.Verify(ctx)
}

package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shop/storefront/internal/domain/identity"
)

// The two persistence namespaces. Only the session and the sort/limit
// browsing preferences survive restarts; everything else is a cache the
// backend re-issues on demand.
const (
	authFile  = "auth.json"
	prefsFile = "preferences.json"
)

// Preferences are the persisted slice of the product filter
type Preferences struct {
	Sort  string `json:"sort"`
	Limit int    `json:"limit"`
}

// Store persists the session and preferences as JSON files in a state
// directory. It implements the API client's CredentialSource so the bearer
// token is read on every request and wiped on an authorization failure.
type Store struct {
	dir string

	mu      sync.Mutex
	session *identity.Session
	loaded  bool
}

// NewStore opens (creating when needed) a store rooted at dir
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("credentials: create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load returns the persisted session, or nil when none is stored
func (s *Store) Load() (*identity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (*identity.Session, error) {
	if s.loaded {
		return s.session, nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, authFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.loaded = true
			return nil, nil
		}
		return nil, fmt.Errorf("credentials: read session: %w", err)
	}
	var session identity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt session file is treated as signed out rather than a
		// fatal startup error
		s.loaded = true
		return nil, nil
	}
	s.session = &session
	s.loaded = true
	return s.session, nil
}

// Save persists the session before any in-memory state is updated, so the
// next outbound request already carries the new token
func (s *Store) Save(session *identity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("credentials: encode session: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, authFile), data); err != nil {
		return err
	}
	s.session = session
	s.loaded = true
	return nil
}

// Clear wipes the persisted session. Safe to call when nothing is stored.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.loaded = true
	if err := os.Remove(filepath.Join(s.dir, authFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credentials: clear session: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, empty when signed out
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.loadLocked()
	if err != nil || session == nil {
		return ""
	}
	return session.Token
}

// SavePreferences persists the sort/limit browsing preferences
func (s *Store) SavePreferences(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("credentials: encode preferences: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.dir, prefsFile), data)
}

// LoadPreferences returns the persisted preferences; zero values mean the
// caller's defaults apply
func (s *Store) LoadPreferences() (Preferences, error) {
	var p Preferences
	data, err := os.ReadFile(filepath.Join(s.dir, prefsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("credentials: read preferences: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, nil
	}
	return p, nil
}

// writeFileAtomic writes via a temp file and rename so a crash mid-write
// never leaves a truncated state file
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("credentials: create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("credentials: write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("credentials: close state file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("credentials: replace state file: %w", err)
	}
	return nil
}

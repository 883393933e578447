package gateway

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore persists tokens across process restarts, standing in for
// the device secure storage the mobile shell provides.
type TokenStore interface {
	Save(accessToken, refreshToken string) error
	Load() (accessToken, refreshToken string, ok bool, err error)
	Clear() error
}

type tokenFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileTokenStore keeps tokens in a single JSON file with owner-only
// permissions.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(tokenFile{AccessToken: accessToken, RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileTokenStore) Load() (string, string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", false, nil
		}
		return "", "", false, err
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", "", false, err
	}
	if tf.AccessToken == "" {
		return "", "", false, nil
	}
	return tf.AccessToken, tf.RefreshToken, true, nil
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryTokenStore is a TokenStore for tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	set     bool
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh, s.set = accessToken, refreshToken, true
	return nil
}

func (s *MemoryTokenStore) Load() (string, string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, s.set, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh, s.set = "", "", false
	return nil
}

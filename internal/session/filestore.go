package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/kazino55/client/internal/logger"
)

// FileStore is a Store persisted as a JSON file on disk, so the session
// survives restarts. A missing or corrupt file starts the store empty;
// write failures are logged and otherwise ignored so that getters and
// setters never fail.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFileStore loads (or initializes) the store at path.
func OpenFileStore(path string) *FileStore {
	s := &FileStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.L().Warnw("session file unreadable, starting empty", "path", path, "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		logger.L().Warnw("session file corrupt, starting empty", "path", path, "error", err)
		s.values = make(map[string]string)
	}
	return s
}

// Get returns the stored value for key, if any.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the store.
func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.persist()
}

// Delete removes key and persists the store. Idempotent.
func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.persist()
}

// persist writes the store to disk. Caller must hold the lock.
func (s *FileStore) persist() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		logger.L().Warnw("session file marshal failed", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		logger.L().Warnw("session dir create failed", "path", s.path, "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		logger.L().Warnw("session file write failed", "path", s.path, "error", err)
	}
}

package auth

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// FileSessionCache stores the session as a JSON file, surviving process
// restarts the way the identity service's own client cache would.
type FileSessionCache struct {
	path string
	mu   sync.Mutex
}

// NewFileSessionCache creates a cache backed by the given path.
func NewFileSessionCache(path string) *FileSessionCache {
	return &FileSessionCache{path: path}
}

func (c *FileSessionCache) Load() (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, nil
	}
	return &session, nil
}

func (c *FileSessionCache) Save(s *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

func (c *FileSessionCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemorySessionCache keeps the session in memory only. Used in tests and
// wherever persistence across restarts is not wanted.
type MemorySessionCache struct {
	mu      sync.Mutex
	session *Session
}

func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{}
}

func (c *MemorySessionCache) Load() (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, nil
}

func (c *MemorySessionCache) Save(s *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
	return nil
}

func (c *MemorySessionCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	return nil
}

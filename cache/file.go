package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps snapshots as JSON files under a cache directory.
type FileCache struct {
	Dir string
	TTL time.Duration
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{Dir: dir, TTL: ttl}, nil
}

type fileEntry struct {
	Snapshot  *Snapshot `json:"snapshot"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

func (c *FileCache) Get(ctx context.Context, key string) (*Snapshot, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(c.path(key))
		return nil, false
	}
	return entry.Snapshot, entry.Snapshot != nil
}

func (c *FileCache) Set(ctx context.Context, key string, snap *Snapshot) error {
	entry := fileEntry{
		Snapshot:  snap,
		ExpiresAt: time.Now().Add(c.TTL),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0644)
}

func (c *FileCache) Close() error { return nil }

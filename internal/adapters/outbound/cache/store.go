package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Store is a file-based implementation of domain.ChangeCache: a plain
// path→content-hash table under .archscope/cache. Staleness is detected by
// hash mismatch only, never by modification time. Deleting the file is
// always safe and forces a full re-scan.
type Store struct{}

func New() *Store {
	return &Store{}
}

// Diff returns the files whose hash differs from the cached value, in
// sorted order. A missing or unreadable cache means everything changed.
func (s *Store) Diff(rootPath string, hashes map[string]string) ([]string, error) {
	cached, err := s.load(rootPath)
	if err != nil {
		return nil, err
	}

	var changed []string
	for path, hash := range hashes {
		if cached[path] != hash {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed, nil
}

// Update replaces the cached hash table for the given root.
func (s *Store) Update(rootPath string, hashes map[string]string) error {
	dir := filepath.Dir(cachePath(rootPath))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath(rootPath), data, 0644)
}

// Invalidate removes the cache file for the given root.
func (s *Store) Invalidate(rootPath string) error {
	if err := os.Remove(cachePath(rootPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// load reads the hash table. No cache is not an error.
func (s *Store) load(rootPath string) (map[string]string, error) {
	data, err := os.ReadFile(cachePath(rootPath))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	var hashes map[string]string
	if err := json.Unmarshal(data, &hashes); err != nil {
		// A corrupt cache behaves like a deleted one.
		return map[string]string{}, nil
	}
	return hashes, nil
}

func cachePath(rootPath string) string {
	return filepath.Join(rootPath, ".archscope", "cache", "hashes.json")
}

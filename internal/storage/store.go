package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Store is a fail-soft JSON key-value store backed by one file per key.
// Read and write errors (missing dir, corrupt payload, full disk) are
// logged and absorbed; callers always get their fallback instead of an
// error. Read-modify-write through UpdateJSON is not atomic across
// goroutines; services that share a key hold their own locks.
type Store struct {
	fs  afero.Fs
	dir string
	log *logrus.Entry
}

// NewStore creates a store rooted at dir on the given filesystem.
func NewStore(fs afero.Fs, dir string, log *logrus.Entry) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{fs: fs, dir: dir, log: log}, nil
}

func (s *Store) path(key string) string {
	name := strings.ReplaceAll(key, "/", "_")
	return filepath.Join(s.dir, name+".json")
}

// GetJSON reads and decodes the value stored under key. Any failure
// returns the fallback.
func GetJSON[T any](s *Store, key string, fallback T) T {
	raw, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		return fallback
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("storage read failed")
		return fallback
	}
	return out
}

// SetJSON encodes and stores value under key, reporting success.
func (s *Store) SetJSON(key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("storage write failed")
		return false
	}
	if err := afero.WriteFile(s.fs, s.path(key), raw, 0o644); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("storage write failed")
		return false
	}
	return true
}

// Remove deletes the value stored under key, if any.
func (s *Store) Remove(key string) {
	if err := s.fs.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.WithError(err).WithField("key", key).Warn("storage remove failed")
	}
}

// UpdateJSON reads the value under key, applies update, and writes the
// result back. Atomic only relative to sequential callers.
func UpdateJSON[T any](s *Store, key string, update func(T) T, fallback T) T {
	next := update(GetJSON(s, key, fallback))
	s.SetJSON(key, next)
	return next
}

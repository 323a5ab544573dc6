package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/store"
)

// JSON-backed key-value storage. Single file, human-readable, portable.
// One writer per file; the whole object is rewritten on every change.

// DefaultFileName is the app-local defaults file inside the data dir.
const DefaultFileName = "defaults.json"

// Store keeps the decoded file in memory and writes it back on mutation.
type Store struct {
	path string

	mu     sync.RWMutex
	values map[string]json.RawMessage
}

var _ store.Store = (*Store)(nil)

// Option configures Open.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger reports a discarded corrupt file to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open loads path. A missing or undecodable file is an empty store and the
// next write replaces it; the parent directory is created on first write.
// Only a file that cannot be read at all is an error.
func Open(path string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store{path: path, values: map[string]json.RawMessage{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.values); err != nil {
		logging.OrDefault(o.logger).Warn("discarding undecodable local file", "path", path, "err", err)
		s.values = map[string]json.RawMessage{}
	}
	if s.values == nil {
		s.values = map[string]json.RawMessage{}
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) Data(key string) ([]byte, error) {
	raw, err := s.raw(key)
	if err != nil {
		return nil, err
	}
	var b []byte
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return b, nil
}

func (s *Store) String(key string) (string, error) {
	raw, err := s.raw(key)
	if err != nil {
		return "", err
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("decode %q: %w", key, err)
	}
	return v, nil
}

func (s *Store) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) SetData(key string, value []byte) error {
	return s.set(key, value)
}

func (s *Store) SetString(key, value string) error {
	return s.set(key, value)
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

// Close is a no-op; every mutation is already on disk.
func (s *Store) Close() error { return nil }

func (s *Store) raw(key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, store.ErrNotFound)
	}
	return raw, nil
}

func (s *Store) set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return s.save()
}

// save must be called with mu held.
func (s *Store) save() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

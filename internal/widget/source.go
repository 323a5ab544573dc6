package widget

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/store/sqlitestore"
)

// SharedSource is a read-only view of the shared location. The database
// is opened on first use once the main process has created it, so a
// widget started before the app reads as empty instead of failing.
type SharedSource struct {
	path string

	mu sync.Mutex
	db *sqlitestore.Store
}

var _ store.Reader = (*SharedSource)(nil)

func OpenShared(path string) *SharedSource {
	return &SharedSource{path: path}
}

func (s *SharedSource) reader() (store.Reader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("stat shared location: %w", err)
	}
	db, err := sqlitestore.OpenReadOnly(s.path)
	if err != nil {
		return nil, err
	}
	s.db = db
	return db, nil
}

func (s *SharedSource) Data(key string) ([]byte, error) {
	r, err := s.reader()
	if err != nil {
		return nil, err
	}
	return r.Data(key)
}

func (s *SharedSource) String(key string) (string, error) {
	r, err := s.reader()
	if err != nil {
		return "", err
	}
	return r.String(key)
}

func (s *SharedSource) Keys(prefix string) ([]string, error) {
	r, err := s.reader()
	if errors.Is(err, store.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return r.Keys(prefix)
}

func (s *SharedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

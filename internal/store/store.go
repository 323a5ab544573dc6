// Package store defines the key-value contract shared by the app-local and
// cross-process persistence locations.
package store

import "errors"

// ErrNotFound is returned by Reader methods for a missing key.
var ErrNotFound = errors.New("key not found")

// Reader is read-only access to a key-value location.
type Reader interface {
	Data(key string) ([]byte, error)
	String(key string) (string, error)
	// Keys returns the keys starting with prefix, sorted.
	Keys(prefix string) ([]string, error)
}

// Store is a writable key-value location. Writes replace the whole value.
type Store interface {
	Reader
	SetData(key string, value []byte) error
	SetString(key, value string) error
	Remove(key string) error
	Close() error
}

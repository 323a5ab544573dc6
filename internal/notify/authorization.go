package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Grant is the persisted answer to the last authorization prompt.
type Grant struct {
	Status    Status    `json:"status"`
	DecidedAt time.Time `json:"decided_at"`
}

// ReadGrant loads the grant at path. A missing file means not determined.
func ReadGrant(path string) (Grant, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Grant{Status: StatusNotDetermined}, nil
		}
		return Grant{Status: StatusNotDetermined}, fmt.Errorf("read grant: %w", err)
	}
	var g Grant
	if err := json.Unmarshal(b, &g); err != nil {
		return Grant{Status: StatusNotDetermined}, fmt.Errorf("parse grant: %w", err)
	}
	switch g.Status {
	case StatusAuthorized, StatusDenied:
	default:
		g.Status = StatusNotDetermined
	}
	return g, nil
}

// WriteGrant stores the grant with owner-only permissions.
func WriteGrant(path string, g Grant) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// RevokeGrant deletes the grant file; the status returns to not determined.
func RevokeGrant(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPriority is returned when a priority name is not recognised.
var ErrUnknownPriority = errors.New("unknown priority")

// Priority of an Item. The zero value is invalid; NewItem defaults to medium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority, lowest first.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// LabelRank is the position of p when priorities are ordered by their stored
// labels: medium, then low, then high. Sorting by priority uses this order
// rather than severity. Unknown priorities rank last.
func (p Priority) LabelRank() int {
	switch p {
	case PriorityMedium:
		return 0
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 2
	}
	return 3
}

// Label is the human-readable name.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low priority"
	case PriorityMedium:
		return "Medium priority"
	case PriorityHigh:
		return "High priority"
	}
	return string(p)
}

// Marker is a one-rune glyph used in compact renderings.
func (p Priority) Marker() string {
	switch p {
	case PriorityLow:
		return "↓"
	case PriorityHigh:
		return "!"
	}
	return "-"
}

// Valid reports whether p is one of Priorities.
func (p Priority) Valid() bool {
	for _, q := range Priorities {
		if p == q {
			return true
		}
	}
	return false
}

// ParsePriority accepts a key ("high") or label ("High priority"), any case.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, p.Label()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := Priority(s)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPriority, s)
	}
	*p = v
	return nil
}
